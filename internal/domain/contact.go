package domain

// SocialLinks holds the academy's social media handles.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
}

// ContactInfo is the academy's static contact record. It is fixed data,
// not fetched from any upstream system.
type ContactInfo struct {
	Name    string      `json:"nombre"`
	Address string      `json:"direccion"`
	Phone   string      `json:"telefono"`
	Email   string      `json:"email"`
	Website string      `json:"website"`
	Hours   string      `json:"horario"`
	Social  SocialLinks `json:"redes_sociales"`
}

// DefaultContactInfo returns the academy's published contact details.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Name:    "Fibro Academy USA",
		Address: "2684 NW 97th Ave, Doral, FL 33172",
		Phone:   "(305) 632-4630",
		Email:   "hello@fibroacademyusa.com",
		Website: "https://fibroacademyusa.com",
		Hours:   "Lunes a Viernes: 9:00 AM - 6:00 PM, Sábados: 10:00 AM - 2:00 PM",
		Social: SocialLinks{
			Instagram: "@fibroacademyusa",
			Facebook:  "FibroAcademyUSA",
		},
	}
}
