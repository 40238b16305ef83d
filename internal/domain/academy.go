package domain

// Course is a normalized CRM course or workshop. Price is in whole
// currency units, already converted from the upstream cent amount.
type Course struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"priceFormatted"`
	Category       string  `json:"category"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Availability   string  `json:"availability"`
}

// Event is an upcoming scheduled workshop or course date.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Type        string `json:"type"`
}

// CourseQuery filters a course listing.
type CourseQuery struct {
	Category string
	Search   string
	Limit    int
}
