package usecase

import "github.com/google/generative-ai-go/genai"

// Tool names the model may invoke. The declarations below and the
// Dispatch switch must cover exactly this set.
const (
	toolGetProducts       = "getProducts"
	toolGetProductDetails = "getProductDetails"
	toolGetCourses        = "getCourses"
	toolGetCourseDetails  = "getCourseDetails"
	toolGetUpcomingEvents = "getUpcomingEvents"
	toolCheckAvailability = "checkProductAvailability"
	toolGetContactInfo    = "getContactInfo"
)

// ToolDeclarations returns the fixed capability catalog passed to the
// model at session start. It is built fresh per call but never varies.
func ToolDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        toolGetProducts,
			Description: "Obtiene la lista de productos disponibles en la tienda de Fibro Academy. Usa esto cuando el usuario pregunte sobre productos, cremas, equipos, o qué hay disponible para comprar.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Description: "Categoría de productos: fibroskin-jelly-mask, dm-cell, co2, collagen, lendan, numbing-cream, accesorios, equipos",
					},
					"search": {
						Type:        genai.TypeString,
						Description: "Término de búsqueda para filtrar productos",
					},
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Número máximo de productos a retornar (default: 10)",
					},
				},
			},
		},
		{
			Name:        toolGetProductDetails,
			Description: "Obtiene detalles específicos de un producto por su ID o nombre. Usa esto cuando el usuario pregunte sobre un producto específico, su precio, descripción o disponibilidad.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"productId": {
						Type:        genai.TypeNumber,
						Description: "ID del producto en la tienda",
					},
					"productName": {
						Type:        genai.TypeString,
						Description: "Nombre del producto para buscar",
					},
				},
			},
		},
		{
			Name:        toolGetCourses,
			Description: "Obtiene la lista de cursos disponibles en Fibro Academy. Usa esto cuando el usuario pregunte sobre cursos, talleres, capacitaciones, o qué puede aprender.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Description: "Categoría de cursos: talleres, cursos-corporales, estetica-medica, talleres-cosmeticos",
					},
					"search": {
						Type:        genai.TypeString,
						Description: "Término de búsqueda para filtrar cursos",
					},
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Número máximo de cursos a retornar (default: 10)",
					},
				},
			},
		},
		{
			Name:        toolGetCourseDetails,
			Description: "Obtiene detalles específicos de un curso por su ID o nombre. Usa esto cuando el usuario pregunte sobre un curso específico, su precio, duración o contenido.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"courseId": {
						Type:        genai.TypeString,
						Description: "ID del curso en el CRM",
					},
					"courseName": {
						Type:        genai.TypeString,
						Description: "Nombre del curso para buscar",
					},
				},
			},
		},
		{
			Name:        toolGetUpcomingEvents,
			Description: "Obtiene los próximos eventos, talleres presenciales o fechas de cursos. Usa esto cuando el usuario pregunte sobre fechas, horarios, o cuándo hay cursos disponibles.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Número máximo de eventos a retornar (default: 5)",
					},
				},
			},
		},
		{
			Name:        toolCheckAvailability,
			Description: "Verifica la disponibilidad de un producto específico. Usa esto cuando el usuario pregunte si hay stock o si un producto está disponible.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"productId": {
						Type:        genai.TypeNumber,
						Description: "ID del producto",
					},
					"productName": {
						Type:        genai.TypeString,
						Description: "Nombre del producto",
					},
				},
			},
		},
		{
			Name:        toolGetContactInfo,
			Description: "Obtiene información de contacto de Fibro Academy. Usa esto cuando el usuario pregunte cómo contactar, dónde está ubicada la academia, teléfono, email, etc.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
	}
}
