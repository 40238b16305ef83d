package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"academy-concierge/internal/domain"
)

// Dispatcher executes tool invocations requested by the model. Dispatch
// never returns an error: every failure mode becomes a structured
// {"error": ...} result so a failed lookup degrades the conversation
// instead of aborting it.
type Dispatcher struct {
	commerce CommerceProvider
	academy  AcademyProvider
	contact  domain.ContactInfo
}

// NewDispatcher creates a Dispatcher over the given providers.
func NewDispatcher(commerce CommerceProvider, academy AcademyProvider) (*Dispatcher, error) {
	if commerce == nil {
		return nil, errors.New("usecase: commerce provider must not be nil")
	}
	if academy == nil {
		return nil, errors.New("usecase: academy provider must not be nil")
	}
	return &Dispatcher{
		commerce: commerce,
		academy:  academy,
		contact:  domain.DefaultContactInfo(),
	}, nil
}

// Dispatch runs the named tool with the model-supplied argument bag.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) any {
	slog.Info("dispatching tool", "tool", name)

	switch name {
	case toolGetProducts:
		products, err := d.commerce.GetProducts(ctx, domain.ProductQuery{
			Category: stringArg(args, "category"),
			Search:   stringArg(args, "search"),
			Limit:    intArg(args, "limit", 10),
		})
		if err != nil {
			slog.Error("getProducts failed", "err", err)
			return errResult("No se pudieron obtener los productos")
		}
		return products

	case toolGetProductDetails:
		if id, ok := intArgValue(args, "productId"); ok {
			product, err := d.commerce.GetProductByID(ctx, id)
			return productResult(product, err)
		}
		if name := stringArg(args, "productName"); name != "" {
			product, err := d.commerce.SearchProduct(ctx, name)
			return productResult(product, err)
		}
		return errResult("Se requiere productId o productName")

	case toolGetCourses:
		courses, err := d.academy.GetCourses(ctx, domain.CourseQuery{
			Category: stringArg(args, "category"),
			Search:   stringArg(args, "search"),
			Limit:    intArg(args, "limit", 10),
		})
		if err != nil {
			slog.Error("getCourses failed", "err", err)
			return errResult("No se pudieron obtener los cursos")
		}
		return courses

	case toolGetCourseDetails:
		if id := stringArg(args, "courseId"); id != "" {
			course, err := d.academy.GetCourseByID(ctx, id)
			return courseResult(course, err)
		}
		if name := stringArg(args, "courseName"); name != "" {
			course, err := d.academy.SearchCourse(ctx, name)
			return courseResult(course, err)
		}
		return errResult("Se requiere courseId o courseName")

	case toolGetUpcomingEvents:
		events, err := d.academy.GetUpcomingEvents(ctx, intArg(args, "limit", 5))
		if err != nil {
			slog.Error("getUpcomingEvents failed", "err", err)
			return errResult("No se pudieron obtener los eventos")
		}
		return events

	case toolCheckAvailability:
		if id, ok := intArgValue(args, "productId"); ok {
			availability, err := d.commerce.CheckAvailability(ctx, id)
			if err != nil {
				slog.Error("checkProductAvailability failed", "productId", id, "err", err)
				return errResult("No se pudo verificar la disponibilidad")
			}
			if availability == nil {
				return errResult("Producto no encontrado")
			}
			return availability
		}
		if name := stringArg(args, "productName"); name != "" {
			product, err := d.commerce.SearchProduct(ctx, name)
			if err != nil {
				slog.Error("checkProductAvailability search failed", "productName", name, "err", err)
				return errResult("No se pudo verificar la disponibilidad")
			}
			if product != nil {
				return map[string]any{
					"available":      product.StockStatus == "instock",
					"stock_quantity": product.StockQuantity,
					"name":           product.Name,
				}
			}
		}
		return errResult("Producto no encontrado")

	case toolGetContactInfo:
		return d.contact

	default:
		return errResult("Función desconocida: " + name)
	}
}

func productResult(product *domain.Product, err error) any {
	if err != nil {
		slog.Error("product lookup failed", "err", err)
		return errResult("No se pudo obtener el producto")
	}
	if product == nil {
		return errResult("Producto no encontrado")
	}
	return product
}

func courseResult(course *domain.Course, err error) any {
	if err != nil {
		slog.Error("course lookup failed", "err", err)
		return errResult("No se pudo obtener el curso")
	}
	if course == nil {
		return errResult("Curso no encontrado")
	}
	return course
}

func errResult(reason string) map[string]any {
	return map[string]any{"error": reason}
}

// stringArg reads a string argument, tolerating absence and non-string
// values.
func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

// intArgValue reads a numeric argument. JSON numbers arrive as float64;
// the model occasionally sends numerals as strings, so those parse too.
func intArgValue(args map[string]any, key string) (int, bool) {
	if args == nil {
		return 0, false
	}
	switch v := args[key].(type) {
	case float64:
		if v != 0 {
			return int(v), true
		}
	case int:
		if v != 0 {
			return v, true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n != 0 {
			return n, true
		}
	}
	return 0, false
}

// intArg reads a numeric argument with a default for absent or falsy
// values.
func intArg(args map[string]any, key string, def int) int {
	if n, ok := intArgValue(args, key); ok {
		return n
	}
	return def
}
