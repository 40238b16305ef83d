package usecase

import (
	"context"

	"academy-concierge/internal/domain"
)

// CommerceProvider exposes the store catalog, orders and customers.
// Single-record lookups return (nil, nil) when no record matches; list
// operations propagate upstream failures.
type CommerceProvider interface {
	GetProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	GetProductByID(ctx context.Context, productID int) (*domain.Product, error)
	SearchProduct(ctx context.Context, name string) (*domain.Product, error)
	CheckAvailability(ctx context.Context, productID int) (*domain.Availability, error)
	GetCategories(ctx context.Context, parent *int) ([]domain.Category, error)
	GetOrders(ctx context.Context, customerID, page, limit int) ([]domain.Order, error)
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, nc domain.NewCustomer) (*domain.Customer, error)
}

// AcademyProvider exposes the CRM's courses and calendar events, with
// the same not-found and failure semantics as CommerceProvider.
type AcademyProvider interface {
	GetCourses(ctx context.Context, q domain.CourseQuery) ([]domain.Course, error)
	GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error)
	SearchCourse(ctx context.Context, name string) (*domain.Course, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error)
}
