package usecase

import (
	"context"
	"errors"
	"strings"

	"academy-concierge/internal/domain"
)

const defaultEndpointLimit = 20

// CatalogService backs the direct store endpoints that bypass the
// model: product listings, categories, availability, orders and
// customers.
type CatalogService struct {
	commerce CommerceProvider
}

func NewCatalogService(commerce CommerceProvider) (*CatalogService, error) {
	if commerce == nil {
		return nil, errors.New("usecase: commerce provider must not be nil")
	}
	return &CatalogService{commerce: commerce}, nil
}

type ListProductsInput struct {
	Category string
	Search   string
	Limit    int
}

func (s *CatalogService) ListProducts(ctx context.Context, in ListProductsInput) ([]domain.Product, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultEndpointLimit
	}
	products, err := s.commerce.GetProducts(ctx, domain.ProductQuery{
		Category: in.Category,
		Search:   in.Search,
		Limit:    limit,
	})
	if err != nil {
		return nil, newError(ErrorUpstream, "store_products_error", err)
	}
	return products, nil
}

type ProductDetailInput struct {
	ProductID   int
	ProductSlug string
}

func (s *CatalogService) ProductDetail(ctx context.Context, in ProductDetailInput) (*domain.Product, error) {
	var (
		product *domain.Product
		err     error
	)
	switch {
	case in.ProductID != 0:
		product, err = s.commerce.GetProductByID(ctx, in.ProductID)
	case strings.TrimSpace(in.ProductSlug) != "":
		product, err = s.commerce.SearchProduct(ctx, in.ProductSlug)
	default:
		return nil, newError(ErrorInvalidInput, "missing_product_identifier", nil)
	}
	if err != nil {
		return nil, newError(ErrorUpstream, "store_product_error", err)
	}
	if product == nil {
		return nil, newError(ErrorNotFound, "product_not_found", nil)
	}
	return product, nil
}

func (s *CatalogService) Categories(ctx context.Context, parent *int) ([]domain.Category, error) {
	categories, err := s.commerce.GetCategories(ctx, parent)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_categories_error", err)
	}
	return categories, nil
}

func (s *CatalogService) Availability(ctx context.Context, productID int) (*domain.Availability, error) {
	if productID == 0 {
		return nil, newError(ErrorInvalidInput, "missing_product_identifier", nil)
	}
	availability, err := s.commerce.CheckAvailability(ctx, productID)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_availability_error", err)
	}
	if availability == nil {
		return nil, newError(ErrorNotFound, "product_not_found", nil)
	}
	return availability, nil
}

type ListOrdersInput struct {
	CustomerID int
	Page       int
	Limit      int
}

func (s *CatalogService) ListOrders(ctx context.Context, in ListOrdersInput) ([]domain.Order, error) {
	if in.CustomerID == 0 {
		return nil, newError(ErrorInvalidInput, "missing_customer_id", nil)
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	orders, err := s.commerce.GetOrders(ctx, in.CustomerID, page, limit)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_orders_error", err)
	}
	return orders, nil
}

func (s *CatalogService) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error) {
	if len(draft.LineItems) == 0 {
		return nil, newError(ErrorInvalidInput, "missing_line_items", nil)
	}
	for _, li := range draft.LineItems {
		if li.ProductID == 0 || li.Quantity <= 0 {
			return nil, newError(ErrorInvalidInput, "invalid_line_item", nil)
		}
	}
	order, err := s.commerce.CreateOrder(ctx, draft)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_create_order_error", err)
	}
	return order, nil
}

// GetOrCreateCustomer looks a customer up by email and registers a new
// record when none exists and a name was supplied.
func (s *CatalogService) GetOrCreateCustomer(ctx context.Context, nc domain.NewCustomer) (*domain.Customer, error) {
	email := strings.TrimSpace(nc.Email)
	if email == "" {
		return nil, newError(ErrorInvalidInput, "missing_email", nil)
	}

	customer, err := s.commerce.GetCustomerByEmail(ctx, email)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_customer_error", err)
	}
	if customer != nil {
		return customer, nil
	}

	if strings.TrimSpace(nc.FirstName) == "" || strings.TrimSpace(nc.LastName) == "" {
		return nil, newError(ErrorNotFound, "customer_not_found", nil)
	}

	nc.Email = email
	customer, err = s.commerce.CreateCustomer(ctx, nc)
	if err != nil {
		return nil, newError(ErrorUpstream, "store_create_customer_error", err)
	}
	return customer, nil
}
