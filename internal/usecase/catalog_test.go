package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"academy-concierge/internal/domain"
)

func newCatalogService(t *testing.T, commerce CommerceProvider) *CatalogService {
	t.Helper()
	svc, err := NewCatalogService(commerce)
	require.NoError(t, err)
	return svc
}

func requireUsecaseError(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var ucErr *Error
	require.ErrorAs(t, err, &ucErr)
	require.Equal(t, code, ucErr.Code)
	require.Equal(t, reason, ucErr.Reason)
}

func TestListProducts_DefaultLimit(t *testing.T) {
	var got domain.ProductQuery
	commerce := &mockCommerce{getProducts: func(q domain.ProductQuery) ([]domain.Product, error) {
		got = q
		return []domain.Product{{ID: 1}}, nil
	}}
	svc := newCatalogService(t, commerce)

	products, err := svc.ListProducts(context.Background(), ListProductsInput{Category: "equipos"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, domain.ProductQuery{Category: "equipos", Limit: defaultEndpointLimit}, got)
}

func TestListProducts_UpstreamError(t *testing.T) {
	commerce := &mockCommerce{getProducts: func(domain.ProductQuery) ([]domain.Product, error) {
		return nil, errors.New("502")
	}}
	svc := newCatalogService(t, commerce)

	_, err := svc.ListProducts(context.Background(), ListProductsInput{})
	requireUsecaseError(t, err, ErrorUpstream, "store_products_error")
}

func TestProductDetail_ByID(t *testing.T) {
	commerce := &mockCommerce{getProductByID: func(id int) (*domain.Product, error) {
		require.Equal(t, 42, id)
		return &domain.Product{ID: 42}, nil
	}}
	svc := newCatalogService(t, commerce)

	product, err := svc.ProductDetail(context.Background(), ProductDetailInput{ProductID: 42})
	require.NoError(t, err)
	require.Equal(t, 42, product.ID)
}

func TestProductDetail_BySlug(t *testing.T) {
	commerce := &mockCommerce{searchProduct: func(slug string) (*domain.Product, error) {
		require.Equal(t, "jelly-mask", slug)
		return &domain.Product{ID: 7, Slug: "jelly-mask"}, nil
	}}
	svc := newCatalogService(t, commerce)

	product, err := svc.ProductDetail(context.Background(), ProductDetailInput{ProductSlug: "jelly-mask"})
	require.NoError(t, err)
	require.Equal(t, 7, product.ID)
}

func TestProductDetail_MissingIdentifier(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.ProductDetail(context.Background(), ProductDetailInput{})
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_product_identifier")
}

func TestProductDetail_NotFound(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.ProductDetail(context.Background(), ProductDetailInput{ProductID: 99})
	requireUsecaseError(t, err, ErrorNotFound, "product_not_found")
}

func TestAvailability_RequiresProductID(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.Availability(context.Background(), 0)
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_product_identifier")
}

func TestAvailability_NotFound(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.Availability(context.Background(), 99)
	requireUsecaseError(t, err, ErrorNotFound, "product_not_found")
}

func TestListOrders_Defaults(t *testing.T) {
	var gotPage, gotLimit int
	commerce := &mockCommerce{getOrders: func(customerID, page, limit int) ([]domain.Order, error) {
		require.Equal(t, 3, customerID)
		gotPage, gotLimit = page, limit
		return nil, nil
	}}
	svc := newCatalogService(t, commerce)

	_, err := svc.ListOrders(context.Background(), ListOrdersInput{CustomerID: 3})
	require.NoError(t, err)
	require.Equal(t, 1, gotPage)
	require.Equal(t, 10, gotLimit)
}

func TestListOrders_RequiresCustomerID(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.ListOrders(context.Background(), ListOrdersInput{})
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_customer_id")
}

func TestCreateOrder_ValidatesLineItems(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.CreateOrder(context.Background(), domain.OrderDraft{})
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_line_items")

	_, err = svc.CreateOrder(context.Background(), domain.OrderDraft{
		LineItems: []domain.OrderDraftLine{{ProductID: 42, Quantity: 0}},
	})
	requireUsecaseError(t, err, ErrorInvalidInput, "invalid_line_item")
}

func TestCreateOrder_PropagatesUpstreamError(t *testing.T) {
	commerce := &mockCommerce{createOrder: func(domain.OrderDraft) (*domain.OrderConfirmation, error) {
		return nil, errors.New("declined")
	}}
	svc := newCatalogService(t, commerce)

	_, err := svc.CreateOrder(context.Background(), domain.OrderDraft{
		LineItems: []domain.OrderDraftLine{{ProductID: 42, Quantity: 1}},
	})
	requireUsecaseError(t, err, ErrorUpstream, "store_create_order_error")
}

func TestGetOrCreateCustomer_ExistingCustomer(t *testing.T) {
	commerce := &mockCommerce{
		getCustomerByEmail: func(email string) (*domain.Customer, error) {
			require.Equal(t, "ana@example.com", email)
			return &domain.Customer{ID: 5, Email: email}, nil
		},
		createCustomer: func(domain.NewCustomer) (*domain.Customer, error) {
			t.Fatal("create must not run when the customer exists")
			return nil, nil
		},
	}
	svc := newCatalogService(t, commerce)

	customer, err := svc.GetOrCreateCustomer(context.Background(), domain.NewCustomer{Email: " ana@example.com "})
	require.NoError(t, err)
	require.Equal(t, 5, customer.ID)
}

func TestGetOrCreateCustomer_CreatesWhenMissing(t *testing.T) {
	commerce := &mockCommerce{createCustomer: func(nc domain.NewCustomer) (*domain.Customer, error) {
		return &domain.Customer{ID: 9, Email: nc.Email}, nil
	}}
	svc := newCatalogService(t, commerce)

	customer, err := svc.GetOrCreateCustomer(context.Background(), domain.NewCustomer{
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Pérez",
	})
	require.NoError(t, err)
	require.Equal(t, 9, customer.ID)
}

func TestGetOrCreateCustomer_MissingWithoutName(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.GetOrCreateCustomer(context.Background(), domain.NewCustomer{Email: "ana@example.com"})
	requireUsecaseError(t, err, ErrorNotFound, "customer_not_found")
}

func TestGetOrCreateCustomer_RequiresEmail(t *testing.T) {
	svc := newCatalogService(t, &mockCommerce{})

	_, err := svc.GetOrCreateCustomer(context.Background(), domain.NewCustomer{FirstName: "Ana"})
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_email")
}
