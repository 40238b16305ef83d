package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"academy-concierge/internal/domain"
	"academy-concierge/internal/integrations/paramstore"
)

const apiRoot = "/wp-json/wc/v3"

const defaultListLimit = 10

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("woocommerce: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// wcProduct is the upstream product shape; only the fields we consume.
type wcProduct struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Price            string `json:"price"`
	RegularPrice     string `json:"regular_price"`
	SalePrice        string `json:"sale_price"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Categories       []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"categories"`
	Images []struct {
		ID  int    `json:"id"`
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"images"`
	StockStatus   string `json:"stock_status"`
	StockQuantity *int   `json:"stock_quantity"`
	OnSale        bool   `json:"on_sale"`
	Featured      bool   `json:"featured"`
	AverageRating string `json:"average_rating"`
	RatingCount   int    `json:"rating_count"`
}

type wcCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
	Image *struct {
		Src string `json:"src"`
	} `json:"image"`
}

type wcOrder struct {
	ID          int    `json:"id"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
	DateCreated string `json:"date_created"`
	LineItems   []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
		Total    string `json:"total"`
	} `json:"line_items"`
}

type wcCustomer struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Client is a focused WooCommerce REST client for the store catalog,
// orders and customers. Credentials are fetched from SSM on first use
// and reused for the lifetime of the process.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	getter      paramstore.Getter
	paramPrefix string

	credOnce sync.Once
	key      string
	secret   string
	credErr  error
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client backed by the given paramstore.Getter for
// consumer key/secret retrieval under paramPrefix.
func NewClient(ps paramstore.Getter, paramPrefix string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("woocommerce: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("woocommerce: parameter prefix must not be empty")
	}
	c := &Client{
		baseURL:     "https://fibroacademyusa.com",
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		getter:      ps,
		paramPrefix: paramPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolveCredentials(ctx context.Context) (string, string, error) {
	c.credOnce.Do(func() {
		key, err := c.getter.GetParameter(ctx, c.paramPrefix+"/wc-consumer-key")
		if err != nil {
			c.credErr = fmt.Errorf("woocommerce: fetch consumer key: %w", err)
			return
		}
		secret, err := c.getter.GetParameter(ctx, c.paramPrefix+"/wc-consumer-secret")
		if err != nil {
			c.credErr = fmt.Errorf("woocommerce: fetch consumer secret: %w", err)
			return
		}
		if key == "" || secret == "" {
			c.credErr = errors.New("woocommerce: consumer credentials are empty")
			return
		}
		c.key, c.secret = key, secret
	})
	return c.key, c.secret, c.credErr
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.baseURL, "/") + apiRoot + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one authenticated request and returns the raw body.
// Non-2xx responses become *HTTPStatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	key, secret, err := c.resolveCredentials(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("woocommerce: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: create request: %w", err)
	}
	req.SetBasicAuth(key, secret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, URL: u, Body: string(buf)}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: read response body: %w", err)
	}
	return buf, nil
}

// GetProducts lists published products with optional filters. Upstream
// failures propagate; there is no fallback data.
func (c *Client) GetProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(limit))
	query.Set("status", "publish")
	if q.Category != "" {
		// Category filters arrive as slugs; the API wants numeric IDs.
		if id, ok := c.categoryIDBySlug(ctx, q.Category); ok {
			query.Set("category", strconv.Itoa(id))
		}
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Featured != nil {
		query.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.OnSale != nil {
		query.Set("on_sale", strconv.FormatBool(*q.OnSale))
	}

	raw, err := c.do(ctx, http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}

	var items []wcProduct
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("woocommerce: decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, toListProduct(item))
	}
	return products, nil
}

// GetProductByID fetches one product. Missing or failing lookups return
// nil without error; failures other than a plain 404 are logged.
func (c *Client) GetProductByID(ctx context.Context, productID int) (*domain.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, nil)
	if err != nil {
		var statusErr *HTTPStatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			slog.Error("woocommerce: get product failed", "productId", productID, "err", err)
		}
		return nil, nil
	}

	var item wcProduct
	if err := json.Unmarshal(raw, &item); err != nil {
		slog.Error("woocommerce: decode product failed", "productId", productID, "err", err)
		return nil, nil
	}

	p := toDetailProduct(item)
	return &p, nil
}

// SearchProduct finds the closest match for a product name.
func (c *Client) SearchProduct(ctx context.Context, name string) (*domain.Product, error) {
	products, err := c.GetProducts(ctx, domain.ProductQuery{Search: name, Limit: 1})
	if err != nil {
		slog.Error("woocommerce: search product failed", "name", name, "err", err)
		return nil, nil
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// CheckAvailability derives the stock view for a product, or nil when
// the product cannot be found.
func (c *Client) CheckAvailability(ctx context.Context, productID int) (*domain.Availability, error) {
	product, err := c.GetProductByID(ctx, productID)
	if err != nil || product == nil {
		return nil, err
	}
	return &domain.Availability{
		Available:     product.StockStatus == "instock",
		StockQuantity: product.StockQuantity,
		StockStatus:   product.StockStatus,
		Name:          product.Name,
	}, nil
}

// GetCategories lists non-empty product categories, optionally under a
// parent category.
func (c *Client) GetCategories(ctx context.Context, parent *int) ([]domain.Category, error) {
	query := url.Values{}
	query.Set("per_page", "100")
	query.Set("hide_empty", "true")
	if parent != nil {
		query.Set("parent", strconv.Itoa(*parent))
	}

	raw, err := c.do(ctx, http.MethodGet, "/products/categories", query, nil)
	if err != nil {
		return nil, err
	}

	var items []wcCategory
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("woocommerce: decode categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(items))
	for _, item := range items {
		cat := domain.Category{ID: item.ID, Name: item.Name, Slug: item.Slug, Count: item.Count}
		if item.Image != nil {
			cat.ImageURL = item.Image.Src
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// GetOrders lists a customer's orders, newest first.
func (c *Client) GetOrders(ctx context.Context, customerID, page, limit int) ([]domain.Order, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := url.Values{}
	query.Set("customer", strconv.Itoa(customerID))
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(limit))
	query.Set("orderby", "date")
	query.Set("order", "desc")

	raw, err := c.do(ctx, http.MethodGet, "/orders", query, nil)
	if err != nil {
		return nil, err
	}

	var items []wcOrder
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("woocommerce: decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		order := domain.Order{
			ID:          item.ID,
			Status:      item.Status,
			Total:       item.Total,
			Currency:    item.Currency,
			DateCreated: item.DateCreated,
			LineItems:   make([]domain.OrderLine, 0, len(item.LineItems)),
		}
		for _, li := range item.LineItems {
			order.LineItems = append(order.LineItems, domain.OrderLine{Name: li.Name, Quantity: li.Quantity, Total: li.Total})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CreateOrder places an unpaid order to be settled in the app.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error) {
	lineItems := make([]map[string]any, 0, len(draft.LineItems))
	for _, li := range draft.LineItems {
		item := map[string]any{
			"product_id": li.ProductID,
			"quantity":   li.Quantity,
		}
		if li.VariationID != 0 {
			item["variation_id"] = li.VariationID
		}
		lineItems = append(lineItems, item)
	}

	payload := map[string]any{
		"payment_method":       "cod",
		"payment_method_title": "Pago en la app",
		"set_paid":             false,
		"line_items":           lineItems,
	}
	if draft.CustomerID != 0 {
		payload["customer_id"] = draft.CustomerID
	}
	if draft.Billing != nil {
		payload["billing"] = draft.Billing
	}
	if draft.Shipping != nil {
		payload["shipping"] = draft.Shipping
	}

	raw, err := c.do(ctx, http.MethodPost, "/orders", nil, payload)
	if err != nil {
		return nil, err
	}

	var created wcOrder
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("woocommerce: decode created order: %w", err)
	}
	return &domain.OrderConfirmation{ID: created.ID, Status: created.Status, Total: created.Total}, nil
}

// GetCustomerByEmail finds a customer record, or nil when none exists.
func (c *Client) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := url.Values{}
	query.Set("email", email)

	raw, err := c.do(ctx, http.MethodGet, "/customers", query, nil)
	if err != nil {
		slog.Error("woocommerce: get customer failed", "err", err)
		return nil, nil
	}

	var items []wcCustomer
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Error("woocommerce: decode customers failed", "err", err)
		return nil, nil
	}
	if len(items) == 0 {
		return nil, nil
	}
	return toCustomer(items[0]), nil
}

// CreateCustomer registers a new store customer.
func (c *Client) CreateCustomer(ctx context.Context, nc domain.NewCustomer) (*domain.Customer, error) {
	billing := nc.Billing
	if billing == nil {
		billing = map[string]string{}
	}
	payload := map[string]any{
		"email":      nc.Email,
		"first_name": nc.FirstName,
		"last_name":  nc.LastName,
		"billing":    billing,
	}

	raw, err := c.do(ctx, http.MethodPost, "/customers", nil, payload)
	if err != nil {
		return nil, err
	}

	var created wcCustomer
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("woocommerce: decode created customer: %w", err)
	}
	return toCustomer(created), nil
}

// categoryIDBySlug resolves a category slug to its numeric ID. Failures
// fall open: an unresolvable slug simply drops the category filter.
func (c *Client) categoryIDBySlug(ctx context.Context, slug string) (int, bool) {
	query := url.Values{}
	query.Set("slug", slug)

	raw, err := c.do(ctx, http.MethodGet, "/products/categories", query, nil)
	if err != nil {
		slog.Error("woocommerce: resolve category slug failed", "slug", slug, "err", err)
		return 0, false
	}

	var items []wcCategory
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Error("woocommerce: decode category lookup failed", "slug", slug, "err", err)
		return 0, false
	}
	if len(items) == 0 {
		return 0, false
	}
	return items[0].ID, true
}

func toListProduct(item wcProduct) domain.Product {
	description := item.ShortDescription
	if description == "" {
		description = item.Description
	}
	categories := make([]string, 0, len(item.Categories))
	for _, cat := range item.Categories {
		categories = append(categories, cat.Name)
	}
	p := domain.Product{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		RegularPrice:  item.RegularPrice,
		SalePrice:     item.SalePrice,
		Description:   stripHTML(description),
		Categories:    categories,
		StockStatus:   item.StockStatus,
		StockQuantity: item.StockQuantity,
		OnSale:        item.OnSale,
		Featured:      item.Featured,
		Rating:        item.AverageRating,
		RatingCount:   item.RatingCount,
	}
	if len(item.Images) > 0 {
		p.ImageURL = item.Images[0].Src
	}
	return p
}

func toDetailProduct(item wcProduct) domain.Product {
	p := toListProduct(item)
	p.Slug = item.Slug
	p.Description = stripHTML(item.Description)
	return p
}

func toCustomer(item wcCustomer) *domain.Customer {
	return &domain.Customer{
		ID:        item.ID,
		Email:     item.Email,
		FirstName: item.FirstName,
		LastName:  item.LastName,
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}
