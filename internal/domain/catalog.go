package domain

// Product is a normalized store product. Fields absent in the upstream
// response stay at their zero value.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	Price         string   `json:"price"`
	RegularPrice  string   `json:"regular_price"`
	SalePrice     string   `json:"sale_price"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	ImageURL      string   `json:"image,omitempty"`
	StockStatus   string   `json:"stock_status"`
	StockQuantity *int     `json:"stock_quantity"`
	OnSale        bool     `json:"on_sale"`
	Featured      bool     `json:"featured"`
	Rating        string   `json:"rating"`
	RatingCount   int      `json:"rating_count"`
}

// Availability is the derived stock view for a single product.
type Availability struct {
	Available     bool   `json:"available"`
	StockQuantity *int   `json:"stock_quantity"`
	StockStatus   string `json:"stock_status"`
	Name          string `json:"name"`
}

// Category is a product category.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Count    int    `json:"count"`
	ImageURL string `json:"image"`
}

// OrderLine is one line item on an order.
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// Order is a normalized customer order.
type Order struct {
	ID          int         `json:"id"`
	Status      string      `json:"status"`
	Total       string      `json:"total"`
	Currency    string      `json:"currency"`
	DateCreated string      `json:"dateCreated"`
	LineItems   []OrderLine `json:"lineItems"`
}

// OrderDraftLine is one requested line item on a new order.
type OrderDraftLine struct {
	ProductID   int `json:"productId"`
	Quantity    int `json:"quantity"`
	VariationID int `json:"variationId,omitempty"`
}

// OrderDraft is the input for creating an order.
type OrderDraft struct {
	CustomerID int               `json:"customerId"`
	LineItems  []OrderDraftLine  `json:"lineItems"`
	Billing    map[string]string `json:"billing,omitempty"`
	Shipping   map[string]string `json:"shipping,omitempty"`
}

// OrderConfirmation is the minimal view of a freshly created order.
type OrderConfirmation struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Total  string `json:"total"`
}

// Customer is a normalized store customer.
type Customer struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewCustomer is the input for creating a customer.
type NewCustomer struct {
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Billing   map[string]string `json:"billing,omitempty"`
}

// ProductQuery filters a product listing.
type ProductQuery struct {
	Category string
	Search   string
	Limit    int
	Featured *bool
	OnSale   *bool
}
