package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"academy-concierge/internal/domain"
	"academy-concierge/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type chatService interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type catalogService interface {
	ListProducts(ctx context.Context, in usecase.ListProductsInput) ([]domain.Product, error)
	ProductDetail(ctx context.Context, in usecase.ProductDetailInput) (*domain.Product, error)
	Categories(ctx context.Context, parent *int) ([]domain.Category, error)
	Availability(ctx context.Context, productID int) (*domain.Availability, error)
	ListOrders(ctx context.Context, in usecase.ListOrdersInput) ([]domain.Order, error)
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.OrderConfirmation, error)
	GetOrCreateCustomer(ctx context.Context, nc domain.NewCustomer) (*domain.Customer, error)
}

type academyService interface {
	ListCourses(ctx context.Context, in usecase.ListCoursesInput) ([]domain.Course, error)
	CourseDetail(ctx context.Context, in usecase.CourseDetailInput) (*domain.Course, error)
	UpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error)
}

// Handler routes API Gateway events to the concierge services.
type Handler struct {
	chat    chatService
	catalog catalogService
	academy academyService
}

func NewHandler(chat chatService, catalog catalogService, academy academyService) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	if catalog == nil {
		return nil, errors.New("handler: catalog service must not be nil")
	}
	if academy == nil {
		return nil, errors.New("handler: academy service must not be nil")
	}
	return &Handler{chat: chat, catalog: catalog, academy: academy}, nil
}

type chatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []domain.ChatTurn `json:"conversationHistory"`
}

type chatResponse struct {
	Success             bool              `json:"success"`
	Response            string            `json:"response"`
	ConversationHistory []domain.ChatTurn `json:"conversationHistory"`
}

type productsRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Limit    int    `json:"limit"`
}

type productDetailRequest struct {
	ProductID   int    `json:"productId"`
	ProductSlug string `json:"productSlug"`
}

type categoriesRequest struct {
	Parent *int `json:"parent"`
}

type availabilityRequest struct {
	ProductID int `json:"productId"`
}

type coursesRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Limit    int    `json:"limit"`
}

type courseDetailRequest struct {
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
}

type eventsRequest struct {
	Limit int `json:"limit"`
}

type ordersRequest struct {
	CustomerID int `json:"customerId"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

type createOrderRequest struct {
	CustomerID int                     `json:"customerId"`
	LineItems  []domain.OrderDraftLine `json:"lineItems"`
	Billing    map[string]string       `json:"billing"`
	Shipping   map[string]string       `json:"shipping"`
}

type customerRequest struct {
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Billing   map[string]string `json:"billing"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handle dispatches one API Gateway event. Panics and unexpected errors
// are reported to the caller as a generic internal failure; detail stays
// in the logs.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	correlationID := correlationID(event.Headers)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while handling request", "path", event.Path, "correlationId", correlationID, "panic", r)
			resp, err = respond(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)}, correlationID), nil
		}
	}()

	switch strings.TrimRight(event.Path, "/") {
	case "/chat":
		return h.handleChat(ctx, event, correlationID), nil
	case "/products":
		return h.handleProducts(ctx, event, correlationID), nil
	case "/products/detail":
		return h.handleProductDetail(ctx, event, correlationID), nil
	case "/products/categories":
		return h.handleCategories(ctx, event, correlationID), nil
	case "/products/availability":
		return h.handleAvailability(ctx, event, correlationID), nil
	case "/courses":
		return h.handleCourses(ctx, event, correlationID), nil
	case "/courses/detail":
		return h.handleCourseDetail(ctx, event, correlationID), nil
	case "/events":
		return h.handleEvents(ctx, event, correlationID), nil
	case "/orders":
		return h.handleOrders(ctx, event, correlationID), nil
	case "/orders/create":
		return h.handleCreateOrder(ctx, event, correlationID), nil
	case "/customers":
		return h.handleCustomer(ctx, event, correlationID), nil
	case "/contact":
		return respond(http.StatusOK, map[string]any{"success": true, "contact": domain.DefaultContactInfo()}, correlationID), nil
	default:
		return respond(http.StatusNotFound, errorResponse{Error: "NOT_FOUND"}, correlationID), nil
	}
}

func (h *Handler) handleChat(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req chatRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}

	out, err := h.chat.Chat(ctx, usecase.ChatInput{Message: req.Message, History: req.ConversationHistory})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, chatResponse{
		Success:             true,
		Response:            out.Answer,
		ConversationHistory: out.History,
	}, correlationID)
}

func (h *Handler) handleProducts(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req productsRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	products, err := h.catalog.ListProducts(ctx, usecase.ListProductsInput{Category: req.Category, Search: req.Search, Limit: req.Limit})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "products": products}, correlationID)
}

func (h *Handler) handleProductDetail(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req productDetailRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	product, err := h.catalog.ProductDetail(ctx, usecase.ProductDetailInput{ProductID: req.ProductID, ProductSlug: req.ProductSlug})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "product": product}, correlationID)
}

func (h *Handler) handleCategories(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req categoriesRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	categories, err := h.catalog.Categories(ctx, req.Parent)
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "categories": categories}, correlationID)
}

func (h *Handler) handleAvailability(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req availabilityRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	availability, err := h.catalog.Availability(ctx, req.ProductID)
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "availability": availability}, correlationID)
}

func (h *Handler) handleCourses(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req coursesRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	courses, err := h.academy.ListCourses(ctx, usecase.ListCoursesInput{Category: req.Category, Search: req.Search, Limit: req.Limit})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "courses": courses}, correlationID)
}

func (h *Handler) handleCourseDetail(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req courseDetailRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	course, err := h.academy.CourseDetail(ctx, usecase.CourseDetailInput{CourseID: req.CourseID, CourseName: req.CourseName})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "course": course}, correlationID)
}

func (h *Handler) handleEvents(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req eventsRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	eventsList, err := h.academy.UpcomingEvents(ctx, req.Limit)
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "events": eventsList}, correlationID)
}

func (h *Handler) handleOrders(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req ordersRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	orders, err := h.catalog.ListOrders(ctx, usecase.ListOrdersInput{CustomerID: req.CustomerID, Page: req.Page, Limit: req.Limit})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "orders": orders}, correlationID)
}

func (h *Handler) handleCreateOrder(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req createOrderRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	order, err := h.catalog.CreateOrder(ctx, domain.OrderDraft{
		CustomerID: req.CustomerID,
		LineItems:  req.LineItems,
		Billing:    req.Billing,
		Shipping:   req.Shipping,
	})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "order": order}, correlationID)
}

func (h *Handler) handleCustomer(ctx context.Context, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	var req customerRequest
	if !decodeBody(event.Body, &req) {
		return invalidBody(correlationID)
	}
	customer, err := h.catalog.GetOrCreateCustomer(ctx, domain.NewCustomer{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Billing:   req.Billing,
	})
	if err != nil {
		return errorResult(err, correlationID)
	}
	return respond(http.StatusOK, map[string]any{"success": true, "customer": customer}, correlationID)
}

// decodeBody parses a JSON request body. An empty body decodes as an
// empty request.
func decodeBody(body string, v any) bool {
	body = strings.TrimSpace(body)
	if body == "" {
		return true
	}
	return json.Unmarshal([]byte(body), v) == nil
}

func invalidBody(correlationID string) events.APIGatewayProxyResponse {
	return respond(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput)}, correlationID)
}

// errorResult maps a usecase error to a response. Diagnostic detail is
// logged here and never echoed to the caller.
func errorResult(err error, correlationID string) events.APIGatewayProxyResponse {
	var usecaseErr *usecase.Error
	if !errors.As(err, &usecaseErr) {
		slog.Error("unexpected handler error", "correlationId", correlationID, "err", err)
		return respond(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)}, correlationID)
	}

	status := http.StatusInternalServerError
	switch usecaseErr.Code {
	case usecase.ErrorInvalidInput:
		status = http.StatusBadRequest
	case usecase.ErrorNotFound:
		status = http.StatusNotFound
	case usecase.ErrorUpstream:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "correlationId", correlationID, "code", usecaseErr.Code, "reason", usecaseErr.Reason, "err", usecaseErr.Err)
	} else {
		slog.Info("request rejected", "correlationId", correlationID, "code", usecaseErr.Code, "reason", usecaseErr.Reason)
	}
	return respond(status, errorResponse{Error: string(usecaseErr.Code)}, correlationID)
}

func respond(status int, body any, correlationID string) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		slog.Error("marshal response failed", "err", err)
		raw = []byte(`{"success":false,"error":"INTERNAL_ERROR"}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(raw),
	}
}

// correlationID returns the inbound correlation header, matched
// case-insensitively, or a fresh UUID.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
