package agentcrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"academy-concierge/internal/domain"
	"academy-concierge/internal/integrations/paramstore"
)

const (
	defaultBaseURL    = "https://services.leadconnectorhq.com"
	defaultAPIVersion = "2021-07-28"
	defaultListLimit  = 10

	eventLocation = "Fibro Academy USA - 2684 NW 97th Ave, Doral, FL"

	// Events are collected over a 30-day window across at most this
	// many calendars per request.
	eventWindowDays  = 30
	maxCalendarScans = 3
)

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("agentcrm: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// crmCourse is the upstream product shape. The CRM is loose about field
// names and nesting, so polymorphic fields are parsed defensively.
type crmCourse struct {
	MongoID     string          `json:"_id"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ProductType string          `json:"productType"`
	Amount      float64         `json:"amount"`
	Prices      json.RawMessage `json:"prices"`
	ImageURL    string          `json:"imageUrl"`
	Image       string          `json:"image"`
	Duration    string          `json:"duration"`
}

type crmPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type crmCalendar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EventType   string `json:"eventType"`
}

// Client is a focused Agent CRM (GoHighLevel) REST client for courses
// and calendar events. The API token is fetched from SSM on first use
// and reused for the lifetime of the process.
type Client struct {
	baseURL    string
	apiVersion string
	locationID string
	httpClient *http.Client

	getter      paramstore.Getter
	paramPrefix string

	tokenOnce sync.Once
	token     string
	tokenErr  error
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = strings.TrimSpace(version)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the given CRM location, backed by the
// given paramstore.Getter for API token retrieval under paramPrefix.
func NewClient(ps paramstore.Getter, paramPrefix, locationID string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("agentcrm: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("agentcrm: parameter prefix must not be empty")
	}
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, errors.New("agentcrm: location id must not be empty")
	}
	c := &Client{
		baseURL:     defaultBaseURL,
		apiVersion:  defaultAPIVersion,
		locationID:  locationID,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		getter:      ps,
		paramPrefix: paramPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolveToken(ctx context.Context) (string, error) {
	c.tokenOnce.Do(func() {
		token, err := c.getter.GetParameter(ctx, c.paramPrefix+"/crm-api-key")
		if err != nil {
			c.tokenErr = fmt.Errorf("agentcrm: fetch api token: %w", err)
			return
		}
		if token == "" {
			c.tokenErr = errors.New("agentcrm: api token is empty")
			return
		}
		c.token = token
	})
	return c.token, c.tokenErr
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.resolveToken(ctx)
	if err != nil {
		return nil, err
	}

	u := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("agentcrm: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("agentcrm: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, URL: u, Body: string(buf)}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("agentcrm: read response body: %w", err)
	}
	return buf, nil
}

// GetCourses lists the location's courses with optional in-memory
// category and search filtering. Upstream failures propagate; there is
// no fallback data.
func (c *Client) GetCourses(ctx context.Context, q domain.CourseQuery) ([]domain.Course, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := url.Values{}
	query.Set("locationId", c.locationID)
	query.Set("limit", strconv.Itoa(limit))

	raw, err := c.get(ctx, "/products/", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Products []crmCourse `json:"products"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("agentcrm: decode products: %w", err)
	}

	items := payload.Products
	if q.Category != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.ProductType), strings.ToLower(q.Category)) ||
				matchCourseCategory(item.Name, q.Category) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), needle) ||
				strings.Contains(strings.ToLower(item.Description), needle) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	if len(items) > limit {
		items = items[:limit]
	}

	courses := make([]domain.Course, 0, len(items))
	for _, item := range items {
		courses = append(courses, toCourse(item))
	}
	return courses, nil
}

// GetCourseByID fetches one course. Missing or failing lookups return
// nil without error; failures other than a plain 404 are logged.
func (c *Client) GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	raw, err := c.get(ctx, "/products/"+url.PathEscape(courseID), nil)
	if err != nil {
		var statusErr *HTTPStatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			slog.Error("agentcrm: get course failed", "courseId", courseID, "err", err)
		}
		return nil, nil
	}

	var item crmCourse
	if err := json.Unmarshal(raw, &item); err != nil {
		slog.Error("agentcrm: decode course failed", "courseId", courseID, "err", err)
		return nil, nil
	}

	course := toCourse(item)
	return &course, nil
}

// SearchCourse finds the closest match for a course name.
func (c *Client) SearchCourse(ctx context.Context, name string) (*domain.Course, error) {
	courses, err := c.GetCourses(ctx, domain.CourseQuery{Search: name, Limit: 1})
	if err != nil {
		slog.Error("agentcrm: search course failed", "name", name, "err", err)
		return nil, nil
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return &courses[0], nil
}

// GetUpcomingEvents collects open calendar slots over the next 30 days.
// A failing calendar listing propagates; individual calendars that fail
// are skipped. No calendars means no events, never fabricated ones.
func (c *Client) GetUpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 5
	}

	query := url.Values{}
	query.Set("locationId", c.locationID)

	raw, err := c.get(ctx, "/calendars/", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Calendars []crmCalendar `json:"calendars"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("agentcrm: decode calendars: %w", err)
	}

	calendars := payload.Calendars
	if len(calendars) > maxCalendarScans {
		calendars = calendars[:maxCalendarScans]
	}

	now := time.Now()
	startDate := now.Format("2006-01-02")
	endDate := now.AddDate(0, 0, eventWindowDays).Format("2006-01-02")

	events := make([]domain.Event, 0, limit)
	for _, calendar := range calendars {
		slots, err := c.freeSlots(ctx, calendar.ID, startDate, endDate)
		if err != nil {
			slog.Error("agentcrm: free slots failed", "calendarId", calendar.ID, "err", err)
			continue
		}

		dates := make([]string, 0, len(slots))
		for date := range slots {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		for _, date := range dates {
			times := slots[date]
			if len(times) == 0 {
				continue
			}
			title := calendar.Name
			if title == "" {
				title = "Evento"
			}
			eventType := calendar.EventType
			if eventType == "" {
				eventType = "Taller"
			}
			events = append(events, domain.Event{
				ID:          calendar.ID + "-" + date,
				Title:       title,
				Description: calendar.Description,
				StartTime:   date + "T" + times[0],
				EndTime:     date + "T" + times[len(times)-1],
				Location:    eventLocation,
				Type:        eventType,
			})
		}
	}

	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (c *Client) freeSlots(ctx context.Context, calendarID, startDate, endDate string) (map[string][]string, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	raw, err := c.get(ctx, "/calendars/"+url.PathEscape(calendarID)+"/free-slots", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Slots map[string][]string `json:"slots"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("agentcrm: decode free slots: %w", err)
	}
	return payload.Slots, nil
}

func toCourse(item crmCourse) domain.Course {
	id := item.MongoID
	if id == "" {
		id = item.ID
	}

	amount, currency := priceOf(item)

	course := domain.Course{
		ID:             id,
		Name:           item.Name,
		Description:    stripHTML(item.Description),
		Price:          amount / 100,
		PriceFormatted: formatPrice(amount, currency),
		Category:       detectCourseCategory(item.Name),
		ImageURL:       item.ImageURL,
		Duration:       item.Duration,
		Availability:   "Disponible",
	}
	if course.ImageURL == "" {
		course.ImageURL = item.Image
	}
	return course
}

// priceOf reads the cent amount and currency from whichever shape the
// CRM used. Unparseable price blocks count as absent.
func priceOf(item crmCourse) (float64, string) {
	if len(item.Prices) > 0 {
		var price crmPrice
		if err := json.Unmarshal(item.Prices, &price); err == nil && price.Amount > 0 {
			return price.Amount, price.Currency
		}
	}
	return item.Amount, ""
}

// formatPrice renders a cent amount as a user-facing price string.
func formatPrice(cents float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	formatted := groupThousands(strconv.FormatFloat(cents/100, 'f', 2, 64))
	if currency == "USD" {
		return "$" + formatted
	}
	return formatted + " " + currency
}

func groupThousands(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		if fracPart == "" {
			return intPart
		}
		return intPart + "." + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// detectCourseCategory buckets a course by name keywords.
func detectCourseCategory(name string) string {
	nameLower := strings.ToLower(name)

	switch {
	case containsAny(nameLower, "corporal", "body", "butt", "fibrolight"):
		return "Cursos Corporales"
	case containsAny(nameLower, "plasma", "botox", "hialurónico", "hyaluronic"):
		return "Estética Médica"
	case containsAny(nameLower, "cosmético", "formulación"):
		return "Talleres Cosméticos"
	default:
		return "Talleres"
	}
}

var courseCategoryKeywords = map[string][]string{
	"talleres":            {"taller", "mesoterapia", "microblading", "skincare", "limpieza", "hydra", "pdo", "enzimas"},
	"cursos-corporales":   {"corporal", "body", "butt", "fibrolight", "contour", "reductivo"},
	"estetica-medica":     {"plasma", "botox", "hialurónico", "hyaluronic", "médica", "avanzado"},
	"talleres-cosmeticos": {"cosmético", "formulación", "skincare pro"},
}

func matchCourseCategory(courseName, category string) bool {
	keywords := courseCategoryKeywords[strings.ToLower(category)]
	return containsAny(strings.ToLower(courseName), keywords...)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}
