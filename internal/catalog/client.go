package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public v1 endpoint of TheMealDB.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// ErrNotFound is returned when the upstream reports no matches. The API
// signals this with a null (or missing) meals list, not an HTTP error.
var ErrNotFound = errors.New("catalog: no matching meals")

// Client is an interface for the recipe catalog API.
type Client interface {
	SearchByIngredient(ctx context.Context, term string) ([]MealSummary, error)
	LookupByID(ctx context.Context, id string) (*Meal, error)
	ListCategories(ctx context.Context) []string
	ListAreas(ctx context.Context) []string
}

// RequestRecorder receives one observation per upstream request. Implemented
// by metrics.Store; a nil recorder disables recording.
type RequestRecorder interface {
	RecordRequest(endpoint string, status int, latency time.Duration)
}

// httpClient is the concrete implementation of Client.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	recorder   RequestRecorder
}

// NewClient creates a catalog client against baseURL. recorder may be nil.
func NewClient(baseURL string, recorder RequestRecorder) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		recorder:   recorder,
	}
}

// searchResponse is the envelope shared by every catalog endpoint. A null
// meals list means "no matches".
type searchResponse struct {
	Meals []json.RawMessage `json:"meals"`
}

// SearchByIngredient returns the partial meal records matching an ingredient
// term. The term must already be trimmed and non-empty; that check belongs to
// the caller.
func (c *httpClient) SearchByIngredient(ctx context.Context, term string) ([]MealSummary, error) {
	raw, err := c.get(ctx, "filter.php", url.Values{"i": {term}})
	if err != nil {
		return nil, err
	}
	if len(raw.Meals) == 0 {
		return nil, ErrNotFound
	}

	meals := make([]MealSummary, 0, len(raw.Meals))
	for _, msg := range raw.Meals {
		var m MealSummary
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, fmt.Errorf("failed to decode meal summary: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// LookupByID fetches the full recipe record for a meal id.
func (c *httpClient) LookupByID(ctx context.Context, id string) (*Meal, error) {
	raw, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(raw.Meals) == 0 {
		return nil, ErrNotFound
	}

	var m Meal
	if err := json.Unmarshal(raw.Meals[0], &m); err != nil {
		return nil, fmt.Errorf("failed to decode meal %s: %w", id, err)
	}
	return &m, nil
}

// ListCategories returns the catalog's category names. Best-effort: failures
// are logged and yield an empty list, since filter population is cosmetic.
func (c *httpClient) ListCategories(ctx context.Context) []string {
	return c.listNames(ctx, url.Values{"c": {"list"}}, "strCategory")
}

// ListAreas returns the catalog's area (cuisine) names, best-effort.
func (c *httpClient) ListAreas(ctx context.Context) []string {
	return c.listNames(ctx, url.Values{"a": {"list"}}, "strArea")
}

func (c *httpClient) listNames(ctx context.Context, query url.Values, field string) []string {
	raw, err := c.get(ctx, "list.php", query)
	if err != nil {
		log.Printf("Warning: failed to load %s filter list: %v", field, err)
		return nil
	}

	var names []string
	for _, msg := range raw.Meals {
		var entry map[string]string
		if err := json.Unmarshal(msg, &entry); err != nil {
			log.Printf("Warning: failed to decode %s entry: %v", field, err)
			return nil
		}
		if name := entry[field]; name != "" {
			names = append(names, name)
		}
	}
	return names
}

// get executes one catalog request and decodes the shared envelope.
func (c *httpClient) get(ctx context.Context, endpoint string, query url.Values) (*searchResponse, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(endpoint, 0, start)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	c.record(endpoint, resp.StatusCode, start)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api error: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &decoded, nil
}

func (c *httpClient) record(endpoint string, status int, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordRequest(endpoint, status, time.Since(start))
}
