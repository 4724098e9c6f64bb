package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/volume"
)

// HTTPClient implements DataSource by calling the LiftVolume REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// getJSON fetches path and decodes the body into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func methodParams(m volume.Method) url.Values {
	v := url.Values{}
	v.Set("method", string(m))
	return v
}

func (c *HTTPClient) WeeklySummary(ctx context.Context, m volume.Method) ([]models.MuscleGroupSummary, error) {
	var rows []models.MuscleGroupSummary
	if err := c.getJSON(ctx, "/api/v1/summary/weekly", methodParams(m), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) SessionSummary(ctx context.Context, m volume.Method, routine string) ([]models.SessionSummary, error) {
	params := methodParams(m)
	if routine != "" {
		params.Set("routine", routine)
	}
	var rows []models.SessionSummary
	if err := c.getJSON(ctx, "/api/v1/summary/session", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) Contributions(ctx context.Context, id uuid.UUID, m volume.Method) ([]volume.Contribution, error) {
	var contribs []volume.Contribution
	path := "/api/v1/entries/" + id.String() + "/contributions"
	if err := c.getJSON(ctx, path, methodParams(m), &contribs); err != nil {
		return nil, err
	}
	return contribs, nil
}

func (c *HTTPClient) FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error) {
	params := url.Values{}
	for field, value := range f.Constraints() {
		params.Set(field, value)
	}
	var names []string
	if err := c.getJSON(ctx, "/api/v1/exercises", params, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *HTTPClient) Entries(ctx context.Context) ([]models.SelectionEntry, error) {
	var entries []models.SelectionEntry
	if err := c.getJSON(ctx, "/api/v1/entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.getJSON(ctx, "/api/v1/catalog", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
