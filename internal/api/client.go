// Package api implements the HTTP client for the calendar REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/assessment-calendar/internal/model"
)

// ErrNotFound is returned when the server reports 404 for an assessment ID.
var ErrNotFound = errors.New("assessment not found")

// envelope is the JSON wrapper every endpoint responds with.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
}

// Client is a thin HTTP client for the calendar API. Requests carry an
// X-Request-ID header so server logs can be correlated with client activity.
// There is deliberately no retry policy: a failed fetch surfaces to the UI
// and waits for an explicit user-triggered retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:3000).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListAssessments fetches the full assessment table, ordered by due date.
func (c *Client) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	var out []model.Assessment
	if err := c.do(ctx, http.MethodGet, "/api/calendar", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssessmentsByDate fetches the assessments due on the given
// YYYY-MM-DD date key.
func (c *Client) ListAssessmentsByDate(ctx context.Context, dateKey string) ([]model.Assessment, error) {
	var out []model.Assessment
	if err := c.do(ctx, http.MethodGet, "/api/calendar/"+dateKey, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAssessment creates a new assessment and returns the stored row with
// its server-assigned ID.
func (c *Client) CreateAssessment(ctx context.Context, in model.AssessmentInput) (model.Assessment, error) {
	var out model.Assessment
	if err := c.do(ctx, http.MethodPost, "/api/calendar", in, &out); err != nil {
		return model.Assessment{}, err
	}
	return out, nil
}

// UpdateAssessment replaces every mutable field of the assessment with the
// given ID. There are no partial updates.
func (c *Client) UpdateAssessment(ctx context.Context, id int, in model.AssessmentInput) (model.Assessment, error) {
	var out model.Assessment
	path := fmt.Sprintf("/api/calendar/%d", id)
	if err := c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return model.Assessment{}, err
	}
	return out, nil
}

// DeleteAssessment permanently removes the assessment with the given ID and
// returns the deleted row.
func (c *Client) DeleteAssessment(ctx context.Context, id int) (model.Assessment, error) {
	var out model.Assessment
	path := fmt.Sprintf("/api/calendar/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return model.Assessment{}, err
	}
	return out, nil
}

// Health checks the server's health endpoint and returns its message.
func (c *Client) Health(ctx context.Context) (string, error) {
	env, err := c.doRaw(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// do performs a request and unmarshals the envelope's data field into result.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	env, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("unmarshaling data from %s %s: %w", method, path, err)
	}
	return nil
}

// doRaw is the core HTTP method that builds the request and decodes the
// response envelope, mapping HTTP status codes to errors.
func (c *Client) doRaw(
	ctx context.Context,
	method string,
	path string,
	body interface{},
) (*envelope, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf(
			"unmarshaling response from %s %s (status %d): %w",
			method, path, resp.StatusCode, err,
		)
	}

	if resp.StatusCode == http.StatusNotFound {
		if env.Message != "" {
			return nil, fmt.Errorf("%s %s: %s: %w", method, path, env.Message, ErrNotFound)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if env.Error != "" {
			msg = fmt.Sprintf("%s: %s", env.Message, env.Error)
		}
		if msg == "" {
			msg = string(respBody)
		}
		return nil, fmt.Errorf("server error (%d) on %s %s: %s", resp.StatusCode, method, path, msg)
	}

	return &env, nil
}
