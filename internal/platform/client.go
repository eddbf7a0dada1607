package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bankseed/internal"
)

// Config holds the per-service base URLs of the environment being seeded.
type Config struct {
	ArrangementsURL string
	AccessURL       string
	UsersURL        string
	PocketsURL      string
	EngagementURL   string
}

// Client wraps the platform's REST services. Every call goes out exactly once
// with no retry and no timeout: a seeding run is best effort against a
// disposable environment and must fail fast and deterministically.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// ErrorBody is the error envelope the platform returns on 4xx responses. The
// per-entry Key is what distinguishes a duplicate-entity rejection from a
// real failure.
type ErrorBody struct {
	Message string       `json:"message"`
	Errors  []ErrorEntry `json:"errors"`
}

type ErrorEntry struct {
	Message string `json:"message"`
	Key     string `json:"key"`
}

// HasErrorKey reports whether the raw error body carries the given error key.
func HasErrorKey(body []byte, key string) bool {
	var errBody ErrorBody
	if err := json.Unmarshal(body, &errBody); err != nil {
		return false
	}
	for _, entry := range errBody.Errors {
		if entry.Key == key {
			return true
		}
	}
	return false
}

func (c *Client) newRequest(ctx context.Context, session Session, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	return req, nil
}

// post issues a POST and hands back the raw response; the caller owns the
// status-code decision (idempotent creates route through seeder.CreateOrSkip).
func (c *Client) post(ctx context.Context, session Session, url string, body any) (*http.Response, error) {
	req, err := c.newRequest(ctx, session, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, internal.NewExternalError("POST "+url, err)
	}
	return resp, nil
}

// postExpect issues a POST and requires wantStatus, decoding the body into
// out when out is non-nil.
func (c *Client) postExpect(ctx context.Context, session Session, url string, body any, wantStatus int, out any) error {
	resp, err := c.post(ctx, session, url, body)
	if err != nil {
		return err
	}
	return c.expect(resp, wantStatus, out)
}

// get issues a GET and requires 200, decoding the body into out. A 404 maps
// to a NOT_FOUND error so resolution chains can abort cleanly.
func (c *Client) get(ctx context.Context, session Session, url string, out any) error {
	req, err := c.newRequest(ctx, session, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.NewExternalError("GET "+url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		return internal.NewNotFoundError("GET "+url, internal.ErrCodeLookupFailed)
	}
	return c.expect(resp, http.StatusOK, out)
}

func (c *Client) put(ctx context.Context, session Session, url string, body any, wantStatus int) error {
	req, err := c.newRequest(ctx, session, http.MethodPut, url, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.NewExternalError("PUT "+url, err)
	}
	return c.expect(resp, wantStatus, nil)
}

// expect consumes resp, enforcing the wanted status and decoding into out.
func (c *Client) expect(resp *http.Response, wantStatus int, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return internal.NewExternalError("failed to read response body", err)
	}

	if resp.StatusCode != wantStatus {
		return internal.NewUnexpectedStatusError(
			fmt.Sprintf("%s %s", resp.Request.Method, resp.Request.URL.Path),
			resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return internal.NewExternalError("failed to decode response", err)
		}
	}
	return nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()
}
