package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	apierrors "claresys/pkg/errors"
)

// TokenSource yields the bearer token attached to every outbound request.
// An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// HTTPClient wraps the shared transport to the ClaReSys collaborators.
// A 401 from any endpoint fires the OnUnauthorized hook exactly once per
// response so the owning session can tear itself down.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens         TokenSource
	onUnauthorized func()
}

type Option func(*HTTPClient)

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithUnauthorizedHook(fn func()) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) ToString() string {
	return fmt.Sprintf("status=%d body=%s", r.StatusCode, string(r.Body))
}

// Err maps a non-2xx response onto the client error taxonomy, surfacing the
// server detail text when the body carries one. Returns nil for 2xx.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	return apierrors.FromStatus(r.StatusCode, ErrorDetail(r))
}

func (c *HTTPClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HTTPClient) PATCH(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPatch, path, body)
}

func (c *HTTPClient) DELETE(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

func (c *HTTPClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	return c.do(ctx, method, path, reqBody, body != nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, reqBody io.Reader, hasBody bool) (*Response, error) {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	// The backend audit trail keys on this header.
	req.Header.Set("X-Correlation-ID", uuid.New().String())

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apierrors.Transport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Transport(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

// ErrorDetail extracts the failure text from a collaborator error body.
// The FastAPI services respond with {"detail": ...}; older endpoints use
// {"error"} or {"message"}.
func ErrorDetail(resp *Response) string {
	var errResp struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return ""
	}

	if len(errResp.Detail) > 0 {
		var s string
		if err := json.Unmarshal(errResp.Detail, &s); err == nil {
			return s
		}
		// Validation errors arrive as structured lists; pass them through raw.
		return string(errResp.Detail)
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}
