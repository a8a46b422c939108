package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://notes-api.dicoding.dev/v1"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (Result[RegisterData], error) {
	return do[RegisterData](ctx, c, http.MethodPost, "/register", req)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (Result[LoginData], error) {
	return do[LoginData](ctx, c, http.MethodPost, "/login", req)
}

func (c *Client) GetUserLogged(ctx context.Context) (Result[User], error) {
	return do[User](ctx, c, http.MethodGet, "/users/me", nil)
}

func (c *Client) GetActiveNotes(ctx context.Context) (Result[[]Note], error) {
	return do[[]Note](ctx, c, http.MethodGet, "/notes", nil)
}

func (c *Client) GetArchivedNotes(ctx context.Context) (Result[[]Note], error) {
	return do[[]Note](ctx, c, http.MethodGet, "/notes/archived", nil)
}

func (c *Client) GetNote(ctx context.Context, id string) (Result[Note], error) {
	return do[Note](ctx, c, http.MethodGet, notePath(id), nil)
}

func (c *Client) AddNote(ctx context.Context, note Note) (Result[Note], error) {
	return do[Note](ctx, c, http.MethodPost, "/notes", note)
}

func (c *Client) DeleteNote(ctx context.Context, id string) (Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodDelete, notePath(id), nil)
}

func (c *Client) ArchiveNote(ctx context.Context, id string) (Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodPost, notePath(id)+"/archive", nil)
}

func (c *Client) UnarchiveNote(ctx context.Context, id string) (Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodPost, notePath(id)+"/unarchive", nil)
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// HTTP helpers

type rawEnvelope struct {
	Status  string          `json:"status"`
	Error   *bool           `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e rawEnvelope) failed(statusCode int) bool {
	if statusCode >= 400 {
		return true
	}
	if e.Error != nil && *e.Error {
		return true
	}
	return e.Status != "" && e.Status != "success"
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (Result[T], error) {
	var result Result[T]
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("api request failed")
		return result, &TransportError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if len(bytes.TrimSpace(raw)) == 0 {
		if resp.StatusCode >= 400 {
			result.Error = true
			result.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
			return result, nil
		}
		// Only calls that expect no data may succeed without a body.
		if _, noData := any(result.Data).(struct{}); noData {
			return result, nil
		}
		return result, &TransportError{Op: op, Err: fmt.Errorf("%w: empty body", ErrMalformedResponse)}
	}

	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			result.Error = true
			result.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
			return result, nil
		}
		return result, &TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}

	result.Message = env.Message
	if env.failed(resp.StatusCode) {
		result.Error = true
		if result.Message == "" {
			result.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return result, nil
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &result.Data); err != nil {
			return result, &TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
	}

	return result, nil
}
