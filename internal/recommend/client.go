package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/five82/shoplens/internal/logging"
	"github.com/five82/shoplens/internal/resulttree"
)

// Service defines the recommendation API used by the UI.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	UploadCSV(ctx context.Context, path string) (UploadResult, error)
	RecommendProducts(ctx context.Context, products []string) (*resulttree.Tree, error)
	RecommendUser(ctx context.Context, userID string) (*resulttree.Tree, error)
	FetchForecast(ctx context.Context) (*resulttree.Tree, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

var (
	ErrNoFile        = errors.New("please select a file first")
	ErrNotCSV        = errors.New("file must have a .csv extension")
	ErrEmptyProducts = errors.New("enter at least one product name")
	ErrEmptyUserID   = errors.New("enter a user id")
)

// Client talks to the recommendation service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	breaker   *gobreaker.CircuitBreaker[[]byte]
}

const (
	DefaultBaseURL   = "http://127.0.0.1:5000"
	defaultUserAgent = "shoplens/0.1"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 16 << 20

	breakerName     = "recommend-api"
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the service at baseURL (host:port or URL).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Rejections by the service (4xx) mean it is up.
			var apiErr *APIError
			return err == nil || (errors.As(err, &apiErr) && apiErr.Status < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return c, nil
}

// BaseURL returns the resolved service address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// UploadCSV sends the CSV at path as multipart field "file" to /upload-csv.
func (c *Client) UploadCSV(ctx context.Context, path string) (UploadResult, error) {
	if c == nil {
		return UploadResult{}, fmt.Errorf("client is nil")
	}
	path = strings.TrimSpace(path)
	if err := ValidateCSVPath(path); err != nil {
		return UploadResult{}, err
	}

	body, contentType, err := multipartFile(path)
	if err != nil {
		return UploadResult{}, err
	}
	raw, err := c.send(ctx, http.MethodPost, "/upload-csv", contentType, body)
	if err != nil {
		return UploadResult{}, err
	}
	var result UploadResult
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return UploadResult{}, fmt.Errorf("decode upload response: %w", err)
		}
	}
	result.File = filepath.Base(path)
	return result, nil
}

// RecommendProducts posts {"products": [...]} to /recommend.
func (c *Client) RecommendProducts(ctx context.Context, products []string) (*resulttree.Tree, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(products) == 0 {
		return nil, ErrEmptyProducts
	}
	return c.postTree(ctx, "/recommend", productRequest{Products: products})
}

// RecommendUser posts {"user_id": id} to /user-recommend.
func (c *Client) RecommendUser(ctx context.Context, userID string) (*resulttree.Tree, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return c.postTree(ctx, "/user-recommend", userRequest{UserID: userID})
}

// FetchForecast retrieves the 30-day sales forecast from /forecast-sales.
func (c *Client) FetchForecast(ctx context.Context) (*resulttree.Tree, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	raw, err := c.send(ctx, http.MethodGet, "/forecast-sales", "", nil)
	if err != nil {
		return nil, err
	}
	return decodeTree(raw)
}

func (c *Client) postTree(ctx context.Context, path string, payload any) (*resulttree.Tree, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	raw, err := c.send(ctx, http.MethodPost, path, "application/json", body)
	if err != nil {
		return nil, err
	}
	return decodeTree(raw)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, contentType, body)
	})
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logging.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(path, resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeTree(raw []byte) (*resulttree.Tree, error) {
	tree, err := resulttree.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return tree, nil
}

func multipartFile(path string) ([]byte, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy csv: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

// ValidateCSVPath checks that path names an existing regular .csv file.
func ValidateCSVPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return ErrNotCSV
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat csv: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

// ParseProducts splits comma-separated input into trimmed product names,
// dropping blanks.
func ParseProducts(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
