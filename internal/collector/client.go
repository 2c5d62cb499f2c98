package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MonitorBoard/internal/metrics"
	"MonitorBoard/internal/model"
	"MonitorBoard/internal/query"
)

// envelope is the wrapper around every backend response.
type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// APIClient implements Fetcher against the monitor backend's REST API.
type APIClient struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewAPIClient creates a client with optional proxy support. A zero timeout
// leaves the transport default in place.
func NewAPIClient(baseURL, proxyURL string, timeout time.Duration, logger *slog.Logger) *APIClient {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Logger: logger,
	}
}

func (c *APIClient) Name() string { return "api" }

// Fetch issues one GET for path with the encoded filters and returns the
// envelope's data untouched.
func (c *APIClient) Fetch(ctx context.Context, path string, f query.FilterSet) (json.RawMessage, error) {
	resource := strings.Trim(path, "/")
	endpoint := c.BaseURL + path
	if q := query.Encode(f); q != "" {
		endpoint += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	metrics.FetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(resource, &TransportError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fail(resource, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status})
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, c.fail(resource, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("decode envelope: %w", err),
		})
	}
	if env.Code >= 400 {
		metrics.FetchTotal.WithLabelValues(resource, metrics.OutcomeApplication).Inc()
		c.Logger.Debug("backend rejected request", "resource", resource, "code", env.Code, "message", env.Message)
		return nil, &ApplicationError{Code: env.Code, Message: env.Message}
	}

	metrics.FetchTotal.WithLabelValues(resource, metrics.OutcomeOK).Inc()
	return env.Data, nil
}

func (c *APIClient) fail(resource string, err *TransportError) error {
	metrics.FetchTotal.WithLabelValues(resource, metrics.OutcomeTransport).Inc()
	c.Logger.Debug("fetch failed", "resource", resource, "error", err)
	return err
}

func (c *APIClient) GetTransferRecords(ctx context.Context, f query.FilterSet) (Payload[model.TransferRecord], error) {
	return fetchPayload[model.TransferRecord](ctx, c, PathTransferRecords, f)
}

func (c *APIClient) GetNotifications(ctx context.Context, f query.FilterSet) (Payload[model.Notification], error) {
	f.Stats = false
	return fetchPayload[model.Notification](ctx, c, PathNotifications, f)
}

func (c *APIClient) GetNotificationStats(ctx context.Context) (model.NotificationStats, error) {
	return fetchOne[model.NotificationStats](ctx, c, PathNotifications, query.FilterSet{Stats: true})
}

func (c *APIClient) GetTokens(ctx context.Context, f query.FilterSet) (Payload[model.TokenAnalysis], error) {
	f.Date = time.Time{}
	return fetchPayload[model.TokenAnalysis](ctx, c, PathTokens, f)
}

func (c *APIClient) GetTokenDailyStats(ctx context.Context, date time.Time) (model.TokenDailyStats, error) {
	return fetchOne[model.TokenDailyStats](ctx, c, PathTokens, query.FilterSet{Date: date})
}

func fetchPayload[T any](ctx context.Context, c *APIClient, path string, f query.FilterSet) (Payload[T], error) {
	var p Payload[T]
	data, err := c.Fetch(ctx, path, f)
	if err != nil {
		return p, err
	}
	if err := p.UnmarshalJSON(data); err != nil {
		return p, &TransportError{Err: fmt.Errorf("decode %s payload: %w", strings.Trim(path, "/"), err)}
	}
	return p, nil
}

// fetchOne is for aggregate endpoints; they answer with a single object.
func fetchOne[T any](ctx context.Context, c *APIClient, path string, f query.FilterSet) (T, error) {
	var zero T
	p, err := fetchPayload[T](ctx, c, path, f)
	if err != nil {
		return zero, err
	}
	items := Normalize(p)
	if len(items) == 0 {
		return zero, nil
	}
	return items[0], nil
}
