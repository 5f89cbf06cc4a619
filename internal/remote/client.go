// Package remote implements availability.Gateway against the weekgrid HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekgrid/internal/api"
	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/lock"
)

// ErrUnexpectedStatus is returned for non-2xx responses without a known error code.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to a weekgrid server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// LoadAvailability fetches a provider's intervals.
func (c *Client) LoadAvailability(ctx context.Context, providerID string) ([]availability.Interval, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, availability.ErrEmptyProvider
	}

	var out api.AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, availabilityPath(providerID), nil, &out); err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	if out.Intervals == nil {
		out.Intervals = make([]availability.Interval, 0)
	}
	return out.Intervals, nil
}

// SaveAvailability replaces a provider's intervals.
// Returns an error wrapping lock.ErrLocked if the server reports a concurrent save.
func (c *Client) SaveAvailability(ctx context.Context, providerID string, intervals []availability.Interval) error {
	if strings.TrimSpace(providerID) == "" {
		return availability.ErrEmptyProvider
	}
	if intervals == nil {
		intervals = make([]availability.Interval, 0)
	}

	body := api.AvailabilityRequest{Intervals: intervals}
	if err := c.do(ctx, http.MethodPut, availabilityPath(providerID), body, nil); err != nil {
		return fmt.Errorf("saving availability: %w", err)
	}
	return nil
}

// ListProviders fetches the providers the server has stored availability for.
func (c *Client) ListProviders(ctx context.Context) ([]availability.ProviderSummary, error) {
	var out api.ProvidersResponse
	if err := c.do(ctx, http.MethodGet, "/providers", nil, &out); err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}

	providers := make([]availability.ProviderSummary, 0, len(out.Providers))
	for _, p := range out.Providers {
		summary := availability.ProviderSummary{ID: p.ID, Intervals: p.Intervals}
		if p.UpdatedAt != "" {
			if t, err := time.Parse(time.RFC3339, p.UpdatedAt); err == nil {
				summary.UpdatedAt = t
			}
		}
		providers = append(providers, summary)
	}
	return providers, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(api.RequestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func statusError(status int, body []byte) error {
	var r api.Response
	if err := json.Unmarshal(body, &r); err != nil || r.Error == nil {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if r.Error.Code == string(api.Locked) {
		return fmt.Errorf("%s: %w", r.Error.Message, lock.ErrLocked)
	}
	return fmt.Errorf("%w: %d %s: %s", ErrUnexpectedStatus, status, r.Error.Code, r.Error.Message)
}

func availabilityPath(providerID string) string {
	return "/providers/" + url.PathEscape(providerID) + "/availability"
}
