package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const (
	// maxAttempts bounds the tries for a single logical request
	maxAttempts = 5

	rateLimitMessage = "Surpassed 100 API requests in one minute."
)

// Doer performs a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Body is a successful response payload.
type Body struct {
	Raw         []byte
	ContentType string
}

// IsJSON reports whether the server labelled the payload as JSON.
func (b Body) IsJSON() bool {
	return strings.Contains(b.ContentType, "application/json")
}

// Text returns the payload as a string.
func (b Body) Text() string {
	return string(b.Raw)
}

// Decode unmarshals a JSON payload into v.
func (b Body) Decode(v any) error {
	if !b.IsJSON() {
		return fmt.Errorf("%w: content type %q", ErrNotJSON, b.ContentType)
	}
	return json.Unmarshal(b.Raw, v)
}

// sleepFunc waits for d or until ctx is done.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff is the wait before retrying after the given zero-based attempt.
func backoff(attempt int) time.Duration {
	return time.Second + time.Duration(attempt)*2*time.Second
}

// httpClient sends requests to the API one at a time.
type httpClient struct {
	base      string
	userAgent string
	doer      Doer
	logger    zerolog.Logger
	sleep     sleepFunc

	// gate admits one in-flight request. semaphore.Weighted serves waiters
	// in FIFO order and lets a waiter give up through its context.
	gate *semaphore.Weighted
}

func newHTTPClient(opts clientOptions) *httpClient {
	return &httpClient{
		base:      strings.TrimRight(opts.baseURL, "/"),
		userAgent: opts.userAgent,
		doer:      opts.transport(),
		logger:    opts.logger,
		sleep:     opts.sleep,
		gate:      semaphore.NewWeighted(1),
	}
}

// request performs a GET for r, retrying transient 500/502 responses.
func (h *httpClient) request(ctx context.Context, r route) (Body, error) {
	if err := h.gate.Acquire(ctx, 1); err != nil {
		return Body{}, err
	}
	defer h.gate.Release(1)

	target := r.URL()
	lastStatus := 0

	for attempt := range maxAttempts {
		status, body, err := h.do(ctx, target)
		if err != nil {
			return Body{}, err
		}

		h.logger.Info().
			Str("method", http.MethodGet).
			Str("url", target).
			Int("status", status).
			Msg("Request completed")

		switch {
		case status >= 200 && status < 300:
			h.logger.Debug().
				Str("url", target).
				Int("bytes", len(body.Raw)).
				Msg("Request succeeded")
			return body, nil

		case status == http.StatusTooManyRequests:
			h.logger.Error().Str("url", target).Msg("Surpassed 100 API requests in one minute")
			return Body{}, newAPIError(status, target, rateLimitMessage)

		case status == http.StatusInternalServerError || status == http.StatusBadGateway:
			lastStatus = status
			if attempt == maxAttempts-1 {
				continue
			}

			delay := backoff(attempt)
			h.logger.Warn().
				Str("url", target).
				Int("status", status).
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("Internal API error, retrying")

			if err := h.sleep(ctx, delay); err != nil {
				return Body{}, err
			}

		case status == http.StatusForbidden:
			return Body{}, newAPIError(status, target, "Forbidden endpoint.")

		case status == http.StatusNotFound:
			return Body{}, newAPIError(status, target, "Endpoint not found.")

		default:
			return Body{}, newAPIError(status, target, "Uncaught status code.")
		}
	}

	h.logger.Error().Str("url", target).Int("attempts", maxAttempts).Msg("Request timed out")
	e := newAPIError(lastStatus, target, "Request timed out.")
	e.kind = ErrRetriesExhausted
	return Body{}, e
}

// download fetches raw bytes such as sprite images. Downloads share the
// request gate but are not retried.
func (h *httpClient) download(ctx context.Context, target string) ([]byte, error) {
	if err := h.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.gate.Release(1)

	status, body, err := h.do(ctx, target)
	if err != nil {
		return nil, err
	}

	h.logger.Debug().Str("url", target).Int("status", status).Msg("Downloaded asset")

	switch status {
	case http.StatusOK:
		return body.Raw, nil
	case http.StatusNotFound:
		return nil, newAPIError(status, target, "Sprite not found.")
	case http.StatusForbidden:
		return nil, newAPIError(status, target, "Cannot retrieve sprite.")
	default:
		return nil, newAPIError(status, target, "Failed to get sprite.")
	}
}

// FetchPage fetches one page of a listing endpoint.
func (h *httpClient) FetchPage(ctx context.Context, kind Kind, limit, offset int) ([]NamedResource, error) {
	r := newRoute(h.base, string(kind)).withQuery(Params{}.
		Add("limit", limit).
		Add("offset", offset))

	body, err := h.request(ctx, r)
	if err != nil {
		return nil, err
	}

	var page struct {
		Count   int             `json:"count"`
		Results []NamedResource `json:"results"`
	}
	if err := body.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to parse %s listing: %w", kind, err)
	}

	h.logger.Debug().
		Str("kind", string(kind)).
		Int("limit", limit).
		Int("offset", offset).
		Int("count", len(page.Results)).
		Int("total", page.Count).
		Msg("Retrieved listing page")

	return page.Results, nil
}

// do performs one HTTP round trip and reads the whole body.
func (h *httpClient) do(ctx context.Context, target string) (int, Body, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, Body{}, fmt.Errorf("failed to create request: %w", err)
	}

	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.doer.Do(req)
	if err != nil {
		return 0, Body{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, Body{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, Body{Raw: raw, ContentType: resp.Header.Get("Content-Type")}, nil
}

// closeIdle releases pooled connections if the transport supports it.
func (h *httpClient) closeIdle() {
	if c, ok := h.doer.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}
