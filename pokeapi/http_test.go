package pokeapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDoer answers with a fixed sequence of status codes, repeating the
// last one once the script runs out.
type scriptedDoer struct {
	mu       sync.Mutex
	statuses []int
	requests []*http.Request
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := d.statuses[min(len(d.requests), len(d.statuses)-1)]
	d.requests = append(d.requests, req)

	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(`{"id": 1, "name": "bulbasaur"}`)),
		Request:    req,
	}, nil
}

func (d *scriptedDoer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return s.err
}

func newTestHTTPClient(doer Doer, sleeper *sleepRecorder) *httpClient {
	o := defaultOptions()
	WithBaseURL("https://pokeapi.test/api/v2")(&o)
	WithHTTPClient(doer)(&o)
	withSleep(sleeper.sleep)(&o)
	return newHTTPClient(o)
}

func TestRequestRetryPolicy(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		wantErr    error
		wantStatus int
		wantCalls  int
		wantSleeps []time.Duration
	}{
		{
			name:       "success",
			statuses:   []int{200},
			wantCalls:  1,
			wantSleeps: nil,
		},
		{
			name:       "transient errors then success",
			statuses:   []int{500, 500, 200},
			wantCalls:  3,
			wantSleeps: []time.Duration{1 * time.Second, 3 * time.Second},
		},
		{
			name:       "bad gateway is retried",
			statuses:   []int{502, 200},
			wantCalls:  2,
			wantSleeps: []time.Duration{1 * time.Second},
		},
		{
			name:       "rate limited is not retried",
			statuses:   []int{429},
			wantErr:    ErrRateLimited,
			wantStatus: 429,
			wantCalls:  1,
		},
		{
			name:       "not found",
			statuses:   []int{404},
			wantErr:    ErrNotFound,
			wantStatus: 404,
			wantCalls:  1,
		},
		{
			name:       "forbidden",
			statuses:   []int{403},
			wantErr:    ErrForbidden,
			wantStatus: 403,
			wantCalls:  1,
		},
		{
			name:       "exhausted",
			statuses:   []int{500, 502, 500, 502, 500},
			wantErr:    ErrRetriesExhausted,
			wantStatus: 500,
			wantCalls:  5,
			wantSleeps: []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second, 7 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &scriptedDoer{statuses: tt.statuses}
			sleeper := &sleepRecorder{}
			h := newTestHTTPClient(doer, sleeper)

			body, err := h.request(context.Background(), newRoute(h.base, "pokemon", 1))

			assert.Equal(t, tt.wantCalls, doer.count())
			assert.Equal(t, tt.wantSleeps, sleeper.delays)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, body.IsJSON())
				assert.JSONEq(t, `{"id": 1, "name": "bulbasaur"}`, body.Text())
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, "https://pokeapi.test/api/v2/pokemon/1", apiErr.URL)
		})
	}
}

func TestRequestUncaughtStatus(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{418}}
	h := newTestHTTPClient(doer, &sleepRecorder{})

	_, err := h.request(context.Background(), newRoute(h.base, "pokemon", 1))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 418, apiErr.StatusCode)
	assert.Equal(t, "Uncaught status code.", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrRetriesExhausted))
}

func TestRequestSleepCancelled(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{500}}
	sleeper := &sleepRecorder{err: context.Canceled}
	h := newTestHTTPClient(doer, sleeper)

	_, err := h.request(context.Background(), newRoute(h.base, "pokemon", 1))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, doer.count())
}

type failingDoer struct{ calls atomic.Int32 }

func (d *failingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return nil, errors.New("connection refused")
}

func TestRequestTransportErrorNotRetried(t *testing.T) {
	doer := &failingDoer{}
	sleeper := &sleepRecorder{}
	h := newTestHTTPClient(doer, sleeper)

	_, err := h.request(context.Background(), newRoute(h.base, "pokemon", 1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, int32(1), doer.calls.Load())
	assert.Empty(t, sleeper.delays)
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pokedex-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	o := defaultOptions()
	WithBaseURL(server.URL)(&o)
	WithUserAgent("pokedex-test/1.0")(&o)
	h := newHTTPClient(o)

	body, err := h.request(context.Background(), newRoute(h.base, "pokemon", 1))
	require.NoError(t, err)
	assert.False(t, body.IsJSON())
	assert.Equal(t, "hello", body.Text())

	var v map[string]any
	assert.ErrorIs(t, body.Decode(&v), ErrNotJSON)
}

// overlapDoer records the highest number of concurrent Do calls.
type overlapDoer struct {
	inflight atomic.Int32
	peak     atomic.Int32
}

func (d *overlapDoer) Do(req *http.Request) (*http.Response, error) {
	n := d.inflight.Add(1)
	defer d.inflight.Add(-1)
	for {
		p := d.peak.Load()
		if n <= p || d.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Request:    req,
	}, nil
}

func TestRequestsAreSerialized(t *testing.T) {
	doer := &overlapDoer{}
	h := newTestHTTPClient(doer, &sleepRecorder{})

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.request(context.Background(), newRoute(h.base, "pokemon", i+1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), doer.peak.Load())
}

func TestRequestWaitingForGateHonorsContext(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{200}}
	h := newTestHTTPClient(doer, &sleepRecorder{})

	require.NoError(t, h.gate.Acquire(context.Background(), 1))
	defer h.gate.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.request(ctx, newRoute(h.base, "pokemon", 1))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, doer.count())
}

func TestFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon", r.URL.Path)
		assert.Equal(t, "limit=2&offset=3", r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1302,
			"next": "https://pokeapi.co/api/v2/pokemon?offset=5&limit=2",
			"previous": null,
			"results": [
				{"name": "charmander", "url": "https://pokeapi.co/api/v2/pokemon/4/"},
				{"name": "charmeleon", "url": "https://pokeapi.co/api/v2/pokemon/5/"}
			]
		}`))
	}))
	defer server.Close()

	o := defaultOptions()
	WithBaseURL(server.URL)(&o)
	h := newHTTPClient(o)

	page, err := h.FetchPage(context.Background(), KindPokemon, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].ID)
	assert.Equal(t, "charmander", page[0].Slug)
	assert.Equal(t, "Charmeleon", page[1].Name)
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
		wantMsg string
	}{
		{name: "ok", status: 200},
		{name: "missing", status: 404, wantErr: ErrNotFound, wantMsg: "Sprite not found."},
		{name: "forbidden", status: 403, wantErr: ErrForbidden, wantMsg: "Cannot retrieve sprite."},
		{name: "server error is not retried", status: 500, wantMsg: "Failed to get sprite."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &scriptedDoer{statuses: []int{tt.status}}
			sleeper := &sleepRecorder{}
			h := newTestHTTPClient(doer, sleeper)

			data, err := h.download(context.Background(), "https://sprites.test/1.png")
			assert.Equal(t, 1, doer.count())
			assert.Empty(t, sleeper.delays)

			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, data)
				return
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
