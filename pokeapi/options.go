package pokeapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultCacheSize is the per-kind result cache capacity.
	DefaultCacheSize = 128
	// DefaultSpriteCacheSize is the sprite byte cache capacity.
	DefaultSpriteCacheSize = 64
	// DefaultTimeout applies to the default HTTP client.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "pokedex/dev (+https://github.com/s0up4200/pokedex)"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL         string
	userAgent       string
	httpClient      Doer
	timeout         time.Duration
	cacheSize       int
	spriteCacheSize int
	logger          zerolog.Logger
	sleep           sleepFunc
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:         DefaultBaseURL,
		userAgent:       DefaultUserAgent,
		timeout:         DefaultTimeout,
		cacheSize:       DefaultCacheSize,
		spriteCacheSize: DefaultSpriteCacheSize,
		logger:          zerolog.Nop(),
		sleep:           sleepContext,
	}
}

// WithBaseURL points the client at another API root.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the transport. WithTimeout has no effect on a
// supplied client.
func WithHTTPClient(c Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithCacheSize sets the capacity of each resource cache.
func WithCacheSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.cacheSize = size
		}
	}
}

// WithSpriteCacheSize sets the capacity of the sprite cache.
func WithSpriteCacheSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.spriteCacheSize = size
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// withSleep replaces the retry wait, used by tests.
func withSleep(fn sleepFunc) Option {
	return func(o *clientOptions) {
		o.sleep = fn
	}
}

func (o *clientOptions) transport() Doer {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}
