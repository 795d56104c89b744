package pokeapi

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/s0up4200/pokedex/cache"
)

// Client is a cached PokeAPI client. It is safe for concurrent use; requests
// to the API are still sent one at a time in arrival order.
type Client struct {
	http   *httpClient
	logger zerolog.Logger

	pokemon   *ResultCache[*Pokemon]
	moves     *ResultCache[*Move]
	abilities *ResultCache[*Ability]
	berries   *ResultCache[*Berry]
	items     *ResultCache[*Item]
	machines  *ResultCache[*Machine]
	colors    *ResultCache[*Color]
	habitats  *ResultCache[*Habitat]

	sprites *cache.LRU[string, []byte]

	// inflight collapses concurrent misses for the same resource.
	inflight singleflight.Group
	closed   atomic.Bool
}

// Connect builds a Client. No request is made.
func Connect(ctx context.Context, opts ...Option) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidArgument, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https, got %q", ErrInvalidArgument, o.baseURL)
	}

	c := &Client{
		http:      newHTTPClient(o),
		logger:    o.logger,
		pokemon:   NewResultCache[*Pokemon](KindPokemon, o.cacheSize),
		moves:     NewResultCache[*Move](KindMove, o.cacheSize),
		abilities: NewResultCache[*Ability](KindAbility, o.cacheSize),
		berries:   NewResultCache[*Berry](KindBerry, o.cacheSize),
		items:     NewResultCache[*Item](KindItem, o.cacheSize),
		machines:  NewResultCache[*Machine](KindMachine, o.cacheSize),
		colors:    NewResultCache[*Color](KindColor, o.cacheSize),
		habitats:  NewResultCache[*Habitat](KindHabitat, o.cacheSize),
		sprites:   cache.NewLRU[string, []byte](o.spriteCacheSize),
	}

	c.logger.Debug().
		Str("base_url", c.http.base).
		Int("cache_size", o.cacheSize).
		Int("sprite_cache_size", o.spriteCacheSize).
		Msg("PokeAPI client ready")

	return c, nil
}

// WithClient connects, runs fn and closes the client when fn returns.
func WithClient(ctx context.Context, fn func(context.Context, *Client) error, opts ...Option) (err error) {
	c, err := Connect(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(ctx, c)
}

// lookup serves q from rc or fetches, decodes and caches it.
func lookup[T any, PT resourcePtr[T]](ctx context.Context, c *Client, rc *ResultCache[PT], q Query) (PT, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	q = q.normalize()
	if q.Key() == "" {
		return nil, fmt.Errorf("%w: empty %s query", ErrInvalidArgument, rc.Kind())
	}
	if obj, ok := rc.Get(q); ok {
		return obj, nil
	}

	key := string(rc.Kind()) + "/" + q.Key()
	v, shared, err := c.share(ctx, key, func(ctx context.Context) (any, error) {
		if obj, ok := rc.Get(q); ok {
			return obj, nil
		}

		body, err := c.http.request(ctx, newRoute(c.http.base, string(rc.Kind()), q))
		if err != nil {
			return nil, err
		}
		if !body.IsJSON() {
			return nil, fmt.Errorf("%w: %s %s returned %q", ErrNotJSON, rc.Kind(), q, body.ContentType)
		}

		obj, err := Decode[T, PT](body.Raw)
		if err != nil {
			return nil, err
		}

		rc.Put(obj)
		c.logger.Debug().
			Str("kind", string(rc.Kind())).
			Int("id", obj.ResourceID()).
			Str("name", obj.ResourceSlug()).
			Msg("Cached resource")
		return obj, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Trace().Str("key", key).Msg("Shared in-flight lookup")
	}
	return v.(PT), nil
}

// share runs fn once for all concurrent callers of key. fn runs on a
// context detached from cancellation; each caller stops waiting when its own
// ctx is done.
func (c *Client) share(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, bool, error) {
	flight := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (any, error) {
		return fn(flight)
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	}
}

// GetPokemon returns a Pokemon by id or name.
func (c *Client) GetPokemon(ctx context.Context, q Query) (*Pokemon, error) {
	return lookup[Pokemon](ctx, c, c.pokemon, q)
}

// GetMove returns a Move by id or name.
func (c *Client) GetMove(ctx context.Context, q Query) (*Move, error) {
	return lookup[Move](ctx, c, c.moves, q)
}

// GetAbility returns an Ability by id or name.
func (c *Client) GetAbility(ctx context.Context, q Query) (*Ability, error) {
	return lookup[Ability](ctx, c, c.abilities, q)
}

// GetBerry returns a Berry by id or name.
func (c *Client) GetBerry(ctx context.Context, q Query) (*Berry, error) {
	return lookup[Berry](ctx, c, c.berries, q)
}

// GetItem returns an Item by id or name.
func (c *Client) GetItem(ctx context.Context, q Query) (*Item, error) {
	return lookup[Item](ctx, c, c.items, q)
}

// GetMachine returns a Machine by id.
func (c *Client) GetMachine(ctx context.Context, q Query) (*Machine, error) {
	return lookup[Machine](ctx, c, c.machines, q)
}

// GetColor returns a Pokedex color by id or name.
func (c *Client) GetColor(ctx context.Context, q Query) (*Color, error) {
	return lookup[Color](ctx, c, c.colors, q)
}

// GetHabitat returns a habitat by id or name.
func (c *Client) GetHabitat(ctx context.Context, q Query) (*Habitat, error) {
	return lookup[Habitat](ctx, c, c.habitats, q)
}

// Get dispatches to the typed lookup for kind.
func (c *Client) Get(ctx context.Context, kind Kind, q Query) (Resource, error) {
	switch kind {
	case KindPokemon:
		return asResource(c.GetPokemon(ctx, q))
	case KindMove:
		return asResource(c.GetMove(ctx, q))
	case KindAbility:
		return asResource(c.GetAbility(ctx, q))
	case KindBerry:
		return asResource(c.GetBerry(ctx, q))
	case KindItem:
		return asResource(c.GetItem(ctx, q))
	case KindMachine:
		return asResource(c.GetMachine(ctx, q))
	case KindColor:
		return asResource(c.GetColor(ctx, q))
	case KindHabitat:
		return asResource(c.GetHabitat(ctx, q))
	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidArgument, kind)
	}
}

// asResource avoids returning a typed nil inside a non-nil interface.
func asResource[T Resource](obj T, err error) (Resource, error) {
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Pagination returns an iterator over one page of the kind's listing.
func (c *Client) Pagination(kind Kind, limit, offset int) (*PaginationIterator, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return NewPaginationIterator(c, kind, limit, offset)
}

// FetchPage implements PageFetcher.
func (c *Client) FetchPage(ctx context.Context, kind Kind, limit, offset int) ([]NamedResource, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.http.FetchPage(ctx, kind, limit, offset)
}

// CacheStats reports how many resources of each kind are cached.
func (c *Client) CacheStats() map[Kind]int {
	return map[Kind]int{
		KindPokemon: c.pokemon.Len(),
		KindMove:    c.moves.Len(),
		KindAbility: c.abilities.Len(),
		KindBerry:   c.berries.Len(),
		KindItem:    c.items.Len(),
		KindMachine: c.machines.Len(),
		KindColor:   c.colors.Len(),
		KindHabitat: c.habitats.Len(),
	}
}

// Clear empties every cache.
func (c *Client) Clear() {
	c.pokemon.Clear()
	c.moves.Clear()
	c.abilities.Clear()
	c.berries.Clear()
	c.items.Clear()
	c.machines.Clear()
	c.colors.Clear()
	c.habitats.Clear()
	c.sprites.Clear()
}

// Close clears the caches and releases idle connections. Later lookups fail
// with ErrClientClosed. Close is idempotent.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.Clear()
	c.http.closeIdle()
	c.logger.Debug().Msg("PokeAPI client closed")
	return nil
}
