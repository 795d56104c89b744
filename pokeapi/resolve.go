package pokeapi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultResolveConcurrency bounds Resolve when a non-positive limit is given.
const DefaultResolveConcurrency = 4

// Resolve fetches the full resource behind each reference with fetch, for
// example Resolve(ctx, refs, 4, client.GetPokemon). Results keep the order of
// refs. The first failure cancels the remaining lookups.
//
// Requests still pass through the client's single-request gate, so
// concurrency only overlaps cache hits and decoding.
func Resolve[T any](ctx context.Context, refs []NamedResource, concurrency int, fetch func(context.Context, Query) (T, error)) ([]T, error) {
	if concurrency < 1 {
		concurrency = DefaultResolveConcurrency
	}

	out := make([]T, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			q := ByID(ref.ID)
			if ref.ID == 0 {
				q = ByName(ref.Slug)
			}

			obj, err := fetch(ctx, q)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", ref, err)
			}
			out[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
