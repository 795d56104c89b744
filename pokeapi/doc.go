// Package pokeapi provides a cached client for the PokeAPI REST service.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: lookup methods per resource kind, each backed by its own cache
//   - Dispatcher: a single-request gate with retry on transient 500/502 errors
//   - ResultCache: a bounded LRU reachable by numeric id or by name
//   - PaginationIterator: one page of a listing endpoint with search helpers
//
// # Usage
//
//	client, err := pokeapi.Connect(ctx,
//		pokeapi.WithLogger(logger),
//		pokeapi.WithCacheSize(256),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	snorlax, err := client.GetPokemon(ctx, pokeapi.ByName("snorlax"))
//
//	it, err := client.Pagination(pokeapi.KindPokemon, 800, 0)
//	matches, err := it.FindSimilar(ctx, "snorlx")
//
// # Error Handling
//
// Unsuccessful responses are returned as *APIError. The sentinels ErrNotFound,
// ErrForbidden, ErrRateLimited and ErrRetriesExhausted can be matched with
// errors.Is:
//
//	if errors.Is(err, pokeapi.ErrNotFound) {
//		// unknown name or id
//	}
//
// Only 500 and 502 responses are retried, up to five attempts with a linear
// backoff of 1s, 3s, 5s and 7s.
package pokeapi
