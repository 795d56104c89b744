package pokeapi

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
)

// PageFetcher fetches one page of a listing endpoint.
type PageFetcher interface {
	FetchPage(ctx context.Context, kind Kind, limit, offset int) ([]NamedResource, error)
}

// PaginationIterator walks one page of a listing endpoint. It fetches lazily
// on first use, then yields the buffered references in server order. Once
// drained it stays exhausted; build a new iterator for another pass.
type PaginationIterator struct {
	fetcher PageFetcher
	kind    Kind
	limit   int
	offset  int

	mu      sync.Mutex
	buffer  []NamedResource
	fetched bool
}

// NewPaginationIterator validates the window and returns an unfetched
// iterator. No request is made until the first call to Next.
func NewPaginationIterator(fetcher PageFetcher, kind Kind, limit, offset int) (*PaginationIterator, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be at least 1, got %d", ErrInvalidArgument, limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative, got %d", ErrInvalidArgument, offset)
	}

	return &PaginationIterator{
		fetcher: fetcher,
		kind:    kind,
		limit:   limit,
		offset:  offset,
	}, nil
}

// Kind returns the listed resource kind.
func (it *PaginationIterator) Kind() Kind { return it.kind }

// Limit returns the page size.
func (it *PaginationIterator) Limit() int { return it.limit }

// Offset returns the index of the first listed item.
func (it *PaginationIterator) Offset() int { return it.offset }

// Next returns the next reference. ok is false once the iterator is
// exhausted. A failed fetch leaves the iterator unfetched so the call may be
// retried.
func (it *PaginationIterator) Next(ctx context.Context) (ref NamedResource, ok bool, err error) {
	ref, err = it.next(ctx)
	switch {
	case errors.Is(err, errNoMoreItems):
		return NamedResource{}, false, nil
	case err != nil:
		return NamedResource{}, false, err
	}
	return ref, true, nil
}

func (it *PaginationIterator) next(ctx context.Context) (NamedResource, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if len(it.buffer) == 0 {
		if it.fetched {
			return NamedResource{}, errNoMoreItems
		}
		if err := it.fill(ctx); err != nil {
			return NamedResource{}, err
		}
		if len(it.buffer) == 0 {
			return NamedResource{}, errNoMoreItems
		}
	}

	ref := it.buffer[0]
	it.buffer[0] = NamedResource{}
	it.buffer = it.buffer[1:]
	return ref, nil
}

// fill requests the single page. Called with it.mu held.
func (it *PaginationIterator) fill(ctx context.Context) error {
	page, err := it.fetcher.FetchPage(ctx, it.kind, it.limit, it.offset)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", it.kind, err)
	}
	it.buffer = page
	it.fetched = true
	return nil
}

// All ranges over the remaining references. Iteration stops at the first
// error, which is yielded with a zero reference.
func (it *PaginationIterator) All(ctx context.Context) iter.Seq2[NamedResource, error] {
	return func(yield func(NamedResource, error) bool) {
		for {
			ref, err := it.next(ctx)
			if errors.Is(err, errNoMoreItems) {
				return
			}
			if err != nil {
				yield(NamedResource{}, err)
				return
			}
			if !yield(ref, nil) {
				return
			}
		}
	}
}

// Flatten drains the iterator, preserving server order.
func (it *PaginationIterator) Flatten(ctx context.Context) ([]NamedResource, error) {
	var out []NamedResource
	for ref, err := range it.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// Find returns the first reference the predicate accepts. found is false if
// the iterator drained without a match. A predicate error stops the scan.
func (it *PaginationIterator) Find(ctx context.Context, pred func(context.Context, NamedResource) (bool, error)) (NamedResource, bool, error) {
	for ref, err := range it.All(ctx) {
		if err != nil {
			return NamedResource{}, false, err
		}
		ok, err := pred(ctx, ref)
		if err != nil {
			return NamedResource{}, false, err
		}
		if ok {
			return ref, true, nil
		}
	}
	return NamedResource{}, false, nil
}

// Match is a FindSimilar candidate with its score.
type Match struct {
	Resource NamedResource
	Score    int
}

// FindSimilar fuzzy-matches name against every remaining reference. An exact
// match (score 100) ends the scan and is returned alone. Otherwise every
// candidate scoring above 60 is returned, best first; equal scores keep
// server order.
func (it *PaginationIterator) FindSimilar(ctx context.Context, name string) ([]Match, error) {
	var similar []Match
	for ref, err := range it.All(ctx) {
		if err != nil {
			return nil, err
		}

		score := Similarity(name, ref.Slug)
		if score == PerfectMatch {
			return []Match{{Resource: ref, Score: score}}, nil
		}
		if score > similarThreshold {
			similar = append(similar, Match{Resource: ref, Score: score})
		}
	}

	slices.SortStableFunc(similar, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return similar, nil
}
