// Package filter compiles user supplied expressions into predicates over
// listing references, for example:
//
//	ID <= 151 and begins(Slug, "char")
//	similar(Name, "snorlax") > 70
//
// Expressions are written in the expr language and must evaluate to a bool.
package filter

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// Filter is a compiled predicate over listing references.
type Filter interface {
	// Evaluate reports whether ref matches
	Evaluate(ref pokeapi.NamedResource) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (Filter, error)

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Apply returns the references matching f, in order.
func Apply(ctx context.Context, f Filter, refs []pokeapi.NamedResource) ([]pokeapi.NamedResource, error) {
	matches := make([]pokeapi.NamedResource, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := f.Evaluate(ref)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, ref)
		}
	}
	return matches, nil
}

// Predicate adapts f for PaginationIterator.Find.
func Predicate(f Filter) func(context.Context, pokeapi.NamedResource) (bool, error) {
	return func(_ context.Context, ref pokeapi.NamedResource) (bool, error) {
		return f.Evaluate(ref)
	}
}
