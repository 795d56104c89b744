package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/pokeapi"
)

var (
	listLimit   int
	listOffset  int
	whereExpr   string
	preset      string
	listFirst   bool
	listResolve bool
	concurrency int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List one page of a resource endpoint",
	Long: `List one page of references from a listing endpoint, optionally filtered
with an expression.

Expressions see ID, Name, Slug and URL plus the helpers has, begins, ends
(case-insensitive), lower, upper, slug, similar and between. The operators
contains, startsWith and endsWith also work. Named expressions can be
stored under "filter" in the config file and used with --preset.`,
	Example: `  pokedex list pokemon --limit 151
  pokedex list pokemon --limit 151 --where 'ends(Slug, "saur")' --resolve
  pokedex list move --limit 1000 --where 'similar(Name, "thunder") > 70' --first`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "page size")
	listCmd.Flags().IntVarP(&listOffset, "offset", "o", 0, "index of the first entry")
	listCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a named filter from config")
	listCmd.Flags().BoolVar(&listFirst, "first", false, "stop at the first match")
	listCmd.Flags().BoolVarP(&listResolve, "resolve", "r", false, "fetch the full resource for each entry")
	listCmd.Flags().IntVar(&concurrency, "concurrency", pokeapi.DefaultResolveConcurrency, "parallel lookups when resolving")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, err := pokeapi.ParseKind(args[0])
	if err != nil {
		return err
	}

	it, err := client.Pagination(kind, listLimit, listOffset)
	if err != nil {
		return err
	}

	f, err := compileFilter()
	if err != nil {
		return err
	}

	var refs []pokeapi.NamedResource
	switch {
	case listFirst:
		ref, found, err := findFirst(ctx, it, f)
		if err != nil {
			return err
		}
		if found {
			refs = []pokeapi.NamedResource{ref}
		}
	default:
		refs, err = it.Flatten(ctx)
		if err != nil {
			return err
		}
		if f != nil {
			refs, err = filter.Apply(ctx, f, refs)
			if err != nil {
				return err
			}
		}
	}

	logger.Debug().
		Str("kind", string(kind)).
		Int("limit", listLimit).
		Int("offset", listOffset).
		Int("matches", len(refs)).
		Msg("Listed references")

	if !listResolve || len(refs) == 0 {
		fmt.Print(formatter.FormatReferences(kind, refs))
		return nil
	}

	resources, err := pokeapi.Resolve(ctx, refs, concurrency, func(ctx context.Context, q pokeapi.Query) (pokeapi.Resource, error) {
		return client.Get(ctx, kind, q)
	})
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatResources(resources))
	return nil
}

// compileFilter determines and compiles the filter expression, if any
func compileFilter() (filter.Filter, error) {
	// Priority: command line expression > preset
	expression := whereExpr
	if expression == "" && preset != "" {
		var ok bool
		expression, ok = cfg.Filter[preset]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
	}
	if expression == "" {
		return nil, nil
	}

	f, err := compiler.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	logger.Debug().Str("filter", f.Expression()).Msg("Compiled filter")
	return f, nil
}

func findFirst(ctx context.Context, it *pokeapi.PaginationIterator, f filter.Filter) (pokeapi.NamedResource, bool, error) {
	if f == nil {
		return it.Next(ctx)
	}
	return it.Find(ctx, filter.Predicate(f))
}
