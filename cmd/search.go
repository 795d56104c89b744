package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/pokeapi"
)

// defaultSearchLimit covers every entry of the largest listing
const defaultSearchLimit = 2000

var (
	searchLimit  int
	searchOffset int
	searchShow   bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <kind> <name>",
	Short: "Fuzzy search resource names",
	Long: `Search a listing for names similar to the given one. Names are compared
ignoring case and hyphens. An exact match is returned on its own; otherwise
every name scoring above 60% is shown, best first.`,
	Example: `  pokedex search pokemon snorlx
  pokedex search move "thunder punch" --show`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", defaultSearchLimit, "number of listing entries to scan")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "listing offset to start from")
	searchCmd.Flags().BoolVar(&searchShow, "show", false, "fetch and show the best match")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, err := pokeapi.ParseKind(args[0])
	if err != nil {
		return err
	}

	it, err := client.Pagination(kind, searchLimit, searchOffset)
	if err != nil {
		return err
	}

	logger.Info().
		Str("kind", string(kind)).
		Str("name", args[1]).
		Int("limit", searchLimit).
		Msg("Searching")

	matches, err := it.FindSimilar(ctx, args[1])
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatMatches(args[1], matches))

	if searchShow && len(matches) > 0 {
		best := matches[0].Resource
		res, err := client.Get(ctx, kind, pokeapi.ByID(best.ID))
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", best, err)
		}
		fmt.Print(formatter.FormatResource(res))
	}

	return nil
}
