package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/s0up4200/pokedex/pokeapi"
)

var (
	rawOutput bool
	fieldPath string
)

// rawResource is implemented by every decoded resource through pokeapi.Base
type rawResource interface {
	pokeapi.Resource
	Raw() json.RawMessage
	Lookup(path string) gjson.Result
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <kind> <id-or-name>",
	Short: "Show a single resource",
	Long: `Fetch one resource by numeric id or by name.

Kinds: pokemon, move, ability, berry, item, machine, color, habitat.
Names are case-insensitive and spaces may be used instead of hyphens.
When a name is not found, similar names are suggested.`,
	Example: `  pokedex get pokemon snorlax
  pokedex get ability "thick fat"
  pokedex get move 33 --field meta.crit_rate
  pokedex get item master-ball --raw`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&rawOutput, "raw", false, "print the raw JSON payload")
	getCmd.Flags().StringVar(&fieldPath, "field", "", "print a single field using a gjson path")
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, err := pokeapi.ParseKind(args[0])
	if err != nil {
		return err
	}
	query := pokeapi.ParseQuery(args[1])

	res, err := client.Get(ctx, kind, query)
	if err != nil {
		if _, byID := query.ID(); errors.Is(err, pokeapi.ErrNotFound) && !byID {
			return suggestSimilar(cmd, kind, args[1], err)
		}
		return err
	}

	logger.Debug().
		Str("kind", string(kind)).
		Int("id", res.ResourceID()).
		Msg("Fetched resource")

	raw, ok := res.(rawResource)
	switch {
	case fieldPath != "" && ok:
		value := raw.Lookup(fieldPath)
		if !value.Exists() {
			return fmt.Errorf("field %q not found on %s", fieldPath, res.ResourceName())
		}
		fmt.Println(value.String())
	case rawOutput && ok:
		out := pretty.Pretty(raw.Raw())
		if isatty.IsTerminal(os.Stdout.Fd()) {
			out = pretty.Color(out, nil)
		}
		os.Stdout.Write(out)
	default:
		fmt.Print(formatter.FormatResource(res))
	}

	return nil
}

// suggestSimilar scans the kind's listing for names close to the one that
// was not found and returns notFound with the suggestions attached.
func suggestSimilar(cmd *cobra.Command, kind pokeapi.Kind, name string, notFound error) error {
	it, err := client.Pagination(kind, defaultSearchLimit, 0)
	if err != nil {
		return notFound
	}

	matches, err := it.FindSimilar(cmd.Context(), name)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not look up similar names")
		return notFound
	}
	if len(matches) == 0 {
		return notFound
	}

	fmt.Fprintf(os.Stderr, "%s %q was not found.\n", pokeapi.PrettyFormat(string(kind)), name)
	fmt.Fprint(os.Stderr, formatter.FormatMatches(name, matches))
	return notFound
}
