package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/pokeapi"
)

var (
	spriteVariant string
	spriteOut     string
)

// spriteCmd represents the sprite command
var spriteCmd = &cobra.Command{
	Use:   "sprite <pokemon>",
	Short: "Download a Pokemon sprite",
	Long: fmt.Sprintf(`Download a sprite image of a Pokemon. Use --out - to write to stdout.

Variants: %s`, strings.Join(pokeapi.SpriteVariants, ", ")),
	Example: `  pokedex sprite snorlax
  pokedex sprite 25 --variant front_shiny --out pikachu.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSprite,
}

func init() {
	rootCmd.AddCommand(spriteCmd)

	spriteCmd.Flags().StringVar(&spriteVariant, "variant", "front_default", "sprite variant")
	spriteCmd.Flags().StringVar(&spriteOut, "out", "", "output file (default <name>_<variant>.png)")
}

func runSprite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !slices.Contains(pokeapi.SpriteVariants, spriteVariant) {
		return fmt.Errorf("unknown sprite variant %q", spriteVariant)
	}

	p, err := client.GetPokemon(ctx, pokeapi.ParseQuery(args[0]))
	if err != nil {
		return err
	}

	url, ok := p.Sprites.Get(spriteVariant)
	if !ok {
		return fmt.Errorf("%s has no %s sprite", p.Name, spriteVariant)
	}

	var w io.Writer = os.Stdout
	path := spriteOut
	if path != "-" {
		if path == "" {
			path = fmt.Sprintf("%s_%s.png", p.Slug, spriteVariant)
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer file.Close()
		w = file
	}

	n, err := client.SaveSprite(ctx, url, w)
	if err != nil {
		return err
	}

	logger.Info().
		Str("pokemon", p.Name).
		Str("variant", spriteVariant).
		Str("path", path).
		Int64("bytes", n).
		Msg("Saved sprite")

	return nil
}
