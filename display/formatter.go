// Package display renders PokeAPI resources for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/s0up4200/pokedex/pokeapi"
)

// ConsoleFormatter provides console output formatting for resources
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatReferences formats a listing page for console display
func (f *ConsoleFormatter) FormatReferences(kind pokeapi.Kind, refs []pokeapi.NamedResource) string {
	if len(refs) == 0 {
		return fmt.Sprintf("No %s found", kind)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", pokeapi.PrettyFormat(string(kind)), len(refs))

	for i, ref := range refs {
		prefix := "\u251c"
		if i == len(refs)-1 {
			prefix = "\u2570"
		}
		fmt.Fprintf(&sb, "%s\u2500\u2500 #%-5d %s\n", prefix, ref.ID, ref)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMatches formats fuzzy search results with their scores
func (f *ConsoleFormatter) FormatMatches(query string, matches []pokeapi.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("Nothing similar to %q", query)
	}

	var sb strings.Builder
	if len(matches) == 1 && matches[0].Score == pokeapi.PerfectMatch {
		fmt.Fprintf(&sb, "\nExact match for %q:\n\n", query)
	} else {
		fmt.Fprintf(&sb, "\nSimilar to %q (%d):\n\n", query, len(matches))
	}

	for i, m := range matches {
		prefix := "\u251c"
		if i == len(matches)-1 {
			prefix = "\u2570"
		}
		fmt.Fprintf(&sb, "%s\u2500\u2500 %-24s %3d%%  #%d\n", prefix, m.Resource, m.Score, m.Resource.ID)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatResources formats fully resolved resources, one block each
func (f *ConsoleFormatter) FormatResources(resources []pokeapi.Resource) string {
	var sb strings.Builder
	for i, res := range resources {
		f.formatResource(&sb, res, i == len(resources)-1)
		if i != len(resources)-1 {
			sb.WriteString("\u2502\n")
		}
	}
	return sb.String()
}

// FormatResource formats a single resource with its details
func (f *ConsoleFormatter) FormatResource(res pokeapi.Resource) string {
	var sb strings.Builder
	f.formatResource(&sb, res, true)
	return sb.String()
}

func (f *ConsoleFormatter) formatResource(sb *strings.Builder, res pokeapi.Resource, isLast bool) {
	prefix := "\u251c"
	if isLast {
		prefix = "\u2570"
	}
	fmt.Fprintf(sb, "%s\u2500\u2500 %s (#%d, %s)\n", prefix, res.ResourceName(), res.ResourceID(), res.Kind())

	indent := "\u2502   "
	if isLast {
		indent = "    "
	}

	for _, line := range details(res) {
		fmt.Fprintf(sb, "%s%s\n", indent, line)
	}
}

// details returns the kind specific lines shown under a resource
func details(res pokeapi.Resource) []string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	switch r := res.(type) {
	case *pokeapi.Pokemon:
		add("Types: %s", joinStringers(r.Types))
		add("Abilities: %s", joinStringers(r.Abilities))
		add("Height: %.1f m | Weight: %.1f kg", float64(r.Height)/10, float64(r.Weight)/10)
		if len(r.Stats) > 0 {
			stats := make([]string, len(r.Stats))
			for i, s := range r.Stats {
				stats[i] = fmt.Sprintf("%s %d", s.Stat.Name, s.BaseStat)
			}
			add("Stats: %s", strings.Join(stats, ", "))
		}
		if len(r.HeldItems) > 0 {
			add("Held items: %s", joinStringers(r.HeldItems))
		}
		add("Moves: %d", len(r.Moves))

	case *pokeapi.Move:
		add("Type: %s | Class: %s", r.Type.Name, r.DamageClass.Name)
		add("Power: %s | Accuracy: %s | PP: %s", optional(r.Power), optional(r.Accuracy), optional(r.PP))
		if effect := r.ShortEffect(); effect != "" {
			add("Effect: %s", effect)
		}

	case *pokeapi.Ability:
		if effect := r.ShortEffect(); effect != "" {
			add("Effect: %s", effect)
		}
		add("Pokemon: %d", len(r.Pokemon))

	case *pokeapi.Berry:
		add("Firmness: %s | Size: %d mm", r.Firmness.Name, r.Size)
		add("Growth time: %dh | Max harvest: %d", r.GrowthTime, r.MaxHarvest)
		add("Natural gift: %s %d", r.NaturalGiftType.Name, r.NaturalGiftPower)

	case *pokeapi.Item:
		add("Category: %s | Cost: %d", r.Category.Name, r.Cost)
		if effect := r.ShortEffect(); effect != "" {
			add("Effect: %s", effect)
		}

	case *pokeapi.Machine:
		add("Teaches: %s", r.Move.Name)
		add("Version group: %s", r.VersionGroup.Name)

	case *pokeapi.Color:
		add("Species: %d", len(r.PokemonSpecies))

	case *pokeapi.Habitat:
		add("Species: %d", len(r.PokemonSpecies))
	}

	return lines
}

func joinStringers[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "None"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}

func optional(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
