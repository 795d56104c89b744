package pokeapi

// Color is a Pokedex color category.
type Color struct {
	Base

	Names          []LocalizedName `json:"names"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

// Kind implements Resource.
func (*Color) Kind() Kind { return KindColor }

// Habitat is a Pokemon habitat.
type Habitat struct {
	Base

	Names          []LocalizedName `json:"names"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

// Kind implements Resource.
func (*Habitat) Kind() Kind { return KindHabitat }
