package pokeapi

// Item is an item resource.
type Item struct {
	Base

	Cost              int                 `json:"cost"`
	FlingPower        *int                `json:"fling_power"`
	FlingEffect       *NamedResource      `json:"fling_effect"`
	Attributes        []NamedResource     `json:"attributes"`
	Category          NamedResource       `json:"category"`
	EffectEntries     []VerboseEffect     `json:"effect_entries"`
	FlavorTextEntries []ItemFlavorText    `json:"flavor_text_entries"`
	GameIndices       []ItemGameIndex     `json:"game_indices"`
	Names             []LocalizedName     `json:"names"`
	HeldByPokemon     []ItemHolderPokemon `json:"held_by_pokemon"`
	Sprites           ItemSprites         `json:"sprites"`
}

// Kind implements Resource.
func (*Item) Kind() Kind { return KindItem }

// ShortEffect returns the English short effect text, if any.
func (i *Item) ShortEffect() string {
	if e, ok := englishEffect(i.EffectEntries); ok {
		return e.ShortEffect
	}
	return ""
}

// ItemFlavorText is an item's flavor text. Items use "text" rather than
// "flavor_text".
type ItemFlavorText struct {
	Text         string        `json:"text"`
	Language     NamedResource `json:"language"`
	VersionGroup NamedResource `json:"version_group"`
}

// ItemGameIndex is an item's index within a generation.
type ItemGameIndex struct {
	GameIndex  int           `json:"game_index"`
	Generation NamedResource `json:"generation"`
}

// ItemHolderPokemon is a Pokemon that may hold the item.
type ItemHolderPokemon struct {
	Pokemon        NamedResource            `json:"pokemon"`
	VersionDetails []PokemonHeldItemVersion `json:"version_details"`
}

// ItemSprites holds the item's sprite url.
type ItemSprites struct {
	Default *string `json:"default"`
}
