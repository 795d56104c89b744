package pokeapi

// Pokemon is a creature resource.
type Pokemon struct {
	Base

	BaseExperience int                `json:"base_experience"`
	Height         int                `json:"height"`
	Weight         int                `json:"weight"`
	IsDefault      bool               `json:"is_default"`
	Order          int                `json:"order"`
	Species        NamedResource      `json:"species"`
	Forms          []NamedResource    `json:"forms"`
	Abilities      []PokemonAbility   `json:"abilities"`
	Types          []PokemonType      `json:"types"`
	Stats          []PokemonStat      `json:"stats"`
	Moves          []PokemonMove      `json:"moves"`
	HeldItems      []PokemonHeldItem  `json:"held_items"`
	GameIndices    []VersionGameIndex `json:"game_indices"`
	Sprites        PokemonSprites     `json:"sprites"`
}

// Kind implements Resource.
func (*Pokemon) Kind() Kind { return KindPokemon }

// Stat returns the base value of the named stat ("hp", "special-attack").
func (p *Pokemon) Stat(slug string) (int, bool) {
	for _, s := range p.Stats {
		if s.Stat.Slug == slug {
			return s.BaseStat, true
		}
	}
	return 0, false
}

// PokemonAbility is an ability slot of a Pokemon.
type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

func (a PokemonAbility) String() string { return a.Ability.Name }

// PokemonType is a type slot of a Pokemon.
type PokemonType struct {
	Type NamedResource `json:"type"`
	Slot int           `json:"slot"`
}

func (t PokemonType) String() string { return t.Type.Name }

// PokemonStat is a base stat of a Pokemon.
type PokemonStat struct {
	Stat     NamedResource `json:"stat"`
	Effort   int           `json:"effort"`
	BaseStat int           `json:"base_stat"`
}

// PokemonMove is a move a Pokemon can learn.
type PokemonMove struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []PokemonMoveVersion `json:"version_group_details"`
}

func (m PokemonMove) String() string { return m.Move.Name }

// PokemonMoveVersion describes how a move is learnt in a version group.
type PokemonMoveVersion struct {
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
	LevelLearnedAt  int           `json:"level_learned_at"`
}

// PokemonHeldItem is an item a wild Pokemon may hold.
type PokemonHeldItem struct {
	Item           NamedResource            `json:"item"`
	VersionDetails []PokemonHeldItemVersion `json:"version_details"`
}

func (h PokemonHeldItem) String() string { return h.Item.Name }

// PokemonHeldItemVersion is the rarity of a held item in a version.
type PokemonHeldItemVersion struct {
	Version NamedResource `json:"version"`
	Rarity  int           `json:"rarity"`
}

// PokemonSprites holds sprite urls; absent variants are nil.
type PokemonSprites struct {
	FrontDefault     *string `json:"front_default"`
	FrontShiny       *string `json:"front_shiny"`
	FrontFemale      *string `json:"front_female"`
	FrontShinyFemale *string `json:"front_shiny_female"`
	BackDefault      *string `json:"back_default"`
	BackShiny        *string `json:"back_shiny"`
	BackFemale       *string `json:"back_female"`
	BackShinyFemale  *string `json:"back_shiny_female"`
}

// SpriteVariants lists the variant names accepted by PokemonSprites.Get.
var SpriteVariants = []string{
	"front_default", "front_shiny", "front_female", "front_shiny_female",
	"back_default", "back_shiny", "back_female", "back_shiny_female",
}

// Get returns the url of a sprite variant such as "front_default".
func (s PokemonSprites) Get(variant string) (string, bool) {
	var u *string
	switch variant {
	case "front_default":
		u = s.FrontDefault
	case "front_shiny":
		u = s.FrontShiny
	case "front_female":
		u = s.FrontFemale
	case "front_shiny_female":
		u = s.FrontShinyFemale
	case "back_default":
		u = s.BackDefault
	case "back_shiny":
		u = s.BackShiny
	case "back_female":
		u = s.BackFemale
	case "back_shiny_female":
		u = s.BackShinyFemale
	}
	if u == nil || *u == "" {
		return "", false
	}
	return *u, true
}
