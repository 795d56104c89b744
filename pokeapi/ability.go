package pokeapi

// Ability is an ability resource.
type Ability struct {
	Base

	IsMainSeries      bool                  `json:"is_main_series"`
	Generation        NamedResource         `json:"generation"`
	Names             []LocalizedName       `json:"names"`
	EffectEntries     []VerboseEffect       `json:"effect_entries"`
	EffectChanges     []AbilityEffectChange `json:"effect_changes"`
	FlavorTextEntries []FlavorText          `json:"flavor_text_entries"`
	Pokemon           []AbilityPokemon      `json:"pokemon"`
}

// Kind implements Resource.
func (*Ability) Kind() Kind { return KindAbility }

// ShortEffect returns the English short effect text, if any.
func (a *Ability) ShortEffect() string {
	if e, ok := englishEffect(a.EffectEntries); ok {
		return e.ShortEffect
	}
	return ""
}

// AbilityEffectChange is a past change of an ability's effect.
type AbilityEffectChange struct {
	EffectEntries []Effect      `json:"effect_entries"`
	VersionGroup  NamedResource `json:"version_group"`
}

// AbilityPokemon is a Pokemon that can have the ability.
type AbilityPokemon struct {
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
	Pokemon  NamedResource `json:"pokemon"`
}
