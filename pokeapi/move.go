package pokeapi

// Move is a move resource. Nullable numbers are pointers.
type Move struct {
	Base

	Accuracy          *int                 `json:"accuracy"`
	EffectChance      *int                 `json:"effect_chance"`
	PP                *int                 `json:"pp"`
	Priority          int                  `json:"priority"`
	Power             *int                 `json:"power"`
	ContestType       *NamedResource       `json:"contest_type"`
	ContestCombos     *ContestComboSet     `json:"contest_combos"`
	Type              NamedResource        `json:"type"`
	Target            NamedResource        `json:"target"`
	Generation        NamedResource        `json:"generation"`
	DamageClass       NamedResource        `json:"damage_class"`
	Meta              *MoveMetaData        `json:"meta"`
	StatChanges       []MoveStatChange     `json:"stat_changes"`
	Names             []LocalizedName      `json:"names"`
	EffectEntries     []VerboseEffect      `json:"effect_entries"`
	FlavorTextEntries []FlavorText         `json:"flavor_text_entries"`
	PastValues        []PastMoveStatValues `json:"past_values"`
}

// Kind implements Resource.
func (*Move) Kind() Kind { return KindMove }

// ShortEffect returns the English short effect text, if any.
func (m *Move) ShortEffect() string {
	if e, ok := englishEffect(m.EffectEntries); ok {
		return e.ShortEffect
	}
	return ""
}

// MoveMetaData holds the battle mechanics of a move.
type MoveMetaData struct {
	Ailment       NamedResource `json:"ailment"`
	Category      NamedResource `json:"category"`
	MinHits       *int          `json:"min_hits"`
	MaxHits       *int          `json:"max_hits"`
	MinTurns      *int          `json:"min_turns"`
	MaxTurns      *int          `json:"max_turns"`
	Drain         int           `json:"drain"`
	Healing       int           `json:"healing"`
	CritRate      int           `json:"crit_rate"`
	AilmentChance int           `json:"ailment_chance"`
	FlinchChance  int           `json:"flinch_chance"`
	StatChance    int           `json:"stat_chance"`
}

// MoveStatChange is a stat change applied by a move.
type MoveStatChange struct {
	Change int           `json:"change"`
	Stat   NamedResource `json:"stat"`
}

// PastMoveStatValues holds values a move had before a version group changed them.
type PastMoveStatValues struct {
	Accuracy      *int            `json:"accuracy"`
	EffectChance  *int            `json:"effect_chance"`
	Power         *int            `json:"power"`
	PP            *int            `json:"pp"`
	EffectEntries []VerboseEffect `json:"effect_entries"`
	Type          *NamedResource  `json:"type"`
	VersionGroup  NamedResource   `json:"version_group"`
}

// ContestComboDetail lists moves that combo with a move in contests.
type ContestComboDetail struct {
	UseBefore []NamedResource `json:"use_before"`
	UseAfter  []NamedResource `json:"use_after"`
}

// ContestComboSet groups normal and super contest combos.
type ContestComboSet struct {
	Normal ContestComboDetail `json:"normal"`
	Super  ContestComboDetail `json:"super"`
}
