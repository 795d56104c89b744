package pokeapi

// LocalizedName is a name in a given language.
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

func (n LocalizedName) String() string { return n.Name }

// Effect is an effect description in a given language.
type Effect struct {
	Effect   string        `json:"effect"`
	Language NamedResource `json:"language"`
}

func (e Effect) String() string { return e.Effect }

// VerboseEffect is a long and a short effect description in a given language.
type VerboseEffect struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

// VersionGameIndex is the internal id of an object within game data for a version.
type VersionGameIndex struct {
	GameIndex int           `json:"game_index"`
	Version   NamedResource `json:"version"`
}

// FlavorText is in-game flavor text tied to a language and a version group.
type FlavorText struct {
	FlavorText   string        `json:"flavor_text"`
	Language     NamedResource `json:"language"`
	VersionGroup NamedResource `json:"version_group"`
}

func (f FlavorText) String() string { return f.FlavorText }

// englishEffect picks the English entry of a VerboseEffect list.
func englishEffect(entries []VerboseEffect) (VerboseEffect, bool) {
	for _, e := range entries {
		if e.Language.Slug == "en" {
			return e, true
		}
	}
	return VerboseEffect{}, false
}
