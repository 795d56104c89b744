package pokeapi

// Berry is a berry resource.
type Berry struct {
	Base

	GrowthTime       int              `json:"growth_time"`
	MaxHarvest       int              `json:"max_harvest"`
	NaturalGiftPower int              `json:"natural_gift_power"`
	Size             int              `json:"size"`
	Smoothness       int              `json:"smoothness"`
	SoilDryness      int              `json:"soil_dryness"`
	Firmness         NamedResource    `json:"firmness"`
	Flavors          []BerryFlavorMap `json:"flavors"`
	Item             NamedResource    `json:"item"`
	NaturalGiftType  NamedResource    `json:"natural_gift_type"`
}

// Kind implements Resource.
func (*Berry) Kind() Kind { return KindBerry }

// BerryFlavorMap is a flavor and its potency for a berry.
type BerryFlavorMap struct {
	Potency int           `json:"potency"`
	Flavor  NamedResource `json:"flavor"`
}
