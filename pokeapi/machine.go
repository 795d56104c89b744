package pokeapi

import "strconv"

// Machine is a TM or HM. Machines have no name of their own and display as
// the item that teaches the move.
type Machine struct {
	Base

	Item         NamedResource `json:"item"`
	Move         NamedResource `json:"move"`
	VersionGroup NamedResource `json:"version_group"`
}

// Kind implements Resource.
func (*Machine) Kind() Kind { return KindMachine }

// ResourceName implements Resource.
func (m *Machine) ResourceName() string { return m.String() }

func (m *Machine) String() string {
	if m.Item.Name != "" {
		return m.Item.Name
	}
	return "Machine " + strconv.Itoa(m.ID)
}
