package pokeapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPokemon(id int, slug string) *Pokemon {
	p := &Pokemon{Base: Base{ID: id, Slug: slug}}
	p.setup(nil)
	return p
}

func TestResultCacheLookupByEitherKey(t *testing.T) {
	rc := NewResultCache[*Pokemon](KindPokemon, 4)
	mime := newPokemon(122, "mr-mime")
	rc.Put(mime)

	tests := []struct {
		name  string
		query Query
	}{
		{name: "id", query: ByID(122)},
		{name: "slug", query: ByName("mr-mime")},
		{name: "display name", query: ByName("Mr Mime")},
		{name: "numeric name", query: ByName("122")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rc.Get(tt.query)
			require.True(t, ok)
			assert.Same(t, mime, got)
		})
	}

	_, ok := rc.Get(ByName("mime"))
	assert.False(t, ok)
	_, ok = rc.Get(ByID(1))
	assert.False(t, ok)
}

func TestResultCacheEvictionDropsBothKeys(t *testing.T) {
	rc := NewResultCache[*Pokemon](KindPokemon, 2)
	rc.Put(newPokemon(1, "bulbasaur"))
	rc.Put(newPokemon(4, "charmander"))

	// touch bulbasaur so charmander is the eviction candidate
	_, ok := rc.Get(ByName("bulbasaur"))
	require.True(t, ok)

	rc.Put(newPokemon(7, "squirtle"))
	assert.Equal(t, 2, rc.Len())

	_, ok = rc.Get(ByID(4))
	assert.False(t, ok)
	_, ok = rc.Get(ByName("charmander"))
	assert.False(t, ok)

	_, ok = rc.Get(ByID(1))
	assert.True(t, ok)
	_, ok = rc.Get(ByName("squirtle"))
	assert.True(t, ok)
}

func TestResultCacheReplaceSameID(t *testing.T) {
	rc := NewResultCache[*Pokemon](KindPokemon, 2)
	rc.Put(newPokemon(25, "pikachu"))

	renamed := newPokemon(25, "pikachu-rock-star")
	rc.Put(renamed)

	assert.Equal(t, 1, rc.Len())
	_, ok := rc.Get(ByName("pikachu"))
	assert.False(t, ok, "stale slug must not resolve")

	got, ok := rc.Get(ByID(25))
	require.True(t, ok)
	assert.Same(t, renamed, got)
}

func TestResultCacheWithoutSlug(t *testing.T) {
	rc := NewResultCache[*Machine](KindMachine, 2)
	m := &Machine{Base: Base{ID: 1}}
	rc.Put(m)

	got, ok := rc.Get(ByID(1))
	require.True(t, ok)
	assert.Same(t, m, got)
	_, ok = rc.Get(ByName(""))
	assert.False(t, ok)
}

func TestResultCacheClear(t *testing.T) {
	rc := NewResultCache[*Pokemon](KindPokemon, 3)
	rc.Put(newPokemon(1, "bulbasaur"))
	rc.Put(newPokemon(2, "ivysaur"))

	rc.Clear()

	assert.Equal(t, 0, rc.Len())
	assert.Equal(t, 3, rc.Cap())
	assert.Equal(t, KindPokemon, rc.Kind())
	_, ok := rc.Get(ByName("ivysaur"))
	assert.False(t, ok)
}
