package pokeapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecodePokemon(t *testing.T) {
	p, err := Decode[Pokemon](loadFixture(t, "pokemon_snorlax.json"))
	require.NoError(t, err)

	assert.Equal(t, 143, p.ResourceID())
	assert.Equal(t, "snorlax", p.ResourceSlug())
	assert.Equal(t, "Snorlax", p.ResourceName())
	assert.Equal(t, "Snorlax", p.String())
	assert.Equal(t, KindPokemon, p.Kind())
	assert.Equal(t, 4600, p.Weight)

	require.Len(t, p.Abilities, 3)
	assert.Equal(t, "Thick Fat", p.Abilities[1].Ability.Name)
	assert.Equal(t, 47, p.Abilities[1].Ability.ID)
	assert.True(t, p.Abilities[2].IsHidden)

	hp, ok := p.Stat("hp")
	assert.True(t, ok)
	assert.Equal(t, 160, hp)
	_, ok = p.Stat("special-attack")
	assert.False(t, ok)

	front, ok := p.Sprites.Get("front_default")
	assert.True(t, ok)
	assert.Contains(t, front, "/143.png")
	_, ok = p.Sprites.Get("front_female")
	assert.False(t, ok, "null variants are absent")

	assert.Equal(t, "https://raw.githubusercontent.com/PokeAPI/cries/main/cries/pokemon/latest/143.ogg",
		p.Lookup("cries.latest").String())
}

func TestDecodeMove(t *testing.T) {
	m, err := Decode[Move](loadFixture(t, "move_tackle.json"))
	require.NoError(t, err)

	assert.Equal(t, "Tackle", m.Name)
	require.NotNil(t, m.Power)
	assert.Equal(t, 40, *m.Power)
	assert.Nil(t, m.EffectChance)
	assert.Nil(t, m.ContestCombos)
	require.NotNil(t, m.Meta)
	assert.Nil(t, m.Meta.MinHits)
	assert.Equal(t, "Inflicts regular damage with no additional effect.", m.ShortEffect())
}

func TestDecodeMachineUsesItemName(t *testing.T) {
	m, err := Decode[Machine](loadFixture(t, "machine_1.json"))
	require.NoError(t, err)

	assert.Equal(t, 1, m.ID)
	assert.Empty(t, m.ResourceSlug())
	assert.Equal(t, "Tm00", m.ResourceName())
	assert.Equal(t, "Mega Punch", m.Move.Name)

	var unnamed Machine
	unnamed.ID = 7
	assert.Equal(t, "Machine 7", unnamed.String())
}

func TestDecodeInvalidPayload(t *testing.T) {
	_, err := Decode[Ability]([]byte(`{"id": "one"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode ability")
}

func TestNamedResourceUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NamedResource
		wantErr bool
	}{
		{
			name:  "id from trailing segment",
			input: `{"name": "thick-fat", "url": "https://pokeapi.co/api/v2/ability/47/"}`,
			want:  NamedResource{ID: 47, Slug: "thick-fat", Name: "Thick Fat", URL: "https://pokeapi.co/api/v2/ability/47/"},
		},
		{
			name:  "no trailing slash",
			input: `{"name": "tackle", "url": "https://pokeapi.co/api/v2/move/33"}`,
			want:  NamedResource{ID: 33, Slug: "tackle", Name: "Tackle", URL: "https://pokeapi.co/api/v2/move/33"},
		},
		{
			name:  "url only",
			input: `{"url": "https://pokeapi.co/api/v2/machine/9/"}`,
			want:  NamedResource{ID: 9, URL: "https://pokeapi.co/api/v2/machine/9/"},
		},
		{
			name:    "non numeric id",
			input:   `{"name": "x", "url": "https://pokeapi.co/api/v2/move/x/"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got NamedResource
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamedResourceString(t *testing.T) {
	assert.Equal(t, "Thick Fat", NamedResource{ID: 47, Name: "Thick Fat"}.String())
	assert.Equal(t, "#9", NamedResource{ID: 9}.String())
	assert.False(t, NamedResource{ID: 9}.HasName())
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		key    string
		wantID int
		byID   bool
	}{
		{name: "by id", query: ByID(143), key: "143", wantID: 143, byID: true},
		{name: "by name", query: ByName("Thick Fat"), key: "thick-fat"},
		{name: "numeric name is coerced", query: ParseQuery(" 25 "), key: "25", wantID: 25, byID: true},
		{name: "plain name", query: ParseQuery("pikachu"), key: "pikachu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.query.Key())
			id, ok := tt.query.ID()
			assert.Equal(t, tt.byID, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind(" Color ")
	require.NoError(t, err)
	assert.Equal(t, KindColor, got)

	_, err = ParseKind("trainer")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEqual(t *testing.T) {
	a := &Pokemon{Base: Base{ID: 1, Slug: "bulbasaur"}}
	b := &Pokemon{Base: Base{ID: 1, Slug: "bulbasaur"}}
	m := &Move{Base: Base{ID: 1, Slug: "pound"}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, m))
	assert.False(t, Equal(a, nil))
	assert.True(t, Equal(nil, nil))
}
