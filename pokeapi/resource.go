package pokeapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind names a PokeAPI resource category. Its value is the endpoint path.
type Kind string

const (
	KindPokemon Kind = "pokemon"
	KindMove    Kind = "move"
	KindAbility Kind = "ability"
	KindBerry   Kind = "berry"
	KindItem    Kind = "item"
	KindMachine Kind = "machine"
	KindColor   Kind = "pokemon-color"
	KindHabitat Kind = "pokemon-habitat"
)

// Kinds lists every resource kind the client can fetch.
func Kinds() []Kind {
	return []Kind{KindPokemon, KindMove, KindAbility, KindBerry, KindItem, KindMachine, KindColor, KindHabitat}
}

// ParseKind resolves a user supplied kind. Short forms "color" and
// "habitat" are accepted.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "color":
		return KindColor, nil
	case "habitat":
		return KindHabitat, nil
	}
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown resource kind %q", ErrInvalidArgument, s)
}

// Resource is implemented by every decoded domain object.
type Resource interface {
	ResourceID() int
	ResourceName() string
	ResourceSlug() string
	Kind() Kind
}

// Equal reports whether a and b are the same resource: same kind, same id.
func Equal(a, b Resource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.ResourceID() == b.ResourceID()
}

// Base carries the fields shared by every full resource. Decoded objects are
// snapshots shared with the client cache and must not be modified.
type Base struct {
	ID   int    `json:"id"`
	Slug string `json:"name"`
	Name string `json:"-"`

	raw json.RawMessage
}

// ResourceID returns the numeric identifier.
func (b *Base) ResourceID() int { return b.ID }

// ResourceName returns the display name.
func (b *Base) ResourceName() string { return b.Name }

// ResourceSlug returns the raw API name.
func (b *Base) ResourceSlug() string { return b.Slug }

// Raw returns the payload the object was decoded from.
func (b *Base) Raw() json.RawMessage { return b.raw }

// Lookup reads any field of the original payload using gjson path syntax,
// including fields the typed struct does not model.
func (b *Base) Lookup(path string) gjson.Result {
	return gjson.GetBytes(b.raw, path)
}

func (b *Base) String() string { return b.Name }

func (b *Base) setup(raw []byte) {
	b.Name = PrettyFormat(b.Slug)
	b.raw = raw
}

// resourcePtr is satisfied by pointers to the domain types.
type resourcePtr[T any] interface {
	*T
	Resource
	setup(raw []byte)
}

// Decode turns a raw JSON payload into a typed resource, for example
// Decode[Pokemon](payload).
func Decode[T any, PT resourcePtr[T]](raw []byte) (PT, error) {
	obj := PT(new(T))
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", obj.Kind(), err)
	}
	obj.setup(raw)
	return obj, nil
}

// NamedResource is a lightweight reference to a resource as embedded in
// other payloads and returned by listing endpoints.
type NamedResource struct {
	ID   int
	Slug string
	Name string
	URL  string
}

// UnmarshalJSON decodes a {"name", "url"} pair. The id is taken from the
// trailing numeric path segment of the url.
func (r *NamedResource) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var wire struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.URL = wire.URL
	r.Slug = wire.Name
	r.Name = PrettyFormat(wire.Name)
	r.ID = 0

	if wire.URL != "" {
		id, err := idFromURL(wire.URL)
		if err != nil {
			return err
		}
		r.ID = id
	}
	return nil
}

// HasName reports whether the reference carries a name; some listings
// (machines) only return urls.
func (r NamedResource) HasName() bool { return r.Slug != "" }

func (r NamedResource) String() string {
	if r.Name != "" {
		return r.Name
	}
	return "#" + strconv.Itoa(r.ID)
}

func idFromURL(u string) (int, error) {
	trimmed := strings.TrimRight(u, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("resource url %q has no numeric id: %w", u, err)
	}
	return id, nil
}

// Query identifies a resource either by numeric id or by name.
type Query struct {
	id   int
	name string
	byID bool
}

// ByID builds a query for a numeric id.
func ByID(id int) Query {
	return Query{id: id, byID: true}
}

// ByName builds a query for a name. The name is normalized with FormatParam
// when it is sent or compared.
func ByName(name string) Query {
	return Query{name: name}
}

// ParseQuery builds a query from user input, treating numeric strings as ids.
func ParseQuery(s string) Query {
	return ByName(s).normalize()
}

// ID returns the numeric id, if the query is by id.
func (q Query) ID() (int, bool) {
	return q.id, q.byID
}

// normalize coerces numeric-looking names into ids.
func (q Query) normalize() Query {
	if q.byID {
		return q
	}
	if id, err := strconv.Atoi(strings.TrimSpace(q.name)); err == nil {
		return ByID(id)
	}
	return q
}

// Key is the normalized form used for cache lookups and request paths.
func (q Query) Key() string {
	q = q.normalize()
	if q.byID {
		return strconv.Itoa(q.id)
	}
	return FormatParam(q.name)
}

func (q Query) param() string { return q.Key() }

func (q Query) String() string {
	if q.byID {
		return strconv.Itoa(q.id)
	}
	return q.name
}
