package pokeapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// capitalizeOnly lists slugs whose display form keeps the hyphen and only
// upper-cases the first letter.
var capitalizeOnly = map[string]struct{}{
	"oh-ho":     {},
	"porygon-z": {},
}

// FormatParam converts a name into the slug used both in request paths and
// as a cache key: lower-cased, whitespace runs joined with hyphens, then
// percent-escaped with no characters treated as safe.
func FormatParam(name string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	return url.QueryEscape(slug)
}

// PrettyFormat turns an API slug into a display name ("thick-fat" becomes
// "Thick Fat").
func PrettyFormat(slug string) string {
	if _, ok := capitalizeOnly[strings.ToLower(slug)]; ok {
		return capitalize(slug)
	}
	// Casers carry state, so one is built per call.
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Param is a single query string pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order when encoded.
type Params []Param

// Add appends a key/value pair.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: formatValue(value)})
}

// Encode renders the parameters as "k=v&k2=v2" in insertion order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// route is a fully built request target.
type route struct {
	base     string
	path     string
	segments []string
	query    Params
}

// newRoute joins base, a resource path and escaped path parameters. Ints
// are rendered as-is, strings are slugged with FormatParam and Queries use
// their own form.
func newRoute(base, path string, args ...any) route {
	segments := make([]string, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case int:
			segments = append(segments, strconv.Itoa(a))
		case Query:
			segments = append(segments, a.param())
		case string:
			segments = append(segments, FormatParam(a))
		}
	}

	return route{
		base:     strings.TrimRight(base, "/"),
		path:     strings.Trim(path, "/"),
		segments: segments,
	}
}

// withQuery returns a copy of r carrying query parameters.
func (r route) withQuery(q Params) route {
	r.query = q
	return r
}

// URL renders the full request URL.
func (r route) URL() string {
	var sb strings.Builder
	sb.WriteString(r.base)
	sb.WriteByte('/')
	sb.WriteString(r.path)
	if len(r.segments) > 0 {
		sb.WriteByte('/')
		sb.WriteString(strings.Join(r.segments, "/"))
	}
	if qs := r.query.Encode(); qs != "" {
		sb.WriteByte('?')
		sb.WriteString(qs)
	}
	return sb.String()
}
