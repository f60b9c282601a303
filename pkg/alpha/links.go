package alpha

import (
	"net/url"
	"strings"
)

// AllLabel is the label of the link that clears the filter.
const AllLabel = "All"

// SymbolsLabel is the label of the symbols bucket link.
const SymbolsLabel = "#"

// Link is one entry of the A-Z navigation.
type Link struct {
	// Label is the display text: "All", "#", or an uppercase letter.
	Label string `json:"label"`

	// Value is the raw parameter value; it normalizes back to Filter.
	Value string `json:"value"`

	// Href is the listing URL with the parameter applied.
	Href string `json:"href"`

	// Current is true for the link matching the active selection.
	Current bool `json:"current"`

	// Filter is the canonical selection behind the link.
	Filter Filter `json:"-"`
}

// BuildLinks returns the 28 navigation links (All, #, A-Z) for a listing
// rooted at base. The link whose filter equals current is marked current;
// with no selection "All" is current. The "All" link drops param from the
// base URL. Existing query parameters on base are kept.
func BuildLinks(base *url.URL, param string, current Filter) []Link {
	if param == "" {
		param = ParamName
	}

	alphabet := Alphabet()
	links := make([]Link, 0, len(alphabet))

	for _, f := range alphabet {
		links = append(links, Link{
			Label:   label(f),
			Value:   f.Value(),
			Href:    href(base, param, f),
			Current: f.Equal(current),
			Filter:  f,
		})
	}

	return links
}

func label(f Filter) string {
	switch f.Kind() {
	case KindLetter:
		return strings.ToUpper(string(f.Letter()))
	case KindSymbols:
		return SymbolsLabel
	default:
		return AllLabel
	}
}

func href(base *url.URL, param string, f Filter) string {
	if base == nil {
		base = &url.URL{}
	}

	u := *base
	q := u.Query()
	q.Del(param)
	for _, legacy := range DefaultParamNames {
		q.Del(legacy)
	}
	if !f.IsNone() {
		q.Set(param, f.Value())
	}
	u.RawQuery = q.Encode()

	return u.String()
}
