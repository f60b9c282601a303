package alpha

import "strings"

// Kind identifies the shape of a canonical filter.
type Kind uint8

const (
	// KindNone means no alphabetic restriction.
	KindNone Kind = iota
	// KindLetter restricts results to titles starting with one letter.
	KindLetter
	// KindSymbols restricts results to titles not starting with a-z.
	KindSymbols
)

// String returns the kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "letter"
	case KindSymbols:
		return "symbols"
	default:
		return "none"
	}
}

// SymbolsValue is the query parameter value that selects the symbols bucket.
// Its first character is a digit, so it normalizes back to Symbols.
const SymbolsValue = "0-9"

// LegacySymbolsValue is the older symbols sentinel still found in links.
// It is matched case-insensitively.
const LegacySymbolsValue = "sym"

// Filter is the normalized alphabetic selection for a request.
// The zero value is the "no filter" selection.
type Filter struct {
	kind   Kind
	letter byte
}

// None returns the filter that applies no restriction.
func None() Filter {
	return Filter{}
}

// Symbols returns the filter selecting titles that do not start with a-z.
func Symbols() Filter {
	return Filter{kind: KindSymbols}
}

// LetterFilter returns the filter for a single ASCII letter. Uppercase input
// is folded. The boolean is false if c is not an ASCII letter.
func LetterFilter(c byte) (Filter, bool) {
	c = foldASCII(c)
	if !isLower(c) {
		return Filter{}, false
	}
	return Filter{kind: KindLetter, letter: c}, true
}

// Normalize converts an untrusted raw parameter value into a Filter.
//
// An empty value yields None and LegacySymbolsValue yields Symbols.
// Otherwise only the first character is considered: an ASCII letter (either
// case) yields that lowercase letter, and anything else (digits,
// punctuation, the start of a multi-byte sequence) yields Symbols.
// Normalize never fails.
func Normalize(raw string) Filter {
	if raw == "" {
		return None()
	}
	if strings.EqualFold(raw, LegacySymbolsValue) {
		return Symbols()
	}

	if f, ok := LetterFilter(raw[0]); ok {
		return f
	}

	return Symbols()
}

// Kind returns the filter's shape.
func (f Filter) Kind() Kind {
	return f.kind
}

// Letter returns the selected lowercase letter, or 0 if the filter is not
// a letter filter.
func (f Filter) Letter() byte {
	return f.letter
}

// IsNone reports whether the filter applies no restriction.
func (f Filter) IsNone() bool {
	return f.kind == KindNone
}

// Equal reports whether two filters select the same bucket.
func (f Filter) Equal(other Filter) bool {
	return f == other
}

// Value returns the representative parameter value for the filter. Passing
// it back through Normalize reproduces the filter.
func (f Filter) Value() string {
	switch f.kind {
	case KindLetter:
		return string(f.letter)
	case KindSymbols:
		return SymbolsValue
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (f Filter) String() string {
	switch f.kind {
	case KindLetter:
		return "letter(" + string(f.letter) + ")"
	case KindSymbols:
		return "symbols"
	default:
		return "none"
	}
}

// Alphabet returns every canonical filter in navigation order:
// None, Symbols, then a through z.
func Alphabet() []Filter {
	filters := make([]Filter, 0, 28)
	filters = append(filters, None(), Symbols())
	for c := byte('a'); c <= 'z'; c++ {
		filters = append(filters, Filter{kind: KindLetter, letter: c})
	}
	return filters
}

func foldASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
