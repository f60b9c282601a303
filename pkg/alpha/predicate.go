package alpha

import "strings"

// TitleColumn is the column predicates and ordering apply to.
const TitleColumn = "title"

// Predicate is a title-prefix condition derived from a Filter. It renders to
// a parameterized SQL fragment and can also be evaluated in memory.
type Predicate struct {
	filter Filter
}

// letterArgs holds a..z as bound arguments for the symbols clause.
var letterArgs = func() []any {
	args := make([]any, 0, 26)
	for c := byte('a'); c <= 'z'; c++ {
		args = append(args, string(c))
	}
	return args
}()

// PredicateFor builds the title predicate for f. It returns false for the
// None filter, which adds no condition.
func PredicateFor(f Filter) (Predicate, bool) {
	if f.IsNone() {
		return Predicate{}, false
	}
	return Predicate{filter: f}, true
}

// Filter returns the filter the predicate was built from.
func (p Predicate) Filter() Filter {
	return p.filter
}

// SQL renders the predicate as a WHERE fragment without the leading AND.
// The only value derived from input is the normalized letter, passed as a
// bound argument.
func (p Predicate) SQL() (string, []any) {
	first := "LOWER(SUBSTR(" + TitleColumn + ", 1, 1))"

	switch p.filter.Kind() {
	case KindLetter:
		return first + " = ?", []any{string(p.filter.Letter())}
	case KindSymbols:
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(letterArgs)), ", ")
		args := make([]any, len(letterArgs))
		copy(args, letterArgs)
		return first + " NOT IN (" + placeholders + ")", args
	default:
		return "", nil
	}
}

// MatchTitle evaluates the predicate against a title in memory, using the
// same ASCII case folding as the SQL rendering. An empty title belongs to
// the symbols bucket.
func (p Predicate) MatchTitle(title string) bool {
	var first byte
	if title != "" {
		first = foldASCII(title[0])
	}

	switch p.filter.Kind() {
	case KindLetter:
		return first == p.filter.Letter()
	case KindSymbols:
		return !isLower(first)
	default:
		return true
	}
}
