// Package alpha implements alphabetic browsing for content listings.
//
// A listing whose categories declare the "alpha_sort" capability is sorted
// by title, and may be narrowed to titles starting with one letter or to the
// symbols bucket (titles not starting with a-z).
//
// # Normalization
//
// Raw parameter values are untrusted. Normalize maps any input onto one of
// three shapes and never fails:
//
//	Normalize("")      // None
//	Normalize("B")     // letter b
//	Normalize("bravo") // letter b (only the first character counts)
//	Normalize("7")     // Symbols
//	Normalize("0-9")   // Symbols (SymbolsValue)
//
// # Augmentation
//
// The Augmenter inspects and mutates a host query through the Query
// interface. It takes its capability source as a constructor argument:
//
//	aug := alpha.NewAugmenter(registry)
//	state := aug.Augment(query, alpha.ParamsFromValues(r.URL.Query(), false))
//
// Alphabetic mode is an enhancement. Unsupported categories, search queries
// and missing queries leave the query untouched and report StateInactive;
// Augment never returns an error.
//
// # Predicates
//
// Filters become Predicates that render as parameterized SQL:
//
//	LOWER(SUBSTR(title, 1, 1)) = ?                  -- letter
//	LOWER(SUBSTR(title, 1, 1)) NOT IN (?, ?, ... ?) -- symbols, a..z bound
//
// and can be evaluated in memory with MatchTitle.
//
// # Navigation
//
// BuildLinks produces the All, #, A-Z links for a listing, each carrying a
// parameter value that normalizes back to its filter.
package alpha
