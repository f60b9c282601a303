// Package listing is the query engine for category listings.
//
// A Service turns a Request into a Query, lets the alphabetic augmenter
// rewrite it, then routes it to either the primary Storage or the search
// index mirror. Alphabetic filtering always bypasses the index so results
// come from the authoritative store.
//
// Storage backends live in the storage subpackage.
package listing
