// Package capability records which content categories declare which
// features.
//
// The alphabetic listing mode is enabled per category by declaring the
// alpha_sort feature. Declarations come from inline configuration and an
// optional YAML file:
//
//	categories:
//	  book: [alpha_sort]
//	  film: [alpha_sort, featured]
//
// A Registry is read on every listing request, so reads are lock-free
// against an immutable snapshot. A Loader rebuilds the snapshot; a
// FileWatcher triggers the Loader when the file changes, and a Scheduler
// can resync it on a cron schedule.
package capability
