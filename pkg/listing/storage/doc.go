// Package storage provides storage backends for listed items.
//
// # Storage Backends
//
//   - SQLite: embedded database, opened through either modernc.org/sqlite
//     (driver "sqlite", pure Go) or github.com/mattn/go-sqlite3 (driver
//     "sqlite3", cgo)
//   - Memory: in-memory storage, used by tests and as the search index mirror
//
// Both backends render the same listing.Query semantics. Conditions are
// AND-ed in query order, titles compare case-insensitively over ASCII, and
// the memory backend evaluates alphabetic predicates with the same first
// character rule the SQL fragment encodes.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path:        "data/atoz.db",
//	    Driver:      storage.DriverPureGo,
//	    WALMode:     true,
//	    BusyTimeout: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	items, err := store.Query(ctx, q)
//
// # Schema
//
// The items table keeps created_at and updated_at as Unix nanoseconds and
// indexes title with COLLATE NOCASE for alphabetic listings. A
// schema_version table records the applied version.
package storage
