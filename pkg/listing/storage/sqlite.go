package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/listing"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver selects the database/sql driver: "sqlite" (modernc.org/sqlite)
	// or "sqlite3" (github.com/mattn/go-sqlite3).
	// Default: "sqlite"
	Driver string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/atoz.db",
		Driver:       DriverPureGo,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements listing.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverPureGo
	}
	if config.Driver != DriverPureGo && config.Driver != DriverCGO {
		return nil, listing.NewStorageError("sqlite", "open",
			fmt.Errorf("unsupported driver %q (supported: %s, %s)", config.Driver, DriverPureGo, DriverCGO))
	}

	logger := slog.Default().With("component", "listing.storage.sqlite")

	// Open database connection
	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, listing.NewStorageError("sqlite", "open", err)
	}

	// Configure connection pool
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	// Initialize database
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	// Enable WAL mode if configured
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return listing.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	// Set busy timeout
	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return listing.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	// Create schema
	if _, err := s.db.Exec(Schema); err != nil {
		return listing.NewStorageError("sqlite", "create_schema", err)
	}

	// Insert schema version
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return listing.NewStorageError("sqlite", "insert_schema_version", err)
	}

	// Verify schema version
	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return listing.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return listing.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Backend implements listing.Storage.
func (s *SQLiteStorage) Backend() string {
	return "sqlite"
}

// Store inserts or replaces an item.
func (s *SQLiteStorage) Store(ctx context.Context, item *listing.Item) error {
	query := `INSERT OR REPLACE INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Category,
		item.Title, item.Slug,
		item.Status, item.MenuOrder,
		item.CreatedAt.UnixNano(), item.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return listing.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Get returns the item with the given ID.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*listing.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.NewStorageError("sqlite", "get", listing.ErrNotFound)
	}
	if err != nil {
		return nil, listing.NewStorageError("sqlite", "get", err)
	}

	return item, nil
}

// Query retrieves items matching the query, in query order.
func (s *SQLiteStorage) Query(ctx context.Context, query *listing.Query) ([]*listing.Item, error) {
	sqlQuery, args := s.buildSelect(query)

	// Execute query
	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, listing.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	// Scan results
	items := []*listing.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, listing.NewStorageError("sqlite", "scan", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, listing.NewStorageError("sqlite", "query", err)
	}

	return items, nil
}

// Count returns the number of items matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *listing.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM items"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, listing.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes the item with the given ID.
func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return listing.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return listing.NewStorageError("sqlite", "delete", err)
	}
	if count == 0 {
		return listing.NewStorageError("sqlite", "delete", listing.ErrNotFound)
	}

	return nil
}

// Ping verifies the database connection is usable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return listing.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return listing.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite storage closed")
	return nil
}

// buildSelect builds the full SELECT statement for a query.
func (s *SQLiteStorage) buildSelect(query *listing.Query) (string, []any) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + itemColumns + " FROM items"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	// Add sorting
	sqlQuery += " ORDER BY " + buildOrderClause(query.OrderBy)

	// Add pagination
	limit := listing.DefaultLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	return sqlQuery, args
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Query conditions come first and keep their order, so a prepended
// alphabetic predicate leads the clause.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func buildWhereClause(query *listing.Query) (string, []any) {
	var conditions []string
	var args []any

	// Explicit conditions
	for _, c := range query.Conditions {
		clause, cargs := c.SQL()
		if clause == "" {
			continue
		}
		conditions = append(conditions, "("+clause+")")
		args = append(args, cargs...)
	}

	// Category scope
	if categories := query.Categories(); len(categories) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(categories)), ", ")
		conditions = append(conditions, "category IN ("+placeholders+")")
		for _, c := range categories {
			args = append(args, c)
		}
	}

	// Status filter
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}

	// Search term
	if query.IsSearch() {
		conditions = append(conditions, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.TrimSpace(query.Search))+"%")
	}

	return strings.Join(conditions, " AND "), args
}

// buildOrderClause renders sort keys. Unknown fields are skipped; callers
// validate queries before they reach storage. Titles sort case-insensitively.
func buildOrderClause(orders []listing.Order) string {
	var keys []string

	for _, o := range orders {
		if !listing.ValidSortFields[o.Field] {
			continue
		}

		dir := "ASC"
		if o.Direction == alpha.Desc {
			dir = "DESC"
		}

		field := o.Field
		if field == "title" {
			field = "title COLLATE NOCASE"
		}
		keys = append(keys, field+" "+dir)
	}

	if len(keys) == 0 {
		return "created_at DESC, id DESC"
	}
	return strings.Join(keys, ", ")
}

// escapeLike escapes LIKE wildcards with a backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem scans a database row into an Item.
func scanItem(row rowScanner) (*listing.Item, error) {
	var item listing.Item
	var createdAt, updatedAt int64

	err := row.Scan(
		&item.ID, &item.Category,
		&item.Title, &item.Slug,
		&item.Status, &item.MenuOrder,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = time.Unix(0, createdAt).UTC()
	item.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return &item, nil
}
