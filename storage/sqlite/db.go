// Package sqlite stores clients, access tokens and refresh tokens in a single
// SQLite database. Token values are stored lowercased and client ids are
// compared with NOCASE collation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrDuplicateToken is returned when an insert collides with an existing token.
var ErrDuplicateToken = errors.New("token already exists")

// DB owns the connection and hands out the three stores.
type DB struct {
	db      *sql.DB
	nowFunc func() time.Time
}

type Option func(*DB)

// WithNowFunc sets the clock used by the expiry queries.
func WithNowFunc(now func() time.Time) Option {
	return func(d *DB) {
		d.nowFunc = now
	}
}

// Open opens (or creates) the database at path and applies migrations.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// SQLite serialises writers; a single connection also keeps ":memory:"
	// databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	d := &DB{db: db, nowFunc: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Clients() *ClientStore {
	return &ClientStore{db: d.db}
}

func (d *DB) AccessTokens() *AccessTokenStore {
	return &AccessTokenStore{table: newAccessTable(d.db, d.nowFunc)}
}

func (d *DB) RefreshTokens() *RefreshTokenStore {
	return &RefreshTokenStore{table: newRefreshTable(d.db, d.nowFunc)}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
