package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository keeps customers, lots and history in one SQLite file.
type SQLiteRepository struct {
	DB   *sql.DB
	path string
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_code TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		customer_inn TEXT NOT NULL,
		customer_kpp TEXT NOT NULL,
		customer_legal_address TEXT NOT NULL,
		customer_postal_address TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_code_main TEXT,
		is_organization INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_code_main ON customers(customer_code_main)`,
	`CREATE TABLE IF NOT EXISTS lots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lot_name TEXT NOT NULL,
		customer_code TEXT NOT NULL,
		price TEXT NOT NULL,
		currency_code TEXT NOT NULL,
		nds_rate TEXT NOT NULL,
		place_delivery TEXT NOT NULL,
		date_delivery TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lots_customer_code ON lots(customer_code)`,
	`CREATE TABLE IF NOT EXISTS change_history (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		kind TEXT NOT NULL,
		record_id INTEGER NOT NULL,
		code TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_kind_created ON change_history(kind, created_at DESC)`,
}

// NewSQLiteRepository opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		dsn = "file::memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps an
	// in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	log.Debug().Str("path", path).Msg("SQLite connection established")
	return &SQLiteRepository{DB: db, path: path}, nil
}

func (r *SQLiteRepository) EnsureIndexes(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Close(_ context.Context) error {
	return r.DB.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Fixed-width so that text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, s)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newHistoryID() string {
	return uuid.NewString()
}
