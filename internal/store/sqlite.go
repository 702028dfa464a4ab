package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MJE43/casino-sim/internal/sim"
	"github.com/pressly/goose/v3"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// sqliteTimeLayout is the CURRENT_TIMESTAMP text format
const sqliteTimeLayout = "2006-01-02 15:04:05"

const memoryPath = ":memory:"

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db   *sql.DB
	path string
}

var _ DB = (*SQLiteDB)(nil)

// Open opens or creates the store at path, creating parent directories and
// applying migrations. Every failure is reported as an *OpenError.
func Open(ctx context.Context, path string) (*SQLiteDB, error) {
	if path == "" {
		return nil, &OpenError{Path: path, Err: errors.New("empty path")}
	}

	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, &OpenError{Path: path, Err: err}
			}
		}
	}

	s, err := NewSQLiteDB(ctx, path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	if err := s.Migrate(ctx); err != nil {
		return nil, &OpenError{Path: path, Err: multierr.Append(err, s.Close())}
	}

	return s, nil
}

// NewSQLiteDB creates a new SQLite database connection without migrating
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to connect: %w", err), db.Close())
	}

	if path == memoryPath {
		// Each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to enable WAL mode: %w", err), db.Close())
	}

	return &SQLiteDB{db: db, path: path}, nil
}

// Path returns the path the store was opened with
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded goose migrations. Safe to call repeatedly.
func (s *SQLiteDB) Migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Insert appends one run summary and returns its row id
func (s *SQLiteDB) Insert(ctx context.Context, row *GameRow) (int64, error) {
	query := `INSERT INTO games (type, params_json, trials, hits, hit_rate, ev, run_id, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		row.Type, row.ParamsJSON, row.Trials, row.Hits, row.HitRate, row.EV,
		nullString(row.RunID), nullString(row.EngineVersion),
	)
	if err != nil {
		return 0, &WriteError{Op: "insert", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &WriteError{Op: "insert", Err: err}
	}
	row.ID = id
	return id, nil
}

// InsertSummary stores a finished run
func (s *SQLiteDB) InsertSummary(ctx context.Context, summary *sim.Summary) (int64, error) {
	return s.Insert(ctx, RowFromSummary(summary))
}

const selectColumns = `id, created_at, type, params_json, trials, hits, hit_rate, ev, run_id, engine_version`

// Latest returns the most recently inserted row, optionally restricted to a
// game type. Returns ErrNoRows when nothing matches.
func (s *SQLiteDB) Latest(ctx context.Context, gameType string) (*GameRow, error) {
	rows, err := s.List(ctx, Query{Type: gameType, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return &rows[0], nil
}

// List returns stored rows newest first
func (s *SQLiteDB) List(ctx context.Context, query Query) ([]GameRow, error) {
	where, args := query.where()

	stmt := "SELECT " + selectColumns + " FROM games " + where + " ORDER BY id DESC"
	if query.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &ReadError{Op: "list", Err: err}
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var row GameRow
		var createdAt, runID, engineVersion sql.NullString

		err := rows.Scan(
			&row.ID, &createdAt, &row.Type, &row.ParamsJSON, &row.Trials, &row.Hits,
			&row.HitRate, &row.EV, &runID, &engineVersion,
		)
		if err != nil {
			return nil, &ReadError{Op: "scan", Err: err}
		}

		// Handle nullable fields
		if createdAt.Valid {
			row.CreatedAt = parseTimestamp(createdAt.String)
		}
		row.RunID = runID.String
		row.EngineVersion = engineVersion.String

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &ReadError{Op: "list", Err: err}
	}
	return out, nil
}

// Count returns the number of stored rows, optionally for one game type
func (s *SQLiteDB) Count(ctx context.Context, gameType string) (int, error) {
	where, args := Query{Type: gameType}.where()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games "+where, args...).Scan(&n); err != nil {
		return 0, &ReadError{Op: "count", Err: err}
	}
	return n, nil
}

func (q Query) where() (string, []any) {
	var clauses []string
	var args []any

	if q.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, q.Type)
	}
	if q.MinTrials > 0 {
		clauses = append(clauses, "trials >= ?")
		args = append(args, q.MinTrials)
	}
	if q.MaxTrials > 0 {
		clauses = append(clauses, "trials <= ?")
		args = append(args, q.MaxTrials)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
