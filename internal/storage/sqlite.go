// Package storage provides SQLite-based persistence for accounts, run
// history and best scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrExists is returned when a unique key is already taken.
	ErrExists = errors.New("storage: already exists")
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// User is a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}

// Run is one finished game.
type Run struct {
	ID        int64
	Player    string
	Score     int
	Won       bool
	CreatedAt time.Time
}

// RunStats contains aggregated statistics over finished runs.
type RunStats struct {
	Player     string
	Runs       int
	Wins       int
	Best       int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash BLOB NOT NULL,
			verified INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateUser inserts a new account. Returns ErrExists if the email is taken.
func (s *Store) CreateUser(ctx context.Context, email string, hash []byte) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?, ?)",
		email, hash,
	)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("storage: user %s: %w", email, ErrExists)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// User looks up an account by email.
func (s *Store) User(ctx context.Context, email string) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, verified, created_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Verified, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("storage: user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// SetVerified marks an account as verified or not.
func (s *Store) SetVerified(ctx context.Context, email string, verified bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET verified = ? WHERE email = ?",
		verified, email,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: user %s: %w", email, ErrNotFound)
	}
	return nil
}

// Users lists every account ordered by email.
func (s *Store) Users(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, password_hash, verified, created_at
		 FROM users ORDER BY email`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt any
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Verified, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		u.CreatedAt = parseTime(createdAt)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return users, nil
}

// SaveRun records a finished run for the given player.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(ctx context.Context, player string, score int, won bool) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (player, score, won) VALUES (?, ?, ?)",
		player, score, won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the top N runs, for one player or for everyone when
// player is empty. Results are ordered by score descending, newest first
// among equal scores.
func (s *Store) TopRuns(ctx context.Context, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, won, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY score DESC, id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates the runs of one player, or of everyone when player is
// empty.
func (s *Store) Stats(ctx context.Context, player string) (RunStats, error) {
	stats := RunStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE ? = '' OR player = ?`,
		player, player,
	).Scan(&stats.Runs, &stats.Wins, &stats.Best, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRuns deletes the run history of one player, or all of it when player
// is empty.
func (s *Store) ClearRuns(ctx context.Context, player string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE ? = '' OR player = ?", player, player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Get reads a value from the key/value table.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("storage: key %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read key: %w", err)
	}
	return value, nil
}

// Set writes a value to the key/value table, replacing any previous one.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write key: %w", err)
	}
	return nil
}

// Delete removes a key. Removing a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete key: %w", err)
	}
	return nil
}

// BestKey returns the key/value key holding a player's best score.
func BestKey(player string) string {
	return "best:" + player
}

// Best returns the best-score view of the key/value table for a player.
func (s *Store) Best(player string) *SQLBest {
	return &SQLBest{store: s, key: BestKey(player)}
}

// ResetBest forgets a player's best score.
func (s *Store) ResetBest(ctx context.Context, player string) error {
	return s.Delete(ctx, BestKey(player))
}

// SQLBest stores one player's best score in the key/value table.
type SQLBest struct {
	store *Store
	key   string
}

// BestScore returns the stored best, or 0 when none has been saved.
func (b *SQLBest) BestScore(ctx context.Context) (int, error) {
	v, err := b.store.Get(ctx, b.key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("storage: bad best score %q: %w", v, err)
	}
	return n, nil
}

// SetBestScore overwrites the stored best.
func (b *SQLBest) SetBestScore(ctx context.Context, score int) error {
	return b.store.Set(ctx, b.key, strconv.Itoa(score))
}
