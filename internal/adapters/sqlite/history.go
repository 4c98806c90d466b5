package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = "1"

	// DefaultRetention is how many runs are kept per workspace
	DefaultRetention = 200
)

var (
	// ErrNotOpen is returned when the store is used before Open
	ErrNotOpen = errors.New("history store is not open")
	// ErrSchemaVersion is returned by Open for a database of another schema
	ErrSchemaVersion = errors.New("history database has an unsupported schema version")
	// ErrWorkspaceMismatch is returned by Open for a database kept for another workspace
	ErrWorkspaceMismatch = errors.New("history database belongs to another workspace")
)

// History implements ports.HistoryStore using SQLite
type History struct {
	db            *sql.DB
	workspaceRoot string
	dbPath        string
	retention     int
}

// Ensure History implements HistoryStore
var _ ports.HistoryStore = (*History)(nil)

// Option configures the History store
type Option func(*History)

// WithDatabasePath stores history at path instead of the XDG data directory
func WithDatabasePath(path string) Option {
	return func(h *History) {
		h.dbPath = path
	}
}

// WithRetention sets how many runs are kept. Zero or less keeps everything.
func WithRetention(n int) Option {
	return func(h *History) {
		h.retention = n
	}
}

// NewHistory creates a new SQLite history store
func NewHistory(opts ...Option) *History {
	h := &History{retention: DefaultRetention}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Open initializes the store for the given workspace root
func (h *History) Open(workspaceRoot string) error {
	h.workspaceRoot = workspaceRoot
	if h.dbPath == "" {
		h.dbPath = DatabasePath(workspaceRoot)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(h.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", h.dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			pipeline TEXT NOT NULL,
			candidate TEXT NOT NULL,
			result TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_pipeline ON history(pipeline, candidate);
		CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at);
	`)
	if err != nil {
		db.Close()
		h.db = nil
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := h.checkMeta(); err != nil {
		db.Close()
		h.db = nil
		return err
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		err := h.db.Close()
		h.db = nil
		return err
	}
	return nil
}

// Path returns the database file in use
func (h *History) Path() string {
	return h.dbPath
}

// DatabasePath returns the default database file for a workspace
func DatabasePath(workspaceRoot string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "nuttxconf", hashWorkspacePath(workspaceRoot)+".db")
}

// hashWorkspacePath returns a short hash of the workspace path
func hashWorkspacePath(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// checkMeta stamps a new database with the schema version and workspace
// root, and rejects an existing one stamped with different values
func (h *History) checkMeta() error {
	want := map[string]string{
		"schema_version": schemaVersion,
		"workspace_root": h.workspaceRoot,
	}
	for _, key := range []string{"schema_version", "workspace_root"} {
		if _, err := h.db.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES (?, ?)`, key, want[key]); err != nil {
			return fmt.Errorf("failed to update metadata: %w", err)
		}

		var got string
		if err := h.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&got); err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}
		if got == want[key] {
			continue
		}
		if key == "schema_version" {
			return fmt.Errorf("%w: %s, want %s", ErrSchemaVersion, got, schemaVersion)
		}
		return fmt.Errorf("%w: %s", ErrWorkspaceMismatch, got)
	}
	return nil
}

// Record stores a finished run and prunes entries beyond the retention limit.
// entry.ID is set to the new row id.
func (h *History) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	if h.db == nil {
		return ErrNotOpen
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	tx, err := h.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := tx.Insert(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	if h.retention > 0 {
		if err := tx.Prune(ctx, h.retention); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if h.db == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, run_id, pipeline, candidate, result, path, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e         domain.HistoryEntry
			pipeline  string
			candidate string
			created   int64
		)
		if err := rows.Scan(&e.ID, &e.RunID, &pipeline, &candidate, &e.Result, &e.Path, &created); err != nil {
			return nil, err
		}
		p, err := domain.ParsePipeline(pipeline)
		if err != nil {
			return nil, err
		}
		e.Pipeline = p
		e.Candidate = domain.Candidate(candidate)
		e.CreatedAt = time.UnixMilli(created)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// LastUsed returns the latest unix millisecond timestamp of each candidate
// chosen in pipeline
func (h *History) LastUsed(ctx context.Context, pipeline domain.Pipeline) (map[domain.Candidate]int64, error) {
	if h.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT candidate, MAX(created_at)
		FROM history
		WHERE pipeline = ?
		GROUP BY candidate
	`, pipeline.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := make(map[domain.Candidate]int64)
	for rows.Next() {
		var (
			candidate string
			at        int64
		)
		if err := rows.Scan(&candidate, &at); err != nil {
			return nil, err
		}
		used[domain.Candidate(candidate)] = at
	}

	return used, rows.Err()
}
