// Package history persists submitted terminal lines. Stores keep entries
// most-recent-first, bounded at a fixed limit, with exact duplicates moved to
// the front rather than repeated — the policy the interpreter's history
// command displays but does not implement itself.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.Mutex
	limit int

	// fallback takes over when the database cannot be opened, so the
	// terminal keeps a working in-session history either way.
	fallback *MemoryStore
}

// NewSQLiteStore creates (or opens) the history database. An empty path
// selects ~/.retroshell/history.db.
func NewSQLiteStore(path string, limit int) *SQLiteStore {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if path == "" {
		path = filepath.Join(userHome(), ".retroshell", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	store := &SQLiteStore{limit: limit}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		store.fallback = NewMemoryStore(limit)
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
		store.fallback = NewMemoryStore(limit)
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT,
		timestamp TEXT,
		input TEXT,
		kind TEXT,
		exit_code INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Record inserts an entry, moving an exact duplicate input to the front and
// trimming the store to its limit.
func (s *SQLiteStore) Record(rec domain.HistoryRecord) error {
	if s.fallback != nil {
		return s.fallback.Record(rec)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM entries WHERE input = ?`, rec.Input); err != nil {
		return err
	}
	if _, err := s.db.Exec(`INSERT INTO entries
		(record_id, timestamp, input, kind, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.Format(time.RFC3339),
		rec.Input,
		string(rec.Kind),
		rec.ExitCode,
		rec.DurationMS,
	); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM entries WHERE id NOT IN
		(SELECT id FROM entries ORDER BY id DESC LIMIT ?)`, s.limit)
	return err
}

// Inputs returns raw inputs, most recent first.
func (s *SQLiteStore) Inputs() ([]string, error) {
	if s.fallback != nil {
		return s.fallback.Inputs()
	}

	rows, err := s.db.Query(`SELECT input FROM entries ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// Records returns full entries, most recent first.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	if s.fallback != nil {
		return s.fallback.Records(limit, search)
	}

	builder := strings.Builder{}
	builder.WriteString(`SELECT record_id, timestamp, input, kind, exit_code, duration_ms FROM entries`)
	var args []interface{}
	if search != "" {
		builder.WriteString(` WHERE input LIKE ?`)
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(` ORDER BY id DESC`)
	if limit > 0 {
		builder.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, kind string
		if err := rows.Scan(&rec.ID, &ts, &rec.Input, &kind, &rec.ExitCode, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Kind = domain.CommandKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes every entry.
func (s *SQLiteStore) Clear() error {
	if s.fallback != nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec(`DELETE FROM entries`)
	return err
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
