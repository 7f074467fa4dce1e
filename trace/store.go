package trace

import (
	"database/sql"
	"fmt"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	state_id INTEGER NOT NULL,
	kind     TEXT NOT NULL,
	addr     TEXT NOT NULL,
	detail   BLOB,
	at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS events_kind ON events(kind);
`

// Store is a SQLite-backed event recorder. Event detail payloads are
// msgpack-encoded blobs.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) a trace store at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record persists one event.
func (s *Store) Record(ev Event) error {
	var detail []byte
	if len(ev.Detail) > 0 {
		var err error
		detail, err = msgpack.Marshal(ev.Detail)
		if err != nil {
			return fmt.Errorf("trace: encode detail: %w", err)
		}
	}
	stateID, err := safecast.Conv[int64](ev.StateID)
	if err != nil {
		return fmt.Errorf("trace: state id: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT INTO events (state_id, kind, addr, detail) VALUES (?, ?, ?, ?)",
		stateID, ev.Kind, ev.Addr, detail)
	if err != nil {
		return fmt.Errorf("trace: insert event: %w", err)
	}
	return nil
}

// Events returns all recorded events of the given kind, oldest first.
// An empty kind returns everything.
func (s *Store) Events(kind string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT state_id, kind, addr, detail FROM events ORDER BY id"
	args := []any{}
	if kind != "" {
		query = "SELECT state_id, kind, addr, detail FROM events WHERE kind = ? ORDER BY id"
		args = append(args, kind)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("trace: query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ev      Event
			stateID int64
			detail  []byte
		)
		if err := rows.Scan(&stateID, &ev.Kind, &ev.Addr, &detail); err != nil {
			return nil, fmt.Errorf("trace: scan event: %w", err)
		}
		ev.StateID, err = safecast.Conv[uint64](stateID)
		if err != nil {
			return nil, fmt.Errorf("trace: state id: %w", err)
		}
		if len(detail) > 0 {
			if err := msgpack.Unmarshal(detail, &ev.Detail); err != nil {
				return nil, fmt.Errorf("trace: decode detail: %w", err)
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
