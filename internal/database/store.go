// Package database provides the journal storage layer for scrolltoolbar.
//
// It implements the Store interface using SQLite with WAL mode. Every
// toolbar run opens a session; every delegate hook and every exchange
// or action dispatch becomes one event row within it.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	// ErrSessionNotFound is returned by FindSession when nothing matches.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAmbiguousSession is returned by FindSession when a prefix
	// matches more than one session.
	ErrAmbiguousSession = errors.New("session prefix is ambiguous")
)

// Store defines the interface for journal persistence.
type Store interface {
	// InsertSession persists a new session record.
	InsertSession(session *Session) error
	// InsertEvent persists one event within an existing session.
	InsertEvent(event *Event) error
	// BatchInsertEvents inserts multiple events in a single transaction.
	BatchInsertEvents(events []*Event) error

	// QuerySessions returns the most recent sessions, newest first.
	QuerySessions(limit int) ([]*Session, error)
	// FindSession returns the session whose ID equals idOrPrefix, or
	// the only session whose ID starts with it.
	FindSession(idOrPrefix string) (*Session, error)
	// QueryEvents returns events matching the filter, ordered by session and seq.
	QueryEvents(filter EventFilter) ([]*Event, error)
	// CountEvents returns the number of events per kind for a session.
	CountEvents(sessionID string) (map[string]int, error)

	// Close gracefully shuts down the database connection.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// Session is one run of a toolbar.
type Session struct {
	SessionID string  `json:"session_id"`
	StartedAt int64   `json:"started_at"`
	ItemCount int     `json:"item_count"`
	Style     string  `json:"style"`
	ItemsJSON *string `json:"items_json,omitempty"`
}

// Event is one journaled toolbar notification.
type Event struct {
	EventID       string  `json:"event_id"`
	SessionID     string  `json:"session_id"`
	Seq           int     `json:"seq"`
	Timestamp     int64   `json:"timestamp"`
	Kind          string  `json:"kind"`
	ItemID        *string `json:"item_id,omitempty"`
	ItemIndex     *int    `json:"item_index,omitempty"`
	SelectedIndex int     `json:"selected_index"`
	Payload       *string `json:"payload,omitempty"`
}

// EventFilter defines query parameters for event listing.
type EventFilter struct {
	SessionID *string `json:"session_id,omitempty"`
	Kind      *string `json:"kind,omitempty"`
	Since     *int64  `json:"since,omitempty"` // Unix nanoseconds
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertSession *sql.Stmt
	stmtInsertEvent   *sql.Stmt
}

// NewDBService opens the journal at path, initializes the schema and
// prepares frequently-used statements.
//
// Use ":memory:" for in-memory databases (useful for testing).
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// SQLite only supports one writer at a time; a single connection
	// also keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertSession, err = s.db.Prepare(`
		INSERT INTO sessions (session_id, started_at, item_count, style, items_json)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertSession: %w", err)
	}

	s.stmtInsertEvent, err = s.db.Prepare(`
		INSERT INTO events (event_id, session_id, seq, timestamp, kind,
			item_id, item_index, selected_index, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertEvent: %w", err)
	}

	return nil
}

// InsertSession persists a new session record.
func (s *DBService) InsertSession(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.stmtInsertSession.Exec(
		session.SessionID, session.StartedAt, session.ItemCount,
		session.Style, session.ItemsJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", session.SessionID, err)
	}
	return nil
}

// InsertEvent persists one event.
func (s *DBService) InsertEvent(event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stmtInsertEvent.Exec(eventArgs(event)...); err != nil {
		return fmt.Errorf("inserting event %s: %w", event.EventID, err)
	}
	return nil
}

// BatchInsertEvents inserts multiple events within a single transaction.
func (s *DBService) BatchInsertEvents(events []*Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch event transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt := tx.Stmt(s.stmtInsertEvent)
	for _, event := range events {
		if _, err := stmt.Exec(eventArgs(event)...); err != nil {
			return fmt.Errorf("batch inserting event %s: %w", event.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch event transaction: %w", err)
	}
	return nil
}

func eventArgs(e *Event) []any {
	return []any{
		e.EventID, e.SessionID, e.Seq, e.Timestamp, e.Kind,
		e.ItemID, e.ItemIndex, e.SelectedIndex, e.Payload,
	}
}

// QuerySessions returns the most recent sessions, newest first.
func (s *DBService) QuerySessions(limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT session_id, started_at, item_count, style, items_json
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		if err := rows.Scan(&sess.SessionID, &sess.StartedAt, &sess.ItemCount,
			&sess.Style, &sess.ItemsJSON); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// FindSession looks a session up by full ID or unique prefix across the
// whole journal. An exact match wins over longer IDs sharing the prefix.
func (s *DBService) FindSession(idOrPrefix string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT session_id, started_at, item_count, style, items_json
		FROM sessions
		WHERE substr(session_id, 1, length(?)) = ?
		ORDER BY session_id = ? DESC, started_at DESC
		LIMIT 2
	`, idOrPrefix, idOrPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("finding session %q: %w", idOrPrefix, err)
	}
	defer rows.Close()

	var found []*Session
	for rows.Next() {
		sess := &Session{}
		if err := rows.Scan(&sess.SessionID, &sess.StartedAt, &sess.ItemCount,
			&sess.Style, &sess.ItemsJSON); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		found = append(found, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("finding session %q: %w", idOrPrefix, err)
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%q: %w", idOrPrefix, ErrSessionNotFound)
	case found[0].SessionID == idOrPrefix, len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%q: %w", idOrPrefix, ErrAmbiguousSession)
	}
}

// QueryEvents returns events matching the filter.
func (s *DBService) QueryEvents(filter EventFilter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if filter.SessionID != nil {
		where = append(where, "session_id = ?")
		args = append(args, *filter.SessionID)
	}
	if filter.Kind != nil {
		where = append(where, "kind = ?")
		args = append(args, *filter.Kind)
	}
	if filter.Since != nil {
		where = append(where, "timestamp >= ?")
		args = append(args, *filter.Since)
	}

	query := `SELECT event_id, session_id, seq, timestamp, kind,
		item_id, item_index, selected_index, payload FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp, session_id, seq"

	limit := filter.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountEvents returns the number of events per kind for a session.
func (s *DBService) CountEvents(sessionID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("counting events for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning event count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// Close gracefully shuts down the database, closing prepared statements.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtInsertSession, s.stmtInsertEvent} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.Seq, &e.Timestamp, &e.Kind,
			&e.ItemID, &e.ItemIndex, &e.SelectedIndex, &e.Payload); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
