// Package session keeps the UI state cells (mobile menu and projects
// disclosure) of each page view. A page view starts when the page is
// rendered and lives until it goes idle.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DixDev1621/portfolio/internal/ui"
)

// State is everything a page view remembers between interactions.
type State struct {
	Navigation ui.NavigationState
	Disclosure ui.DisclosureState
}

// Key identifies one page view: the browser session cookie plus the id
// minted when the page was rendered. Two tabs on one cookie have two keys.
type Key struct {
	Session string
	Page    string
}

// Store is a SQLite-backed state table keyed by page view.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS ui_state (
	session_id TEXT NOT NULL,
	page_id TEXT NOT NULL,
	menu_open INTEGER NOT NULL DEFAULT 0,
	show_extra INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL, -- unix nanoseconds
	PRIMARY KEY (session_id, page_id)
)`

// Open opens (or creates) the store at dsn. ":memory:" keeps state in
// process memory only.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	memory := strings.HasPrefix(dsn, ":memory:")
	if !memory && !strings.Contains(dsn, "_txlock=") {
		// take the write lock at BEGIN so Update never has to upgrade
		if strings.Contains(dsn, "?") {
			dsn += "&_txlock=immediate"
		} else {
			dsn += "?_txlock=immediate"
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	if memory {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ui_state table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// NewID returns a fresh session or page id.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func load(ctx context.Context, q querier, key Key) (State, error) {
	var st State
	err := q.QueryRowContext(ctx,
		`SELECT menu_open, show_extra FROM ui_state WHERE session_id = ? AND page_id = ?`,
		key.Session, key.Page,
	).Scan(&st.Navigation.MenuOpen, &st.Disclosure.ShowExtra)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("loading page state %s: %w", key.Page, err)
	}
	return st, nil
}

func save(ctx context.Context, q querier, key Key, st State) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO ui_state (session_id, page_id, menu_open, show_extra, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, page_id) DO UPDATE SET
			menu_open = excluded.menu_open,
			show_extra = excluded.show_extra,
			updated_at = excluded.updated_at
	`, key.Session, key.Page, st.Navigation.MenuOpen, st.Disclosure.ShowExtra, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving page state %s: %w", key.Page, err)
	}
	return nil
}

// Load returns the stored state for key, or the page-load defaults when
// nothing is stored.
func (s *Store) Load(ctx context.Context, key Key) (State, error) {
	return load(ctx, s.db, key)
}

// Reset stores the page-load state for key.
func (s *Store) Reset(ctx context.Context, key Key) error {
	return save(ctx, s.db, key, State{})
}

// Update runs fn on the current state of key inside one transaction and
// stores the result when fn reports a change. Concurrent updates of the same
// key are serialised, so a toggle always flips the value the previous
// toggle left.
func (s *Store) Update(ctx context.Context, key Key, fn func(*State) bool) (State, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return State{}, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	st, err := load(ctx, tx, key)
	if err != nil {
		return State{}, err
	}
	if !fn(&st) {
		return st, nil
	}
	if err := save(ctx, tx, key, st); err != nil {
		return State{}, err
	}
	if err := tx.Commit(); err != nil {
		return State{}, fmt.Errorf("committing page state %s: %w", key.Page, err)
	}
	return st, nil
}

// Cleanup drops page views idle for longer than ttl and returns how many.
func (s *Store) Cleanup(ctx context.Context, ttl time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ui_state WHERE updated_at < ?`, time.Now().Add(-ttl).UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cleaning up page state: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored page views.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ui_state`).Scan(&n)
	return n, err
}

// RunCleanup sweeps idle page views every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Cleanup(ctx, ttl)
			if err != nil {
				log.Printf("Error cleaning up page state: %v", err)
				continue
			}
			if n == 0 {
				continue
			}
			active, err := s.Count(ctx)
			if err != nil {
				log.Printf("Error counting page state: %v", err)
				continue
			}
			log.Printf("Session cleanup: removed %d idle page views, %d active", n, active)
		}
	}
}
