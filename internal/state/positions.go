package state

import (
	"database/sql"
	"errors"
	"time"
)

// Position is a saved resume point for a media URI.
type Position struct {
	URI       string
	Offset    time.Duration
	UpdatedAt time.Time
}

// SavePosition records the resume point for uri. The first save after a
// flush arms a timer; later saves only update the pending value, so a steady
// stream of saves still reaches the database every saveDebounce. Close
// flushes whatever is still pending.
func (m *Manager) SavePosition(uri string, pos time.Duration) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[uri] = pos
	if m.saveTimer == nil {
		m.saveTimer = time.AfterFunc(saveDebounce, m.flushPending)
	}
}

// flushPending writes the pending saves. flushMu keeps ClearPosition from
// interleaving with a write already in flight.
func (m *Manager) flushPending() {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string]time.Duration)
	m.saveTimer = nil
	m.saveMu.Unlock()

	_ = flushPositions(m.db, pending, time.Now())
}

// GetPosition returns the saved resume point for uri, or nil when none exists.
// A pending save wins over the stored row.
func (m *Manager) GetPosition(uri string) (*Position, error) {
	m.saveMu.Lock()
	pos, ok := m.pending[uri]
	m.saveMu.Unlock()
	if ok {
		return &Position{URI: uri, Offset: pos, UpdatedAt: time.Now()}, nil
	}
	return getPosition(m.db, uri)
}

// ClearPosition forgets the resume point for uri, e.g. after it finished.
func (m *Manager) ClearPosition(uri string) error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.saveMu.Lock()
	delete(m.pending, uri)
	m.saveMu.Unlock()
	return deletePosition(m.db, uri)
}

// flushPositions writes all pending resume points in one transaction.
func flushPositions(conn *sql.DB, pending map[string]time.Duration, now time.Time) error {
	if len(pending) == 0 {
		return nil
	}
	return withTx(conn, func(tx *sql.Tx) error {
		for uri, pos := range pending {
			if err := savePosition(tx, uri, pos, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func savePosition(ex execer, uri string, pos time.Duration, now time.Time) error {
	_, err := ex.Exec(`
		INSERT INTO positions (uri, position_ms, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			position_ms = excluded.position_ms,
			updated_at = excluded.updated_at
	`, uri, pos.Milliseconds(), now.Unix())
	return err
}

func getPosition(db *sql.DB, uri string) (*Position, error) {
	var ms, updatedAt int64
	err := db.QueryRow(`
		SELECT position_ms, updated_at FROM positions WHERE uri = ?
	`, uri).Scan(&ms, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil position means nothing saved, not an error
	}
	if err != nil {
		return nil, err
	}
	return &Position{
		URI:       uri,
		Offset:    time.Duration(ms) * time.Millisecond,
		UpdatedAt: time.Unix(updatedAt, 0),
	}, nil
}

func deletePosition(db *sql.DB, uri string) error {
	_, err := db.Exec(`DELETE FROM positions WHERE uri = ?`, uri)
	return err
}
