package state

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "awesomeaudio"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager persists resume positions, volume and queued scrobbles.
type Manager struct {
	db        *sql.DB
	flushMu   sync.Mutex // held while pending saves are written
	saveMu    sync.Mutex // guards saveTimer and pending
	saveTimer *time.Timer
	pending   map[string]time.Duration
}

// Open opens the database in the xdg data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path, creating it when missing.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, pending: make(map[string]time.Duration)}, nil
}

// Close flushes pending position saves and closes the database.
func (m *Manager) Close() error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	pending := m.pending
	m.pending = make(map[string]time.Duration)
	m.saveMu.Unlock()

	flushErr := flushPositions(m.db, pending, time.Now())
	return errors.Join(flushErr, m.db.Close())
}

// DB exposes the underlying database.
func (m *Manager) DB() *sql.DB {
	return m.db
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
