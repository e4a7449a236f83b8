package state

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/awesomeaudio/internal/lastfm"
)

// setupTestManager opens an in-memory database with the schema initialized.
func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGetPosition_Empty(t *testing.T) {
	m := setupTestManager(t)

	pos, err := m.GetPosition("file:///a.mp3")
	if err != nil {
		t.Fatalf("GetPosition failed: %v", err)
	}
	if pos != nil {
		t.Errorf("expected nil position on empty db, got %+v", pos)
	}
}

func TestSaveAndGetPosition(t *testing.T) {
	m := setupTestManager(t)
	now := time.Unix(1_700_000_000, 0)

	if err := savePosition(m.db, "file:///a.mp3", 83*time.Second+250*time.Millisecond, now); err != nil {
		t.Fatalf("savePosition failed: %v", err)
	}
	if err := savePosition(m.db, "file:///a.mp3", 90*time.Second, now.Add(time.Minute)); err != nil {
		t.Fatalf("savePosition overwrite failed: %v", err)
	}

	pos, err := getPosition(m.db, "file:///a.mp3")
	if err != nil {
		t.Fatalf("getPosition failed: %v", err)
	}
	if pos == nil {
		t.Fatal("expected saved position")
	}
	if pos.Offset != 90*time.Second {
		t.Errorf("Offset = %v, want 1m30s", pos.Offset)
	}
	if !pos.UpdatedAt.Equal(now.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v, want %v", pos.UpdatedAt, now.Add(time.Minute))
	}
}

func TestSavePosition_PendingVisibleAndFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}

	m.SavePosition("file:///a.mp3", 12*time.Second)

	pos, err := m.GetPosition("file:///a.mp3")
	if err != nil || pos == nil || pos.Offset != 12*time.Second {
		t.Fatalf("GetPosition = %+v, %v; want pending 12s", pos, err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()
	pos, err = m.GetPosition("file:///a.mp3")
	if err != nil || pos == nil || pos.Offset != 12*time.Second {
		t.Errorf("after reopen GetPosition = %+v, %v; want 12s", pos, err)
	}
}

func TestFlushPositions_WritesAllInOneTransaction(t *testing.T) {
	m := setupTestManager(t)
	now := time.Now()

	pending := map[string]time.Duration{
		"file:///a.mp3": time.Second,
		"file:///b.mp3": 2 * time.Second,
	}
	if err := flushPositions(m.db, pending, now); err != nil {
		t.Fatalf("flushPositions failed: %v", err)
	}

	var count int
	if err := m.db.QueryRow(`SELECT COUNT(*) FROM positions`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	m := setupTestManager(t)
	testErr := errors.New("test error")

	err := withTx(m.db, func(tx *sql.Tx) error {
		if err := savePosition(tx, "file:///a.mp3", time.Second, time.Now()); err != nil {
			return err
		}
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Fatalf("withTx error = %v, want %v", err, testErr)
	}

	pos, err := m.GetPosition("file:///a.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if pos != nil {
		t.Errorf("position = %+v, want rolled back", pos)
	}
}

func TestSavePosition_SteadySavesReachDatabase(t *testing.T) {
	m := setupTestManager(t)
	uri := "file:///a.mp3"

	// Saves arrive faster than the debounce, as progress ticks do.
	deadline := time.Now().Add(3 * saveDebounce)
	for pos := time.Second; time.Now().Before(deadline); pos += time.Second {
		m.SavePosition(uri, pos)
		time.Sleep(saveDebounce / 5)
	}

	pos, err := getPosition(m.db, uri)
	if err != nil {
		t.Fatal(err)
	}
	if pos == nil {
		t.Fatal("no row written during continuous saves")
	}
}

func TestClearPosition_WinsOverPendingSave(t *testing.T) {
	m := setupTestManager(t)
	uri := "file:///a.mp3"

	m.SavePosition(uri, 42*time.Second)
	if err := m.ClearPosition(uri); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * saveDebounce)

	pos, err := m.GetPosition(uri)
	if err != nil {
		t.Fatal(err)
	}
	if pos != nil {
		t.Errorf("position = %+v after clear, want nil", pos)
	}
}

func TestClearPosition(t *testing.T) {
	m := setupTestManager(t)
	if err := savePosition(m.db, "file:///a.mp3", time.Second, time.Now()); err != nil {
		t.Fatal(err)
	}
	m.SavePosition("file:///a.mp3", 2*time.Second)

	if err := m.ClearPosition("file:///a.mp3"); err != nil {
		t.Fatalf("ClearPosition failed: %v", err)
	}

	pos, err := m.GetPosition("file:///a.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if pos != nil {
		t.Errorf("expected no position after clear, got %+v", pos)
	}
}

func TestVolume_DefaultAndSave(t *testing.T) {
	m := setupTestManager(t)

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v.Volume != 1.0 || v.Muted {
		t.Errorf("default volume = %+v, want 1.0 unmuted", v)
	}

	if err := m.SaveVolume(0.4, true); err != nil {
		t.Fatalf("SaveVolume failed: %v", err)
	}
	v, err = m.GetVolume()
	if err != nil {
		t.Fatal(err)
	}
	if v.Volume != 0.4 || !v.Muted {
		t.Errorf("volume = %+v, want 0.4 muted", v)
	}
}

func TestPendingScrobbles_RoundTrip(t *testing.T) {
	m := setupTestManager(t)
	track := lastfm.Track{
		Artist:    "Nina Simone",
		Title:     "Sinnerman",
		Album:     "Pastel Blues",
		Duration:  10*time.Minute + 20*time.Second,
		Timestamp: time.Unix(1_700_000_000, 0),
	}

	if err := m.AddPendingScrobble(PendingFromTrack(track)); err != nil {
		t.Fatalf("AddPendingScrobble failed: %v", err)
	}

	pending, err := m.GetPendingScrobbles()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	got := pending[0].LastfmTrack()
	if got.Artist != track.Artist || got.Title != track.Title || got.Album != track.Album ||
		got.Duration != track.Duration || !got.Timestamp.Equal(track.Timestamp) {
		t.Errorf("LastfmTrack() = %+v, want %+v", got, track)
	}
}

type fakeScrobbler struct {
	fail map[string]bool
	sent []string
}

func (f *fakeScrobbler) Scrobble(track lastfm.Track) error {
	if f.fail[track.Title] {
		return errors.New("service unavailable")
	}
	f.sent = append(f.sent, track.Title)
	return nil
}

func TestRetryPendingScrobbles(t *testing.T) {
	m := setupTestManager(t)
	for _, title := range []string{"one", "two", "three"} {
		s := PendingScrobble{Artist: "A", Track: title, DurationSecs: 200, Timestamp: time.Now()}
		if err := m.AddPendingScrobble(s); err != nil {
			t.Fatal(err)
		}
	}
	sc := &fakeScrobbler{fail: map[string]bool{"two": true}}

	sent, err := m.RetryPendingScrobbles(sc)
	if err != nil {
		t.Fatalf("RetryPendingScrobbles failed: %v", err)
	}

	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	pending, err := m.GetPendingScrobbles()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Track != "two" {
		t.Fatalf("pending = %+v, want only two", pending)
	}
	if pending[0].Attempts != 1 || pending[0].LastError != "service unavailable" {
		t.Errorf("attempt = %d %q", pending[0].Attempts, pending[0].LastError)
	}
}

func TestRetryPendingScrobbles_DropsAfterMaxAttempts(t *testing.T) {
	m := setupTestManager(t)
	if err := m.AddPendingScrobble(PendingScrobble{Artist: "A", Track: "x", Timestamp: time.Now()}); err != nil {
		t.Fatal(err)
	}
	sc := &fakeScrobbler{fail: map[string]bool{"x": true}}

	for range maxScrobbleAttempts {
		if _, err := m.RetryPendingScrobbles(sc); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := m.GetPendingScrobbles()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %d after %d failures, want 0", len(pending), maxScrobbleAttempts)
	}
}

func TestDeleteOldPendingScrobbles(t *testing.T) {
	m := setupTestManager(t)
	if err := m.AddPendingScrobble(PendingScrobble{Artist: "A", Track: "x", Timestamp: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.db.Exec(`UPDATE lastfm_pending_scrobbles SET created_at = ?`, time.Now().Add(-30*24*time.Hour).Unix()); err != nil {
		t.Fatal(err)
	}

	if err := m.DeleteOldPendingScrobbles(14 * 24 * time.Hour); err != nil {
		t.Fatal(err)
	}

	pending, err := m.GetPendingScrobbles()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}
