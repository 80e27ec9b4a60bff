package runstate

import (
	"os"
	"path/filepath"
	"testing"

	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
)

func newCheckpoint(t *testing.T) *Checkpoint {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "runstate.json"), logging.NewNop())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cp := newCheckpoint(t)
	items := []ratings.Item{
		{Title: "Dune", SourceURL: "https://x/film/1", Rating: "5", Kind: ratings.KindWork},
		{Title: "Show S01E01", SourceURL: "https://x/film/2/3", Kind: ratings.KindEpisode},
	}
	if err := cp.Save(7, items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	state, err := cp.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state == nil {
		t.Fatal("expected state, got nil")
	}
	if state.LastPage != 7 {
		t.Fatalf("LastPage = %d", state.LastPage)
	}
	if len(state.Items) != 2 || state.Items[0].Title != "Dune" {
		t.Fatalf("items mismatch: %+v", state.Items)
	}
	if state.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	cp := newCheckpoint(t)
	state, err := cp.Load()
	if err != nil {
		t.Fatalf("missing checkpoint is not an error, got %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil state, got %+v", state)
	}
}

func TestLoadCorruptReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runstate.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	cp := New(path, logging.NewNop())
	if _, err := cp.Load(); err == nil {
		t.Fatal("corrupt checkpoint should surface an error")
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	cp := newCheckpoint(t)
	if err := cp.Save(1, []ratings.Item{{Title: "A", SourceURL: "u"}}); err != nil {
		t.Fatal(err)
	}
	if err := cp.Save(2, []ratings.Item{{Title: "A", SourceURL: "u"}, {Title: "B", SourceURL: "v"}}); err != nil {
		t.Fatal(err)
	}
	state, err := cp.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state.LastPage != 2 || len(state.Items) != 2 {
		t.Fatalf("expected latest snapshot, got %+v", state)
	}
}

func TestClear(t *testing.T) {
	cp := newCheckpoint(t)
	if err := cp.Save(1, nil); err != nil {
		t.Fatal(err)
	}
	if err := cp.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	state, err := cp.Load()
	if err != nil || state != nil {
		t.Fatalf("expected cleared checkpoint, got state=%v err=%v", state, err)
	}
	// Clearing twice is fine.
	if err := cp.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
