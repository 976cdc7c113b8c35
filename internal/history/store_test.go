package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "logs", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndReadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	run := Run{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Moved:      1,
		Skipped:    1,
	}
	actions := []ActionRecord{
		{
			Source:      "To Playlist/road trip/song.mp3",
			Destination: "Eagles/Eagles/Take It Easy.mp3",
			Playlist:    "road trip",
			Status:      "moved",
			Artist:      "Eagles",
			Album:       "Eagles",
			Title:       "Take It Easy",
		},
		{
			Source: "other.mp3",
			Status: "skipped_exists",
			Reason: "destination already exists",
		},
	}

	id, err := store.RecordRun(ctx, run, actions)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("empty run id")
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}
	got := runs[0]
	if got.ID != id || got.Moved != 1 || got.Skipped != 1 || got.Errored != 0 {
		t.Errorf("run = %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", got.StartedAt, started)
	}

	stored, err := store.RunActions(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d actions", len(stored))
	}
	if stored[0].Playlist != "road trip" || stored[0].Status != "moved" {
		t.Errorf("first action = %+v", stored[0])
	}
	if stored[1].Destination != "" || stored[1].Reason == "" {
		t.Errorf("second action = %+v", stored[1])
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if _, err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Error("runs not newest first")
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.RecordRun(context.Background(), Run{StartedAt: time.Now(), FinishedAt: time.Now()}, nil); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	runs, err := second.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs after reopen", len(runs))
	}
}

func TestRunActionsUnknownRun(t *testing.T) {
	store := openStore(t)
	actions, err := store.RunActions(context.Background(), "no-such-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(actions) != 0 {
		t.Errorf("got %d actions", len(actions))
	}
}
