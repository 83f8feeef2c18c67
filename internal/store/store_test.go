package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGetEpisode(t *testing.T) {
	s := newTestStore(t)

	rec := EpisodeRecord{Date: "2026-08-24", Script: "the script", Title: "AI Moves Fast"}
	if err := s.SaveEpisode(rec); err != nil {
		t.Fatalf("SaveEpisode: %v", err)
	}

	got, err := s.GetEpisode("2026-08-24")
	if err != nil {
		t.Fatalf("GetEpisode: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored episode")
	}
	if got.Script != "the script" || got.Title != "AI Moves Fast" {
		t.Errorf("got %+v", got)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("generated_at not defaulted")
	}
}

func TestSaveEpisodeReplacesByDate(t *testing.T) {
	s := newTestStore(t)

	_ = s.SaveEpisode(EpisodeRecord{Date: "2026-08-24", Script: "first"})
	if err := s.SaveEpisode(EpisodeRecord{Date: "2026-08-24", Script: "second"}); err != nil {
		t.Fatalf("SaveEpisode: %v", err)
	}

	got, _ := s.GetEpisode("2026-08-24")
	if got == nil || got.Script != "second" {
		t.Errorf("rerun must replace the stored script, got %+v", got)
	}
}

func TestSaveEpisodeRejectsBadDate(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveEpisode(EpisodeRecord{Date: "24/08/2026", Script: "x"}); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestGetEpisodeMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetEpisode("2026-01-01")
	if err != nil {
		t.Fatalf("GetEpisode: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing date, got %+v", got)
	}
}

func TestLastDaysWindow(t *testing.T) {
	s := newTestStore(t)

	for _, date := range []string{
		"2026-08-17", // outside the window
		"2026-08-18", "2026-08-20", "2026-08-24",
	} {
		if err := s.SaveEpisode(EpisodeRecord{Date: date, Script: "script " + date}); err != nil {
			t.Fatalf("SaveEpisode(%s): %v", date, err)
		}
	}

	end := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	records, err := s.LastDays(end, 7)
	if err != nil {
		t.Fatalf("LastDays: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 episodes in window, got %d", len(records))
	}
	for i, want := range []string{"2026-08-18", "2026-08-20", "2026-08-24"} {
		if records[i].Date != want {
			t.Errorf("record %d date = %q, want %q", i, records[i].Date, want)
		}
	}
}

func TestUpdateTitle(t *testing.T) {
	s := newTestStore(t)

	_ = s.SaveEpisode(EpisodeRecord{Date: "2026-08-24", Script: "x"})
	if err := s.UpdateTitle("2026-08-24", "New Title"); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	got, _ := s.GetEpisode("2026-08-24")
	if got.Title != "New Title" {
		t.Errorf("title = %q", got.Title)
	}

	if err := s.UpdateTitle("2026-01-01", "x"); err == nil {
		t.Error("expected an error for an unknown date")
	}
}
