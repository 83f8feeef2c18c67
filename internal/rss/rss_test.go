package rss

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testFeed() *Feed {
	return NewFeed("Daily AI, by AI", "https://dailyaibyai.news",
		"Your daily AI newsletter summary in podcast format.",
		"https://example.com/art.jpg")
}

func TestAppendEpisode(t *testing.T) {
	f := testFeed()
	f.AppendEpisode(EpisodeMeta{
		Title:       "AI Moves Fast",
		Description: "Today's developments.",
		AudioURL:    "https://cdn.example.com/podcasts/ai-newsletter-2026-08-24.mp3",
		AudioSize:   123456,
		Duration:    "10:41",
		Date:        time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		GUIDPrefix:  "daily-ai",
	})

	if len(f.Channel.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(f.Channel.Items))
	}
	item := f.Channel.Items[0]
	if item.GUID != "daily-ai-20260824" {
		t.Errorf("guid = %q", item.GUID)
	}
	if item.PubDate != "Mon, 24 Aug 2026 09:00:00 +0000" {
		t.Errorf("pubDate = %q", item.PubDate)
	}
	if item.Enclosure.Type != "audio/mpeg" || item.Enclosure.Length != 123456 {
		t.Errorf("enclosure = %+v", item.Enclosure)
	}
}

func TestAppendEpisodeTitleFallback(t *testing.T) {
	f := testFeed()
	f.AppendEpisode(EpisodeMeta{
		ShortTitle: "Daily AI",
		Date:       time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
		GUIDPrefix: "daily-ai",
	})

	if got := f.Channel.Items[0].Title; got != "Daily AI Summary - August 3, 2026" {
		t.Errorf("fallback title = %q", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")

	f := testFeed()
	f.AppendEpisode(EpisodeMeta{
		Title:       "Episode One",
		Description: "desc",
		AudioURL:    "https://cdn.example.com/e1.mp3",
		AudioSize:   10,
		Duration:    "5:00",
		Date:        time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		GUIDPrefix:  "daily-ai",
	})
	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, _ := os.ReadFile(path)
	for _, want := range []string{
		`xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"`,
		"<itunes:author>Daily AI, by AI</itunes:author>",
		"<itunes:duration>5:00</itunes:duration>",
		`<itunes:category text="Technology">`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("saved feed missing %q", want)
		}
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected a feed")
	}
	if got.Channel.Title != "Daily AI, by AI" || got.Channel.Author != "Daily AI, by AI" {
		t.Errorf("channel = %+v", got.Channel)
	}
	if len(got.Channel.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Channel.Items))
	}
	item := got.Channel.Items[0]
	if item.GUID != "daily-ai-20260824" || item.Duration != "5:00" || item.Enclosure.URL != "https://cdn.example.com/e1.mp3" {
		t.Errorf("item = %+v", item)
	}
}

func TestLoadMissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.xml"))
	if err != nil {
		t.Fatalf("missing feed must not error: %v", err)
	}
	if f != nil {
		t.Error("expected nil feed for a missing file")
	}
}

func TestDedupeKeepsFirst(t *testing.T) {
	f := testFeed()
	f.Channel.Items = []Item{
		{Title: "first", GUID: "daily-ai-20260822"},
		{Title: "second", GUID: "daily-ai-20260823"},
		{Title: "rerun", GUID: "daily-ai-20260822"},
		{Title: "another rerun", GUID: "daily-ai-20260823"},
	}

	removed := f.Dedupe()
	if removed != 2 {
		t.Errorf("removed = %d", removed)
	}
	if len(f.Channel.Items) != 2 {
		t.Fatalf("items = %d", len(f.Channel.Items))
	}
	if f.Channel.Items[0].Title != "first" || f.Channel.Items[1].Title != "second" {
		t.Errorf("kept wrong items: %+v", f.Channel.Items)
	}
}

func TestRetitle(t *testing.T) {
	f := testFeed()
	f.Channel.Items = []Item{
		{Title: "Daily AI Summary - August 22, 2026", GUID: "daily-ai-20260822"},
		{Title: "Already Good", GUID: "daily-ai-20260823"},
	}

	changed := f.Retitle(map[string]string{
		"daily-ai-20260822": "Agents Everywhere",
		"daily-ai-20260823": "Already Good",
		"daily-ai-20260901": "No Such Item",
	})

	if changed != 1 {
		t.Errorf("changed = %d", changed)
	}
	if f.Channel.Items[0].Title != "Agents Everywhere" {
		t.Errorf("title = %q", f.Channel.Items[0].Title)
	}
}

func TestGUIDDate(t *testing.T) {
	d, err := GUIDDate("weekly-ai-intelligence-20260824")
	if err != nil {
		t.Fatalf("GUIDDate: %v", err)
	}
	if d.Format("2006-01-02") != "2026-08-24" {
		t.Errorf("date = %v", d)
	}
	if _, err := GUIDDate("no-date-here"); err == nil {
		t.Error("expected an error for a guid without a date")
	}
}

func TestFormatFileStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	f := testFeed()
	f.AppendEpisode(EpisodeMeta{Title: "E1", Date: time.Now(), GUIDPrefix: "daily-ai"})
	if err := Save(path, f); err != nil {
		t.Fatal(err)
	}

	if err := FormatFile(path); err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	first, _ := os.ReadFile(path)
	if err := FormatFile(path); err != nil {
		t.Fatalf("FormatFile second pass: %v", err)
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Error("formatting must be idempotent")
	}
}
