package rss

import (
	"fmt"
	"time"

	"newscast/internal/logger"
)

// Dedupe removes episode items whose guid was already seen, keeping the
// first occurrence in feed order. Returns the number of items removed.
func (f *Feed) Dedupe() int {
	seen := make(map[string]bool)
	kept := f.Channel.Items[:0]
	removed := 0
	for _, item := range f.Channel.Items {
		if item.GUID != "" && seen[item.GUID] {
			removed++
			continue
		}
		seen[item.GUID] = true
		kept = append(kept, item)
	}
	f.Channel.Items = kept
	return removed
}

// Retitle replaces item titles from a guid-to-title map, skipping empty
// titles. Returns the number of items changed.
func (f *Feed) Retitle(titles map[string]string) int {
	changed := 0
	for i := range f.Channel.Items {
		title, ok := titles[f.Channel.Items[i].GUID]
		if !ok || title == "" || f.Channel.Items[i].Title == title {
			continue
		}
		f.Channel.Items[i].Title = title
		changed++
	}
	return changed
}

// GUIDDate extracts the episode date from a deterministic guid such as
// "daily-ai-20260824". The date is the trailing 8 digits.
func GUIDDate(guid string) (time.Time, error) {
	if len(guid) < 8 {
		return time.Time{}, fmt.Errorf("guid %q has no date suffix", guid)
	}
	t, err := time.Parse("20060102", guid[len(guid)-8:])
	if err != nil {
		return time.Time{}, fmt.Errorf("guid %q has no date suffix: %w", guid, err)
	}
	return t, nil
}

// FormatFile rewrites a feed file with canonical indentation.
func FormatFile(path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("no feed at %s", path)
	}
	logger.Info("reformatting feed", "path", path, "items", len(f.Channel.Items))
	return Save(path, f)
}
