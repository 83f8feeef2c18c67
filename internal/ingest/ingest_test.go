package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plainEmail = `From: dan@tldrnewsletter.com
To: inbox@example.com
Subject: TLDR AI 2026-08-24
Date: Mon, 24 Aug 2026 09:00:00 +0000
Content-Type: text/plain; charset=utf-8

OpenAI shipped a new model.
Read https://example.com/story for details.
`

const htmlEmail = `From: hello@mail.therundown.ai
Subject: The Rundown: evening edition
Date: Mon, 24 Aug 2026 18:00:00 +0000
Content-Type: text/html; charset=utf-8

<html><head><style>p{color:red}</style></head>
<body><p>Funding news <b>everywhere</b>.</p><script>track()</script></body></html>
`

const multipartEmail = `From: news@aisecret.us
Subject: AI Secret daily
Date: Mon, 24 Aug 2026 07:00:00 +0000
Content-Type: multipart/alternative; boundary="frontier"

--frontier
Content-Type: text/html; charset=utf-8

<html><body><p>html version</p></body></html>
--frontier
Content-Type: text/plain; charset=utf-8

plain version
--frontier--
`

func TestIdentifySource(t *testing.T) {
	cases := []struct {
		from, subject, want string
	}{
		{"dan@tldrnewsletter.com", "daily", "TLDR AI"},
		{"noreply@example.com", "Ben's Bites: agents", "Ben's Bites"},
		{"hi@mail.therundown.ai", "evening", "The Rundown AI"},
		{"unknown@example.com", "AI digest", DefaultSourceLabel},
	}
	for _, c := range cases {
		if got := IdentifySource(c.from, c.subject); got != c.want {
			t.Errorf("IdentifySource(%q, %q) = %q, want %q", c.from, c.subject, got, c.want)
		}
	}
}

func TestParseMessagePlain(t *testing.T) {
	item, err := ParseMessage(strings.NewReader(plainEmail))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if item.SourceLabel != "TLDR AI" {
		t.Errorf("source = %q", item.SourceLabel)
	}
	if item.Subject != "TLDR AI 2026-08-24" {
		t.Errorf("subject = %q", item.Subject)
	}
	if item.Date != "Mon, 24 Aug 2026 09:00:00 +0000" {
		t.Errorf("date = %q", item.Date)
	}
	if !strings.Contains(item.BodyText, "OpenAI shipped a new model.") {
		t.Errorf("body = %q", item.BodyText)
	}
}

func TestParseMessageHTMLStripped(t *testing.T) {
	item, err := ParseMessage(strings.NewReader(htmlEmail))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if item.SourceLabel != "The Rundown AI" {
		t.Errorf("source = %q", item.SourceLabel)
	}
	if !strings.Contains(item.BodyText, "Funding news everywhere.") {
		t.Errorf("body = %q", item.BodyText)
	}
	if strings.Contains(item.BodyText, "track()") || strings.Contains(item.BodyText, "color:red") {
		t.Error("script or style content leaked into body text")
	}
	if strings.Contains(item.BodyText, "<") {
		t.Error("markup leaked into body text")
	}
}

func TestParseMessageMultipartPrefersPlain(t *testing.T) {
	item, err := ParseMessage(strings.NewReader(multipartEmail))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if strings.TrimSpace(item.BodyText) != "plain version" {
		t.Errorf("body = %q, want the text/plain part", item.BodyText)
	}
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.eml", plainEmail)
	write("a.eml", multipartEmail)
	write("broken.eml", "not an email at all")
	write("notes.txt", "ignored")

	items, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SourceLabel != "AI Secret" || items[1].SourceLabel != "TLDR AI" {
		t.Errorf("items not sorted by filename: %q, %q", items[0].SourceLabel, items[1].SourceLabel)
	}
}

func TestLoadDirMissing(t *testing.T) {
	items, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir must not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}
