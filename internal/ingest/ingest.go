// Package ingest reads raw newsletter emails from a drop directory and
// turns them into content items: headers lifted, bodies decoded and
// HTML-stripped, and the newsletter source identified from sender and
// subject.
package ingest

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newscast/internal/core"
	"newscast/internal/logger"
)

// sourcePatterns identifies newsletters by keywords in the sender address
// or subject. Order matters: the first match wins.
var sourcePatterns = []struct {
	label    string
	keywords []string
}{
	{"TLDR AI", []string{"tldrnewsletter.com", "tldr ai"}},
	{"Ben's Bites", []string{"bensbites", "ben's bites"}},
	{"AI Secret", []string{"aisecret", "ai secret"}},
	{"AI Israel Weekly", []string{"ai-israel"}},
	{"Aftershoot AI", []string{"aftershoot"}},
	{"The Rundown AI", []string{"therundown", "rundown"}},
	{"AI Breakfast", []string{"aibreakfast"}},
	{"Import AI", []string{"importai"}},
	{"Test Email", []string{"linktree@gmail.com"}},
}

// DefaultSourceLabel is used when no pattern matches.
const DefaultSourceLabel = "Other AI Newsletter"

// IdentifySource maps sender and subject to a newsletter label.
func IdentifySource(from, subject string) string {
	fromLower := strings.ToLower(from)
	subjectLower := strings.ToLower(subject)

	for _, p := range sourcePatterns {
		for _, kw := range p.keywords {
			if strings.Contains(fromLower, kw) || strings.Contains(subjectLower, kw) {
				return p.label
			}
		}
	}
	return DefaultSourceLabel
}

// LoadDir reads every .eml file under dir, sorted by name, and parses each
// into a content item. A file that fails to parse is logged and skipped; an
// empty or missing directory yields zero items, which the caller reports as
// a no-input run, not an error.
func LoadDir(dir string) ([]core.ContentItem, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".eml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var items []core.ContentItem
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("cannot open email, skipping", "path", path, "error", err.Error())
			continue
		}
		item, err := ParseMessage(f)
		_ = f.Close()
		if err != nil {
			logger.Warn("cannot parse email, skipping", "path", path, "error", err.Error())
			continue
		}
		items = append(items, item)
	}
	logger.Info("ingested newsletters", "dir", dir, "count", len(items))
	return items, nil
}

// ParseMessage parses one raw RFC 822 message into a content item.
func ParseMessage(r io.Reader) (core.ContentItem, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return core.ContentItem{}, fmt.Errorf("read message: %w", err)
	}

	from := msg.Header.Get("From")
	subject := decodeHeader(msg.Header.Get("Subject"))

	body, err := extractBody(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return core.ContentItem{}, err
	}

	return core.ContentItem{
		SourceLabel: IdentifySource(from, subject),
		Subject:     subject,
		From:        from,
		Date:        msg.Header.Get("Date"),
		BodyText:    strings.TrimSpace(body),
	}, nil
}

// decodeHeader decodes RFC 2047 encoded words, returning the raw value when
// decoding fails.
func decodeHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractBody returns plain text from a message body: the first text/plain
// part of a multipart message, a stripped text/html part otherwise.
func extractBody(contentType, transferEncoding string, body io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipart(params["boundary"], body)
	}

	raw, err := io.ReadAll(decodeTransfer(transferEncoding, body))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if mediaType == "text/html" {
		return HTMLToText(string(raw)), nil
	}
	return string(raw), nil
}

func extractMultipart(boundary string, body io.Reader) (string, error) {
	if boundary == "" {
		return "", fmt.Errorf("multipart message without boundary")
	}

	htmlFallback := ""
	mr := multipart.NewReader(body, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read part: %w", err)
		}

		mediaType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}
		switch {
		case mediaType == "text/plain":
			raw, err := io.ReadAll(decodeTransfer(part.Header.Get("Content-Transfer-Encoding"), part))
			if err != nil {
				continue
			}
			return string(raw), nil
		case mediaType == "text/html" && htmlFallback == "":
			raw, err := io.ReadAll(decodeTransfer(part.Header.Get("Content-Transfer-Encoding"), part))
			if err != nil {
				continue
			}
			htmlFallback = HTMLToText(string(raw))
		case strings.HasPrefix(mediaType, "multipart/"):
			nested, err := extractMultipart(params["boundary"], part)
			if err == nil && nested != "" {
				return nested, nil
			}
		}
	}
	return htmlFallback, nil
}

// decodeTransfer unwraps quoted-printable and base64 bodies; anything else
// passes through.
func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText strips an HTML document to readable text, dropping script and
// style content. On a parse failure the raw input comes back.
func HTMLToText(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}
	doc.Find("script, style").Remove()

	text := doc.Text()
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		kept = append(kept, strings.TrimSpace(line))
	}
	text = strings.Join(kept, "\n")
	return strings.TrimSpace(excessBlankLines.ReplaceAllString(text, "\n\n"))
}
