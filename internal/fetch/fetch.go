// Package fetch extracts article links from newsletter bodies and pulls
// short excerpts of the linked pages. Excerpts are enrichment only: a
// newsletter with zero fetchable links is still fully processable.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newscast/internal/core"
	"newscast/internal/logger"
)

const (
	// DefaultMaxLinksPerItem bounds how many links are fetched per
	// newsletter.
	DefaultMaxLinksPerItem = 5

	excerptCap = 3000
	titleCap   = 200

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// urlPattern matches a URL and requires the final character to be part of
// the address proper, so trailing sentence punctuation is not captured.
var urlPattern = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+[^\\s<>\"{}|\\\\^`\\[\\].,;!?]")

// excludePatterns marks links that are newsletter plumbing rather than
// articles.
var excludePatterns = []string{
	"unsubscribe", "tracking", "pixel", "beacon", "analytics",
	"utm_campaign", "mailchimp", "substack.com/unsubscribe",
	"manage-subscription", "email-settings",
}

// contentSelectors are tried in order to locate the main article text.
var contentSelectors = []string{
	"main", "article", ".content", ".post-content",
	".article-content", "[role='main']", ".entry-content",
}

// ExtractLinks returns the candidate article links in a newsletter body:
// tracking and subscription-management links removed, duplicates dropped
// preserving first-seen order, and the list capped at twice maxLinks so the
// fetch stage has spares when some links fail.
func ExtractLinks(content string, maxLinks int) []string {
	if content == "" {
		return nil
	}
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinksPerItem
	}

	seen := make(map[string]bool)
	var links []string
	for _, link := range urlPattern.FindAllString(content, -1) {
		if excluded(link) || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
		if len(links) == maxLinks*2 {
			break
		}
	}
	return links
}

func excluded(link string) bool {
	lower := strings.ToLower(link)
	for _, pattern := range excludePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Fetcher pulls page excerpts over HTTP.
type Fetcher struct {
	httpClient *http.Client
	maxLinks   int
	now        func() time.Time
}

// New returns a fetcher. A nil client gets a 10-second-timeout default; a
// non-positive maxLinks selects the default cap.
func New(httpClient *http.Client, maxLinks int) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinksPerItem
	}
	return &Fetcher{httpClient: httpClient, maxLinks: maxLinks, now: time.Now}
}

// Enrich attaches extracted links and fetched excerpts to each item. Fetch
// failures are logged and skipped; the items always come back, enriched or
// not.
func (f *Fetcher) Enrich(ctx context.Context, items []core.ContentItem) []core.ContentItem {
	out := make([]core.ContentItem, len(items))
	for i, item := range items {
		links := ExtractLinks(item.BodyText, f.maxLinks)
		item.ExtractedLinks = links
		item.LinkedExcerpts = f.Excerpts(ctx, links)
		logger.Info("enriched newsletter", "source", item.SourceLabel,
			"links", len(links), "excerpts", len(item.LinkedExcerpts))
		out[i] = item
	}
	return out
}

// Excerpts fetches up to the configured number of links, skipping any that
// fail or are not HTML.
func (f *Fetcher) Excerpts(ctx context.Context, links []string) []core.LinkedExcerpt {
	if len(links) > f.maxLinks {
		links = links[:f.maxLinks]
	}

	var excerpts []core.LinkedExcerpt
	for _, link := range links {
		excerpt, err := f.fetchOne(ctx, link)
		if err != nil {
			logger.Warn("excerpt fetch failed, skipping", "url", link, "error", err.Error())
			continue
		}
		excerpts = append(excerpts, excerpt)
	}
	return excerpts
}

func (f *Fetcher) fetchOne(ctx context.Context, link string) (core.LinkedExcerpt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return core.LinkedExcerpt{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return core.LinkedExcerpt{}, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return core.LinkedExcerpt{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); !strings.Contains(ct, "html") {
		return core.LinkedExcerpt{}, fmt.Errorf("not HTML: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return core.LinkedExcerpt{}, fmt.Errorf("parse HTML: %w", err)
	}
	doc.Find("script, style, nav, footer, aside, header").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No Title"
	}
	if len(title) > titleCap {
		title = title[:titleCap]
	}

	text := ""
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			text = cleanText(sel.Text())
			break
		}
	}
	if text == "" {
		text = cleanText(doc.Find("body").Text())
	}
	if len(text) > excerptCap {
		text = text[:excerptCap] + "..."
	}

	return core.LinkedExcerpt{
		Title:       title,
		URL:         link,
		ExcerptText: text,
		DateFetched: f.now().UTC(),
	}, nil
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

// cleanText normalizes extracted page text: runs of spaces collapse, each
// line is trimmed, and long blank stretches shrink to one empty line.
func cleanText(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
