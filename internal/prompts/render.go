package prompts

import (
	"fmt"
	"strings"

	"newscast/internal/core"
)

// Mode selects the prompt set a renderer draws from.
type Mode string

const (
	ModeAnalysis       Mode = "analysis"
	ModePodcast        Mode = "podcast"
	ModeWeeklyAnalysis Mode = "weekly-analysis"
	ModeWeeklyPodcast  Mode = "weekly-podcast"
)

// Per-item caps inside rendered batch prompts. The comprehensive prompt
// embeds items at full length.
const (
	batchBodyCap     = 3000
	batchExcerptCap  = 800
	batchMaxExcerpts = 2
)

// Renderer substitutes content into the fixed template set for one mode. It
// only performs placeholder substitution and per-item block assembly; it
// never alters template wording.
type Renderer struct {
	mode Mode
}

// NewRenderer returns a renderer for the given mode.
func NewRenderer(mode Mode) Renderer {
	return Renderer{mode: mode}
}

// Comprehensive renders the single-context prompt over all items.
func (r Renderer) Comprehensive(items []core.ContentItem) string {
	switch r.mode {
	case ModeAnalysis:
		return fmt.Sprintf(executiveComprehensiveTemplate, len(items), itemBlocks(items))
	case ModeWeeklyAnalysis:
		return fmt.Sprintf(weeklyAnalysisTemplate, len(items), dayBlocks(items))
	case ModeWeeklyPodcast:
		return fmt.Sprintf(weeklyPodcastTemplate, dayBlocks(items))
	default:
		return fmt.Sprintf(podcastComprehensiveTemplate, len(items), itemBlocks(items))
	}
}

// Batch renders the per-batch prompt for one batch of items. batchNum is
// 1-based.
func (r Renderer) Batch(items []core.ContentItem, batchNum int) string {
	tmpl := podcastBatchTemplate
	if r.mode == ModeAnalysis || r.mode == ModeWeeklyAnalysis {
		tmpl = executiveBatchTemplate
	}
	return fmt.Sprintf(tmpl, batchNum, len(items), batchBlocks(items))
}

// Meta renders the meta-summary prompt over the collected batch summaries.
// An empty summaries list is permitted and renders as zero batches.
func (r Renderer) Meta(summaries []string, allItems []core.ContentItem) string {
	tmpl := podcastMetaSummaryTemplate
	if r.mode == ModeAnalysis || r.mode == ModeWeeklyAnalysis {
		tmpl = executiveMetaSummaryTemplate
	}
	return fmt.Sprintf(tmpl, len(summaries), len(allItems),
		strings.Join(sourceLabels(allItems), ", "), summaryBlocks(summaries))
}

// EpisodeTitle renders the title-generation prompt for a finished script.
func EpisodeTitle(podcastTitle, script string) string {
	return fmt.Sprintf(episodeTitleTemplate, podcastTitle, script)
}

// itemBlocks builds the full-length email_content section: numbered item
// blocks with subject/source/date headers and any linked-excerpt blocks.
func itemBlocks(items []core.ContentItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "\n### Newsletter %d: %s\n**Subject:** %s\n**From:** %s\n**Date:** %s\n\n**Content:**\n%s\n\n",
			i+1, item.SourceLabel, item.Subject, item.From, item.Date, item.BodyText)
		if len(item.LinkedExcerpts) > 0 {
			fmt.Fprintf(&b, "\n**Linked Articles (%d):**\n", len(item.LinkedExcerpts))
			for j, ex := range item.LinkedExcerpts {
				fmt.Fprintf(&b, "\n%d. **%s** (%s)\n%s\n\n", j+1, ex.Title, ex.URL, ex.ExcerptText)
			}
		}
	}
	return b.String()
}

// batchBlocks builds the batch_content section, with bodies capped at 3000
// characters and the first two excerpts capped at 800 each.
func batchBlocks(items []core.ContentItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "\n### Newsletter %d: %s\n**Subject:** %s\n**Content:** %s\n",
			i+1, item.SourceLabel, item.Subject, cut(item.BodyText, batchBodyCap))
		excerpts := item.LinkedExcerpts
		if len(excerpts) > batchMaxExcerpts {
			excerpts = excerpts[:batchMaxExcerpts]
		}
		for _, ex := range excerpts {
			fmt.Fprintf(&b, "\n**Linked:** %s\n%s\n", ex.Title, cut(ex.ExcerptText, batchExcerptCap))
		}
	}
	return b.String()
}

// dayBlocks builds the weekly_content section from day-script items, where
// SourceLabel carries the day of week, Subject the date and BodyText the
// stored script.
func dayBlocks(items []core.ContentItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("\n### %s, %s\n%s\n\n", item.SourceLabel, item.Subject, item.BodyText))
	}
	return strings.Join(parts, "\n")
}

func summaryBlocks(summaries []string) string {
	var b strings.Builder
	for i, s := range summaries {
		fmt.Fprintf(&b, "\n### Batch %d Summary:\n%s\n\n", i+1, s)
	}
	return b.String()
}

// sourceLabels returns the distinct newsletter source labels in first-seen
// order.
func sourceLabels(items []core.ContentItem) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, item := range items {
		if !seen[item.SourceLabel] {
			seen[item.SourceLabel] = true
			labels = append(labels, item.SourceLabel)
		}
	}
	return labels
}

func cut(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
