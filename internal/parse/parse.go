// Package parse extracts structured sections from free-form model responses.
// The parsers are pure functions over the response text. They are heuristic
// and total: a response with no recognizable section headers degrades to the
// full text with empty section lists, never an error.
package parse

import (
	"regexp"
	"strings"

	"newscast/internal/core"
)

const (
	maxHeadlines = 6
	maxInsights  = 5
	maxTopLinks  = 5
	maxTrends    = 3

	minHeadlineLen = 20
)

var leadingNumber = regexp.MustCompile(`^\d+\.\s*`)

// containsAny reports whether the lowercased line contains any keyword.
func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	podcastHeadlineMarkers = []string{"top news headlines", "headlines", "news headlines"}
	podcastDeepDiveMarkers = []string{"deep dive analysis", "deep dive", "analysis"}

	analysisSummaryMarkers = []string{"executive summary", "key themes", "breaking news"}
	analysisInsightMarkers = []string{"insight", "notable", "must-read", "links"}

	weeklySummaryMarkers = []string{"power dynamics", "strategic synthesis"}
	weeklyTrendMarkers   = []string{"inflection points", "cross-domain impact"}
	weeklyInsightMarkers = []string{"strategic implications", "forward intelligence"}
)

// Podcast extracts headlines and the deep-dive body from a podcast-mode
// response. Headline candidates must be longer than 20 characters, are
// stripped of surrounding quotes and leading "N. " numbering, and at most 6
// are kept. FullContent always carries the complete raw response; DeepDive
// falls back to it when no deep-dive section was found.
func Podcast(response string) core.ProcessingResult {
	var (
		headlines []string
		deepDive  []string
		content   []string
	)
	section := ""

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case containsAny(line, podcastHeadlineMarkers):
			if section == "deep_dive" {
				deepDive = append(deepDive, content...)
			}
			content = nil
			section = "headlines"
		case containsAny(line, podcastDeepDiveMarkers):
			if section == "headlines" {
				headlines = append(headlines, cleanHeadlines(content)...)
			}
			content = nil
			section = "deep_dive"
		case line != "" && !strings.HasPrefix(line, "#"):
			content = append(content, line)
		}
	}
	switch section {
	case "headlines":
		headlines = append(headlines, cleanHeadlines(content)...)
	case "deep_dive":
		deepDive = append(deepDive, content...)
	}

	if len(headlines) > maxHeadlines {
		headlines = headlines[:maxHeadlines]
	}
	dive := response
	if len(deepDive) > 0 {
		dive = strings.Join(deepDive, "\n")
	}
	return core.ProcessingResult{
		FullContent: response,
		Headlines:   headlines,
		DeepDive:    dive,
	}
}

func cleanHeadlines(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || len(line) <= minHeadlineLen {
			continue
		}
		line = strings.Trim(line, `"`)
		line = strings.Trim(line, `'`)
		line = leadingNumber.ReplaceAllString(line, "")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Analysis extracts the executive summary, insight blocks and bare top links
// from an analysis-mode response. Bare URL lines are routed to TopLinks and
// never appear in summary text. FullContent carries the assembled summary,
// falling back to the raw response when no summary sections were found.
func Analysis(response string) core.ProcessingResult {
	var (
		summaries []string
		insights  []string
		topLinks  []string
		content   []string
	)
	section := "summary"

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case containsAny(line, analysisSummaryMarkers):
			if len(content) > 0 {
				summaries = append(summaries, strings.Join(content, "\n"))
			}
			content = []string{line}
			section = "summary"
		case containsAny(line, analysisInsightMarkers):
			if len(content) > 0 {
				if section == "summary" {
					summaries = append(summaries, strings.Join(content, "\n"))
				} else {
					insights = append(insights, strings.Join(content, "\n"))
				}
			}
			content = []string{line}
			section = "insights"
		case strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://"):
			topLinks = append(topLinks, line)
		default:
			content = append(content, line)
		}
	}
	if len(content) > 0 {
		if section == "summary" {
			summaries = append(summaries, strings.Join(content, "\n"))
		} else {
			insights = append(insights, strings.Join(content, "\n"))
		}
	}

	summary := response
	if len(summaries) > 0 {
		summary = strings.Join(summaries, "\n\n")
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	if len(topLinks) > maxTopLinks {
		topLinks = topLinks[:maxTopLinks]
	}
	return core.ProcessingResult{
		FullContent: summary,
		Insights:    insights,
		TopLinks:    topLinks,
	}
}

// WeeklyAnalysis extracts summary, trend and strategic-implication sections
// from a weekly-analysis response. At most 3 trend blocks and 5 insight
// blocks are kept.
func WeeklyAnalysis(response string) core.ProcessingResult {
	var (
		summaries []string
		trends    []string
		insights  []string
		content   []string
	)
	section := "summary"

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case containsAny(line, weeklySummaryMarkers):
			if len(content) > 0 {
				summaries = append(summaries, strings.Join(content, "\n"))
			}
			content = []string{line}
			section = "summary"
		case containsAny(line, weeklyTrendMarkers):
			if len(content) > 0 {
				if section == "summary" {
					summaries = append(summaries, strings.Join(content, "\n"))
				} else {
					trends = append(trends, strings.Join(content, "\n"))
				}
			}
			content = []string{line}
			section = "trends"
		case containsAny(line, weeklyInsightMarkers):
			if len(content) > 0 {
				if section == "trends" {
					trends = append(trends, strings.Join(content, "\n"))
				} else {
					summaries = append(summaries, strings.Join(content, "\n"))
				}
			}
			content = []string{line}
			section = "insights"
		default:
			content = append(content, line)
		}
	}
	if len(content) > 0 {
		joined := strings.Join(content, "\n")
		switch section {
		case "trends":
			trends = append(trends, joined)
		case "insights":
			insights = append(insights, joined)
		default:
			summaries = append(summaries, joined)
		}
	}

	summary := response
	if len(summaries) > 0 {
		summary = strings.Join(summaries, "\n\n")
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	if len(trends) > maxTrends {
		trends = trends[:maxTrends]
	}
	return core.ProcessingResult{
		FullContent: summary,
		Insights:    insights,
		Trends:      trends,
	}
}
