// Package report composes the human-readable run summaries the command
// layer prints after a pipeline run.
package report

import (
	"fmt"
	"strings"
	"time"

	"newscast/internal/core"
)

const divider = "═══════════════════════════════════════"

// RunData carries the facts of one finished run.
type RunData struct {
	Newsletters  int
	Strategy     string // "single-context" or "batched"
	EpisodeTitle string
	AudioPath    string
	AudioSize    int
	Result       core.ProcessingResult
	Analysis     core.ProcessingResult // Weekly strategic analysis; zero value on daily runs
	Staging      bool
	ProcessedAt  time.Time
}

func envBadge(staging bool) string {
	if staging {
		return "[STAGING TEST] "
	}
	return ""
}

// Success renders the post-run summary: run facts, the extracted headlines
// and the script body.
func Success(d RunData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sAI Podcast Summary - %s\n\n", envBadge(d.Staging), d.ProcessedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Processed: %d newsletters\n", d.Newsletters)
	fmt.Fprintf(&b, "Strategy: %s\n", d.Strategy)
	if d.EpisodeTitle != "" {
		fmt.Fprintf(&b, "Episode Title: %s\n", d.EpisodeTitle)
	}
	if d.AudioPath != "" {
		fmt.Fprintf(&b, "Podcast Generated: %.1fMB MP3\nAudio File: %s\n",
			float64(d.AudioSize)/(1024*1024), d.AudioPath)
	}

	fmt.Fprintf(&b, "\n%s\nPODCAST SCRIPT\n%s\n\n", divider, divider)

	if len(d.Result.Headlines) > 0 {
		b.WriteString("TOP NEWS HEADLINES:\n")
		for i, h := range d.Result.Headlines {
			fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		}
		b.WriteString("\n")
	}
	if d.Result.DeepDive != "" {
		fmt.Fprintf(&b, "DEEP DIVE ANALYSIS:\n%s\n\n", d.Result.DeepDive)
	} else if d.Result.FullContent != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Result.FullContent)
	}

	if d.Analysis.FullContent != "" {
		fmt.Fprintf(&b, "%s\nWEEKLY INTELLIGENCE ANALYSIS\n%s\n\n", divider, divider)
		fmt.Fprintf(&b, "%s\n\n", d.Analysis.FullContent)
		if len(d.Analysis.Trends) > 0 {
			b.WriteString("KEY TRENDS:\n")
			for i, trend := range d.Analysis.Trends {
				fmt.Fprintf(&b, "%d. %s\n", i+1, trend)
			}
			b.WriteString("\n")
		}
		if len(d.Analysis.Insights) > 0 {
			b.WriteString("STRATEGIC INSIGHTS:\n")
			for i, insight := range d.Analysis.Insights {
				fmt.Fprintf(&b, "%d. %s\n", i+1, insight)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%s\nGenerated: %s\n", divider, d.ProcessedAt.Format(time.RFC3339))
	return b.String()
}

// NoInput renders the healthy-but-idle notice for a run that found no
// newsletters.
func NoInput(staging bool, checkedAt time.Time) string {
	return fmt.Sprintf(`%sNo AI Newsletters Found

System Status: Healthy
Checked at: %s

The processing run found no new emails in the input directory.

This is normal and means:
- The system is running correctly
- No new newsletters have arrived since the last run
- All previous emails have been processed

No action required.
`, envBadge(staging), checkedAt.Format(time.RFC3339))
}

// Failure renders the failed-run notice.
func Failure(err error, failedAt time.Time) string {
	return fmt.Sprintf(`AI Newsletter Processing Failed

Error: %v

Time: %s

This might be due to:
- API rate limits
- Network connectivity issues
- Malformed email content
- Completion API issues

The system will retry on the next scheduled run.
`, err, failedAt.Format(time.RFC3339))
}
