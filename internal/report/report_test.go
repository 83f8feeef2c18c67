package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"newscast/internal/core"
)

var at = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

func TestSuccessSummary(t *testing.T) {
	out := Success(RunData{
		Newsletters:  4,
		Strategy:     "single-context",
		EpisodeTitle: "Agents Everywhere",
		AudioPath:    "audio/ai-newsletter-2026-08-24.mp3",
		AudioSize:    3 * 1024 * 1024,
		Result: core.ProcessingResult{
			Headlines: []string{"First headline.", "Second headline."},
			DeepDive:  "The big story explained.",
		},
		ProcessedAt: at,
	})

	for _, want := range []string{
		"AI Podcast Summary - August 24, 2026",
		"Processed: 4 newsletters",
		"Strategy: single-context",
		"Episode Title: Agents Everywhere",
		"Podcast Generated: 3.0MB MP3",
		"1. First headline.",
		"2. Second headline.",
		"DEEP DIVE ANALYSIS:\nThe big story explained.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("success summary missing %q", want)
		}
	}
	if strings.HasPrefix(out, "[STAGING TEST]") {
		t.Error("non-staging run must not carry the staging badge")
	}
}

func TestSuccessFallsBackToFullContent(t *testing.T) {
	out := Success(RunData{
		Newsletters: 1,
		Strategy:    "batched",
		Result:      core.ProcessingResult{FullContent: "plain script"},
		ProcessedAt: at,
		Staging:     true,
	})

	if !strings.Contains(out, "plain script") {
		t.Error("summary missing the script body")
	}
	if !strings.HasPrefix(out, "[STAGING TEST] ") {
		t.Error("staging run must carry the badge")
	}
}

func TestSuccessWeeklyAnalysisSections(t *testing.T) {
	out := Success(RunData{
		Newsletters: 5,
		Strategy:    "single-context",
		Result:      core.ProcessingResult{FullContent: "the spoken script"},
		Analysis: core.ProcessingResult{
			FullContent: "Compute supply became the week's center of gravity.",
			Trends:      []string{"Reasoning models moved into production."},
			Insights:    []string{"Plan for agent evaluation budgets."},
		},
		ProcessedAt: at,
	})

	for _, want := range []string{
		"WEEKLY INTELLIGENCE ANALYSIS",
		"Compute supply became the week's center of gravity.",
		"KEY TRENDS:\n1. Reasoning models moved into production.",
		"STRATEGIC INSIGHTS:\n1. Plan for agent evaluation budgets.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("weekly summary missing %q", want)
		}
	}
}

func TestSuccessOmitsAnalysisWhenAbsent(t *testing.T) {
	out := Success(RunData{
		Newsletters: 2,
		Strategy:    "single-context",
		Result:      core.ProcessingResult{FullContent: "daily script"},
		ProcessedAt: at,
	})

	if strings.Contains(out, "WEEKLY INTELLIGENCE ANALYSIS") {
		t.Error("daily summary must not carry the weekly analysis block")
	}
}

func TestNoInput(t *testing.T) {
	out := NoInput(false, at)

	if !strings.Contains(out, "No AI Newsletters Found") ||
		!strings.Contains(out, "System Status: Healthy") {
		t.Errorf("unexpected no-input notice: %q", out)
	}
}

func TestFailure(t *testing.T) {
	out := Failure(errors.New("rate limit exceeded after 4 attempts"), at)

	if !strings.Contains(out, "Processing Failed") ||
		!strings.Contains(out, "rate limit exceeded after 4 attempts") {
		t.Errorf("unexpected failure notice: %q", out)
	}
}
