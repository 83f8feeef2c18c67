package pipeline

import (
	"regexp"
	"strings"
)

var (
	descHeader   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	descBold     = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	descItalic   = regexp.MustCompile(`\*([^*]*)\*`)
	descSentence = regexp.MustCompile(`[.!?]+`)
)

// EpisodeDescription builds the feed description for an episode from the
// opening sentences of its script: up to three sentences within a 200
// character budget, hard-cut with an ellipsis when the join still runs over.
// A script that yields nothing falls back to the given default.
func EpisodeDescription(script, fallback string) string {
	clean := descHeader.ReplaceAllString(script, "")
	clean = descBold.ReplaceAllString(clean, "$1")
	clean = descItalic.ReplaceAllString(clean, "$1")
	clean = strings.TrimSpace(clean)

	var picked []string
	count := 0
	for _, sentence := range descSentence.Split(clean, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || count >= 200 {
			break
		}
		picked = append(picked, sentence)
		count += len(sentence)
	}
	if len(picked) > 3 {
		picked = picked[:3]
	}

	desc := strings.Join(picked, ". ")
	if len(desc) > 200 {
		desc = desc[:197] + "..."
	}
	if desc == "" {
		return fallback
	}
	return desc
}
