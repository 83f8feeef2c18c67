package batch

import (
	"fmt"
	"strings"

	"newscast/internal/core"
)

// Truncation caps. These are cost controls, not correctness controls: the
// prefix cut is silent and deterministic.
const (
	estimationBodyCap    = 2000
	estimationExcerptCap = 1000

	oversizedBodyCap     = 5000
	oversizedExcerptCap  = 1000
	oversizedMaxExcerpts = 2

	truncationMarker = "... [Content truncated]"
)

// NormalizeForEstimation flattens every item into one text blob for
// whole-corpus token estimation. Bodies are capped at 2000 characters and
// excerpts at 1000 to keep the estimate cheap.
func NormalizeForEstimation(items []core.ContentItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, normalizeItem(item, estimationBodyCap, estimationExcerptCap))
	}
	return strings.Join(parts, "\n")
}

// NormalizeItem flattens a single item at full length, for per-item
// batch-fit checks.
func NormalizeItem(item core.ContentItem) string {
	return normalizeItem(item, 0, 0)
}

func normalizeItem(item core.ContentItem, bodyCap, excerptCap int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nNewsletter: %s\nSubject: %s\nContent: %s\n",
		item.SourceLabel, item.Subject, truncate(item.BodyText, bodyCap))
	for _, ex := range item.LinkedExcerpts {
		fmt.Fprintf(&b, "\nLinked Article: %s\n%s", ex.Title, truncate(ex.ExcerptText, excerptCap))
	}
	return b.String()
}

// truncate performs a silent prefix cut. A limit of zero means full length.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}

// TruncateOversized caps a single item whose estimated cost alone exceeds
// the per-batch budget: the body is cut to 5000 characters with a marker
// appended and only the first two excerpts are kept, each cut to 1000
// characters. The original item is not mutated.
func TruncateOversized(item core.ContentItem) core.ContentItem {
	out := item
	if len(out.BodyText) > oversizedBodyCap {
		out.BodyText = out.BodyText[:oversizedBodyCap] + truncationMarker
	}
	if len(out.LinkedExcerpts) > 0 {
		keep := out.LinkedExcerpts
		if len(keep) > oversizedMaxExcerpts {
			keep = keep[:oversizedMaxExcerpts]
		}
		excerpts := make([]core.LinkedExcerpt, len(keep))
		copy(excerpts, keep)
		for i := range excerpts {
			if len(excerpts[i].ExcerptText) > oversizedExcerptCap {
				excerpts[i].ExcerptText = excerpts[i].ExcerptText[:oversizedExcerptCap] + truncationMarker
			}
		}
		out.LinkedExcerpts = excerpts
	}
	return out
}
