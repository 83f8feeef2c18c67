package batch

import (
	"strings"
	"testing"

	"newscast/internal/core"
	"newscast/internal/tokens"
)

func item(label string, bodyLen int) core.ContentItem {
	return core.ContentItem{
		SourceLabel: label,
		Subject:     "Subject " + label,
		BodyText:    strings.Repeat("a", bodyLen),
	}
}

func TestPlanEmptyInput(t *testing.T) {
	p := NewPlanner(tokens.NewEstimator(nil))

	if got := p.Plan(nil, 1000); len(got) != 0 {
		t.Errorf("Plan(nil) produced %d batches, want 0", len(got))
	}
}

func TestPlanBudgetInvariant(t *testing.T) {
	est := tokens.NewEstimator(nil)
	p := NewPlanner(est)

	items := []core.ContentItem{
		item("a", 800), item("b", 800), item("c", 800),
		item("d", 800), item("e", 200),
	}
	maxTokens := 500
	batches := p.Plan(items, maxTokens)

	if len(batches) < 2 {
		t.Fatalf("expected multiple batches, got %d", len(batches))
	}

	budget := float64(maxTokens) * BudgetMargin
	for i, b := range batches {
		if b.Truncated {
			continue
		}
		sum := 0
		for _, it := range b.Items {
			sum += est.Estimate(NormalizeItem(it))
		}
		if float64(sum) > budget {
			t.Errorf("batch %d estimated sum %d exceeds budget %.0f", i, sum, budget)
		}
	}
}

func TestPlanCoverageAndOrder(t *testing.T) {
	p := NewPlanner(tokens.NewEstimator(nil))

	items := []core.ContentItem{
		item("a", 400), item("b", 400), item("c", 400),
		item("d", 400), item("e", 400), item("f", 400),
	}
	batches := p.Plan(items, 600)

	var flat []core.ContentItem
	for _, b := range batches {
		if len(b.Items) == 0 {
			t.Fatal("planner produced an empty batch")
		}
		flat = append(flat, b.Items...)
	}

	if len(flat) != len(items) {
		t.Fatalf("flattened batches hold %d items, want %d", len(flat), len(items))
	}
	for i := range items {
		if flat[i].SourceLabel != items[i].SourceLabel {
			t.Errorf("item %d reordered: got %q, want %q", i, flat[i].SourceLabel, items[i].SourceLabel)
		}
	}
}

func TestPlanOversizedItemTruncatedSingleton(t *testing.T) {
	p := NewPlanner(tokens.NewEstimator(nil))

	big := item("big", 20000)
	big.LinkedExcerpts = []core.LinkedExcerpt{
		{Title: "one", ExcerptText: strings.Repeat("x", 3000)},
		{Title: "two", ExcerptText: strings.Repeat("x", 3000)},
		{Title: "three", ExcerptText: strings.Repeat("x", 3000)},
	}
	small := item("small", 100)

	batches := p.Plan([]core.ContentItem{big, small}, 1000)

	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}

	first := batches[0]
	if !first.Truncated || len(first.Items) != 1 {
		t.Fatalf("expected truncated singleton batch, got %+v", first)
	}
	got := first.Items[0]
	if !strings.HasSuffix(got.BodyText, truncationMarker) {
		t.Error("oversized body missing truncation marker")
	}
	if len(got.BodyText) != oversizedBodyCap+len(truncationMarker) {
		t.Errorf("oversized body length = %d", len(got.BodyText))
	}
	if len(got.LinkedExcerpts) != 2 {
		t.Errorf("kept %d excerpts, want 2", len(got.LinkedExcerpts))
	}
	for _, ex := range got.LinkedExcerpts {
		if len(ex.ExcerptText) > oversizedExcerptCap+len(truncationMarker) {
			t.Errorf("excerpt not capped: %d chars", len(ex.ExcerptText))
		}
	}

	// The original item must not be mutated.
	if strings.Contains(big.BodyText, truncationMarker) || len(big.LinkedExcerpts) != 3 {
		t.Error("TruncateOversized mutated its input")
	}

	if batches[1].Items[0].SourceLabel != "small" {
		t.Error("item after oversized one lost or reordered")
	}
}

func TestPlanSingleBatchWhenEverythingFits(t *testing.T) {
	p := NewPlanner(tokens.NewEstimator(nil))

	items := []core.ContentItem{item("a", 100), item("b", 100)}
	batches := p.Plan(items, 10000)

	if len(batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(batches))
	}
	if len(batches[0].Items) != 2 {
		t.Errorf("batch holds %d items, want 2", len(batches[0].Items))
	}
}

func TestNormalizeForEstimationCaps(t *testing.T) {
	it := core.ContentItem{
		SourceLabel: "src",
		Subject:     "topic",
		BodyText:    strings.Repeat("z", 5000),
		LinkedExcerpts: []core.LinkedExcerpt{
			{Title: "t", ExcerptText: strings.Repeat("y", 4000)},
		},
	}

	blob := NormalizeForEstimation([]core.ContentItem{it})

	if got := strings.Count(blob, "z"); got != estimationBodyCap {
		t.Errorf("estimation blob body = %d chars, want %d", got, estimationBodyCap)
	}
	if got := strings.Count(blob, "y"); got != estimationExcerptCap {
		t.Errorf("estimation blob excerpt = %d chars, want %d", got, estimationExcerptCap)
	}

	full := NormalizeItem(it)
	if got := strings.Count(full, "z"); got != 5000 {
		t.Errorf("batch-fit normalization truncated body: %d chars", got)
	}
}
