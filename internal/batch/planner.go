package batch

import (
	"newscast/internal/core"
	"newscast/internal/tokens"
)

// BudgetMargin reserves 30% of the per-batch token budget for prompt
// scaffolding and response headroom.
const BudgetMargin = 0.7

// Planner partitions content items into token-bounded batches. It is a
// greedy, single-pass, order-preserving bin-builder, not a bin-packing
// optimizer: items are never reordered to improve packing density.
type Planner struct {
	estimator *tokens.Estimator
}

// NewPlanner returns a planner using the given estimator.
func NewPlanner(estimator *tokens.Estimator) *Planner {
	return &Planner{estimator: estimator}
}

// Plan splits items, in input order, into batches whose estimated token sum
// stays within maxTokensPerBatch*BudgetMargin. An item that alone exceeds
// the budget is truncated and emitted as its own singleton batch. An empty
// input yields zero batches.
func (p *Planner) Plan(items []core.ContentItem, maxTokensPerBatch int) []core.Batch {
	budget := float64(maxTokensPerBatch) * BudgetMargin

	var batches []core.Batch
	var current []core.ContentItem
	currentTokens := 0

	for _, item := range items {
		cost := p.estimator.Estimate(NormalizeItem(item))

		if float64(currentTokens+cost) > budget {
			if len(current) > 0 {
				batches = append(batches, core.Batch{Items: current, EstimatedTokens: currentTokens})
				current = []core.ContentItem{item}
				currentTokens = cost
			} else {
				// This item alone exceeds the budget; cap it and emit it as
				// its own batch rather than adding it to the running one.
				truncated := TruncateOversized(item)
				batches = append(batches, core.Batch{
					Items:           []core.ContentItem{truncated},
					EstimatedTokens: p.estimator.Estimate(NormalizeItem(truncated)),
					Truncated:       true,
				})
			}
		} else {
			current = append(current, item)
			currentTokens += cost
		}
	}

	if len(current) > 0 {
		batches = append(batches, core.Batch{Items: current, EstimatedTokens: currentTokens})
	}

	return batches
}
