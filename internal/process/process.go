// Package process selects and runs the summarization strategy for one run:
// a single comprehensive call when the whole corpus fits the per-batch token
// budget, otherwise token-bounded batch calls fanned back in through a
// meta-summary call.
package process

import (
	"context"
	"errors"
	"fmt"

	"newscast/internal/batch"
	"newscast/internal/core"
	"newscast/internal/llm"
	"newscast/internal/logger"
	"newscast/internal/parse"
	"newscast/internal/prompts"
	"newscast/internal/tokens"
)

// DefaultMaxTokensPerBatch is the per-batch context budget for strategy
// selection and batch planning.
const DefaultMaxTokensPerBatch = 800000

// Strategy labels reported in the processing result.
const (
	StrategySingleContext = "single-context"
	StrategyBatched       = "batched"
)

// ErrNoContent is returned when Run is called with no items.
var ErrNoContent = errors.New("no content items to process")

// LLM is the completion surface the processor needs.
type LLM interface {
	Complete(ctx context.Context, prompt string, opts llm.CallOptions) (string, error)
}

// Processor runs the summarization strategy for a fixed mode.
type Processor struct {
	client    LLM
	estimator *tokens.Estimator
	planner   *batch.Planner
	renderer  prompts.Renderer
	mode      prompts.Mode
	budget    int
}

// New returns a processor for the given mode. A non-positive
// maxTokensPerBatch selects the default budget.
func New(client LLM, estimator *tokens.Estimator, mode prompts.Mode, maxTokensPerBatch int) *Processor {
	if maxTokensPerBatch <= 0 {
		maxTokensPerBatch = DefaultMaxTokensPerBatch
	}
	return &Processor{
		client:    client,
		estimator: estimator,
		planner:   batch.NewPlanner(estimator),
		renderer:  prompts.NewRenderer(mode),
		mode:      mode,
		budget:    maxTokensPerBatch,
	}
}

// Run summarizes items and returns the parsed result. A corpus whose
// estimated token total is within the budget (inclusive) goes through one
// comprehensive call; anything larger goes through the batch path, where a
// failed batch is logged and skipped rather than failing the run. Only the
// comprehensive call and the final meta-summary call are fatal.
func (p *Processor) Run(ctx context.Context, items []core.ContentItem) (core.ProcessingResult, error) {
	if len(items) == 0 {
		return core.ProcessingResult{}, ErrNoContent
	}

	total := p.estimator.Estimate(batch.NormalizeForEstimation(items))
	if total <= p.budget {
		logger.Info("processing in single context", "items", len(items), "estimated_tokens", total)
		return p.single(ctx, items)
	}
	logger.Info("corpus exceeds context budget, batching",
		"items", len(items), "estimated_tokens", total, "budget", p.budget)
	return p.batched(ctx, items)
}

func (p *Processor) single(ctx context.Context, items []core.ContentItem) (core.ProcessingResult, error) {
	response, err := p.client.Complete(ctx, p.renderer.Comprehensive(items), llm.DefaultCallOptions())
	if err != nil {
		return core.ProcessingResult{}, fmt.Errorf("comprehensive call: %w", err)
	}
	result := p.parse(response)
	result.Strategy = StrategySingleContext
	return result, nil
}

func (p *Processor) batched(ctx context.Context, items []core.ContentItem) (core.ProcessingResult, error) {
	batches := p.planner.Plan(items, p.budget)

	summaries := make([]string, 0, len(batches))
	for i, b := range batches {
		response, err := p.client.Complete(ctx, p.renderer.Batch(b.Items, i+1), llm.DefaultCallOptions())
		if err != nil {
			logger.Error("batch failed, skipping", "batch", i+1, "items", len(b.Items), "error", err.Error())
			continue
		}
		summaries = append(summaries, response)
	}
	if len(summaries) == 0 {
		logger.Warn("all batches failed, meta-summary runs over zero summaries", "batches", len(batches))
	}

	response, err := p.client.Complete(ctx, p.renderer.Meta(summaries, items), llm.DefaultCallOptions())
	if err != nil {
		return core.ProcessingResult{}, fmt.Errorf("meta-summary call: %w", err)
	}
	result := p.parse(response)
	result.Strategy = StrategyBatched
	return result, nil
}

func (p *Processor) parse(response string) core.ProcessingResult {
	switch p.mode {
	case prompts.ModeAnalysis:
		return parse.Analysis(response)
	case prompts.ModeWeeklyAnalysis:
		return parse.WeeklyAnalysis(response)
	default:
		return parse.Podcast(response)
	}
}
