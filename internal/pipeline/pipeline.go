// Package pipeline runs the end-to-end episode production flow. Daily and
// weekly are the same pipeline run with different parameters: prompt set,
// speech framing, audio naming and feed identity.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"newscast/internal/config"
	"newscast/internal/core"
	"newscast/internal/fetch"
	"newscast/internal/ingest"
	"newscast/internal/llm"
	"newscast/internal/logger"
	"newscast/internal/process"
	"newscast/internal/prompts"
	"newscast/internal/rss"
	"newscast/internal/speech"
	"newscast/internal/store"
	"newscast/internal/tokens"
)

// Mode selects the pipeline variant.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// variant carries everything that differs between the variants.
type variant struct {
	promptMode   prompts.Mode
	analysisMode prompts.Mode // Empty when the run has no separate analysis pass
	weekly       bool
	audioPrefix  string
	feedTitle    string
	feedDesc     string
	categories   []rss.Category
}

func variantFor(mode Mode, cfg *config.Config) variant {
	if mode == ModeWeekly {
		return variant{
			promptMode:   prompts.ModeWeeklyPodcast,
			analysisMode: prompts.ModeWeeklyAnalysis,
			weekly:       true,
			audioPrefix:  "weekly-ai-analysis-",
			feedTitle:    "Weekly AI Intelligence",
			feedDesc: "Strategic intelligence analysis of artificial intelligence ecosystem evolution. " +
				"Weekly synthesis of AI developments through a strategic lens for technology leaders.",
			categories: []rss.Category{{Text: "Technology"}, {Text: "Business"}},
		}
	}
	return variant{
		promptMode:  prompts.ModePodcast,
		audioPrefix: "ai-newsletter-",
		feedTitle:   cfg.Podcast.Title,
		feedDesc: "Your daily AI newsletter summary in podcast format. " +
			"Comprehensive analysis of the latest developments in artificial intelligence, " +
			"delivered by a synthetic intelligence agent.",
		categories: []rss.Category{{Text: "Technology"}, {Text: "News"}},
	}
}

func (s variant) guidPrefix(staging bool) string {
	if s.weekly {
		return "weekly-ai-intelligence"
	}
	if staging {
		return "staging-daily-ai"
	}
	return "daily-ai"
}

// Synthesizer is the audio surface the pipeline needs.
type Synthesizer interface {
	SynthesizeDocument(ctx context.Context, chunks []string) ([]byte, error)
}

// Result is the outcome of one run.
type Result struct {
	RunID       string
	NoInput     bool
	Newsletters int
	Strategy    string // "single-context" or "batched"
	Processing  core.ProcessingResult
	Analysis    core.ProcessingResult // Weekly strategic analysis; zero value on daily runs
	Episode     core.Episode
}

// Pipeline wires the production stages together.
type Pipeline struct {
	cfg     *config.Config
	client  process.LLM
	store   *store.Store
	fetcher *fetch.Fetcher
	synth   Synthesizer
	now     func() time.Time
}

// New builds a pipeline from its collaborators.
func New(cfg *config.Config, client process.LLM, st *store.Store, fetcher *fetch.Fetcher, synth Synthesizer) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		client:  client,
		store:   st,
		fetcher: fetcher,
		synth:   synth,
		now:     time.Now,
	}
}

// RunDaily produces today's episode from the ingested newsletters.
func (p *Pipeline) RunDaily(ctx context.Context) (*Result, error) {
	return p.run(ctx, ModeDaily)
}

// RunWeekly produces the weekly synthesis episode from the trailing week of
// stored daily scripts.
func (p *Pipeline) RunWeekly(ctx context.Context) (*Result, error) {
	return p.run(ctx, ModeWeekly)
}

func (p *Pipeline) run(ctx context.Context, mode Mode) (*Result, error) {
	v := variantFor(mode, p.cfg)
	now := p.now()
	result := &Result{RunID: uuid.NewString()}
	logger.Info("pipeline run starting", "mode", string(mode), "run_id", result.RunID)

	items, err := p.collect(ctx, v, now)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logger.Info("no input, nothing to produce", "mode", string(mode))
		result.NoInput = true
		return result, nil
	}
	result.Newsletters = len(items)

	estimator := tokens.NewEstimator(nil)

	if v.analysisMode != "" {
		analyzer := process.New(p.client, estimator, v.analysisMode, p.cfg.LLM.MaxTokensPerBatch)
		analysis, err := analyzer.Run(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("weekly analysis failed: %w", err)
		}
		result.Analysis = analysis
	}

	processor := process.New(p.client, estimator, v.promptMode, p.cfg.LLM.MaxTokensPerBatch)
	processing, err := processor.Run(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}
	result.Processing = processing
	result.Strategy = processing.Strategy
	script := processing.FullContent

	title := p.episodeTitle(ctx, v, script, now)

	if !v.weekly {
		rec := store.EpisodeRecord{
			Date:        now.Format(store.DateLayout),
			Script:      script,
			Title:       title,
			GeneratedAt: now.UTC(),
		}
		if err := p.store.SaveEpisode(rec); err != nil {
			logger.Error("failed to store episode script", "error", err.Error())
		}
	}

	description := EpisodeDescription(script, p.defaultDescription(v))

	doc := speech.Prepare(script, speech.Profile{
		Title:   p.cfg.Podcast.Title,
		Voice:   p.cfg.TTS.Voice,
		Weekly:  v.weekly,
		Staging: p.cfg.IsStaging(),
	}, now)
	chunks := speech.Chunk(doc, speech.DefaultMaxChunkLen)

	audio, err := p.synth.SynthesizeDocument(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	audioName := fmt.Sprintf("%s%s.mp3", v.audioPrefix, now.Format(store.DateLayout))
	audioPath := filepath.Join(p.cfg.App.OutputDir, audioName)
	if err := os.MkdirAll(p.cfg.App.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(audioPath, audio, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	duration := "0:00"
	if minutes := EstimatedMinutes(doc); minutes > 0 {
		duration = durationString(minutes)
	}

	episode := core.Episode{
		RunID:       result.RunID,
		Date:        now,
		Title:       title,
		Description: description,
		Script:      script,
		AudioPath:   audioPath,
		AudioSize:   len(audio),
		Duration:    duration,
		GUID:        fmt.Sprintf("%s-%s", v.guidPrefix(p.cfg.IsStaging()), now.Format("20060102")),
	}
	result.Episode = episode

	if err := p.publish(v, episode, audioName); err != nil {
		// A feed failure costs distribution, not the episode itself.
		logger.Error("feed update failed", "error", err.Error())
	}

	logger.Info("pipeline run finished", "mode", string(mode),
		"run_id", result.RunID, "strategy", result.Strategy, "audio_bytes", len(audio))
	return result, nil
}

// collect gathers the run's input items: ingested newsletters for daily,
// the stored trailing week of scripts for weekly.
func (p *Pipeline) collect(ctx context.Context, v variant, now time.Time) ([]core.ContentItem, error) {
	if !v.weekly {
		items, err := ingest.LoadDir(p.cfg.Ingest.InputDir)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, nil
		}
		return p.fetcher.Enrich(ctx, items), nil
	}

	records, err := p.store.LastDays(now, 7)
	if err != nil {
		return nil, fmt.Errorf("load weekly scripts: %w", err)
	}
	items := make([]core.ContentItem, 0, len(records))
	for _, rec := range records {
		day, err := time.Parse(store.DateLayout, rec.Date)
		if err != nil {
			continue
		}
		items = append(items, core.ContentItem{
			SourceLabel: day.Weekday().String(),
			Subject:     rec.Date,
			BodyText:    rec.Script,
		})
	}
	return items, nil
}

// episodeTitle asks the cheap title model for an episode title and falls
// back to the date-based form on any failure. The weekly variant always
// uses its dated title.
func (p *Pipeline) episodeTitle(ctx context.Context, v variant, script string, now time.Time) string {
	if v.weekly {
		return fmt.Sprintf("Weekly AI Intelligence - %s", now.Format("January 2, 2006"))
	}
	fallback := fmt.Sprintf("%s Summary - %s", p.cfg.Podcast.ShortTitle, now.Format("January 2, 2006"))

	response, err := p.client.Complete(ctx, prompts.EpisodeTitle(p.cfg.Podcast.Title, script), llm.CallOptions{
		MaxTokens:   50,
		Temperature: 0.7,
		Model:       p.cfg.LLM.TitleModel,
	})
	if err != nil {
		logger.Warn("episode title generation failed, using fallback", "error", err.Error())
		return fallback
	}

	title := strings.TrimSpace(response)
	title = strings.Trim(title, `"`)
	title = strings.Trim(title, `'`)
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	if words := len(strings.Fields(title)); words < 3 || words > 15 {
		logger.Warn("generated title outside recommended length", "words", words)
	}
	return title
}

func (p *Pipeline) defaultDescription(v variant) string {
	if v.weekly {
		return "Weekly AI strategic intelligence analysis covering ecosystem evolution and strategic implications."
	}
	return fmt.Sprintf("%s newsletter summary with the latest developments in artificial intelligence.", p.cfg.Podcast.Title)
}

// publish appends the episode to the feed file, creating the feed when it
// does not exist yet.
func (p *Pipeline) publish(v variant, episode core.Episode, audioName string) error {
	feed, err := rss.Load(p.cfg.Feed.Path)
	if err != nil {
		return err
	}
	if feed == nil {
		feed = rss.NewFeed(v.feedTitle, p.cfg.Podcast.Link, v.feedDesc, p.cfg.Podcast.ImageURL)
		feed.Channel.Categories = v.categories
	}

	audioURL := episode.AudioPath
	if p.cfg.Podcast.AudioBase != "" {
		audioURL = strings.TrimRight(p.cfg.Podcast.AudioBase, "/") + "/" + audioName
	}

	feed.AppendEpisode(rss.EpisodeMeta{
		Title:       episode.Title,
		ShortTitle:  p.cfg.Podcast.ShortTitle,
		Description: episode.Description,
		AudioURL:    audioURL,
		AudioSize:   episode.AudioSize,
		Duration:    episode.Duration,
		Date:        episode.Date,
		GUIDPrefix:  v.guidPrefix(p.cfg.IsStaging()),
	})
	return rss.Save(p.cfg.Feed.Path, feed)
}

// EstimatedMinutes estimates the spoken length of a prepared document.
func EstimatedMinutes(doc string) float64 {
	const wordsPerMinute = 155.0
	return float64(len(strings.Fields(doc))) / wordsPerMinute
}

func durationString(minutes float64) string {
	total := int(minutes * 60)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
