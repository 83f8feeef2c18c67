// Package tts converts prepared SSML chunks to audio through a remote
// speech-synthesis service.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newscast/internal/logger"
)

// Provider selects the synthesis backend.
type Provider string

const (
	ProviderHTTP Provider = "http"
	ProviderMock Provider = "mock"
)

// Config holds synthesis configuration.
type Config struct {
	Provider   Provider
	Endpoint   string
	APIKey     string
	Voice      string // Voice identifier, e.g. "Joanna"
	Rate       string // Prosody rate, e.g. "medium" or "95%"
	HTTPClient *http.Client
}

// Client synthesizes speech chunk by chunk. One chunk maps to one request;
// the service enforces a per-request size limit, which is why callers feed
// it pre-chunked text.
type Client struct {
	cfg Config
}

// NewClient creates a synthesis client, applying defaults for provider,
// rate and HTTP client.
func NewClient(cfg Config) *Client {
	if cfg.Provider == "" {
		cfg.Provider = ProviderHTTP
	}
	if cfg.Rate == "" {
		cfg.Rate = "medium"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{cfg: cfg}
}

// ValidateConfig checks a synthesis configuration before a run starts.
func ValidateConfig(cfg Config) error {
	switch cfg.Provider {
	case ProviderHTTP:
		if cfg.Endpoint == "" {
			return fmt.Errorf("tts endpoint is required")
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("tts API key is required")
		}
	case ProviderMock, "":
	default:
		return fmt.Errorf("invalid tts provider: %s (available: %s, %s)",
			cfg.Provider, ProviderHTTP, ProviderMock)
	}
	if cfg.Voice == "" {
		return fmt.Errorf("tts voice is required")
	}
	return nil
}

type synthesisRequest struct {
	Text         string `json:"text"`
	TextType     string `json:"text_type"`
	VoiceID      string `json:"voice_id"`
	OutputFormat string `json:"output_format"`
}

// SynthesizeChunk converts one text chunk to audio bytes, wrapping it in the
// speak/prosody envelope.
func (c *Client) SynthesizeChunk(ctx context.Context, chunk string) ([]byte, error) {
	ssml := fmt.Sprintf("<speak><prosody rate='%s'>%s</prosody></speak>", c.cfg.Rate, chunk)

	if c.cfg.Provider == ProviderMock {
		return mockAudio(ssml), nil
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:         ssml,
		TextType:     "ssml",
		VoiceID:      c.cfg.Voice,
		OutputFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("synthesis API error %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return audio, nil
}

// SynthesizeDocument converts all chunks and concatenates the audio. A
// failed chunk is logged and skipped so one bad request drops seconds, not
// the episode. It fails only when every chunk fails.
func (c *Client) SynthesizeDocument(ctx context.Context, chunks []string) ([]byte, error) {
	logger.Info("synthesizing speech", "chunks", len(chunks), "voice", c.cfg.Voice)

	var full []byte
	failed := 0
	for i, chunk := range chunks {
		audio, err := c.SynthesizeChunk(ctx, chunk)
		if err != nil {
			failed++
			logger.Error("chunk synthesis failed, skipping",
				"chunk", i+1, "total", len(chunks), "error", err.Error())
			continue
		}
		full = append(full, audio...)
		logger.Debug("synthesized chunk", "chunk", i+1, "total", len(chunks), "bytes", len(audio))
	}

	if len(chunks) > 0 && failed == len(chunks) {
		return nil, fmt.Errorf("all %d chunks failed to synthesize", len(chunks))
	}
	logger.Info("synthesis complete", "bytes", len(full), "failed_chunks", failed)
	return full, nil
}

// mockAudio produces deterministic fake audio bytes for tests and dry runs.
func mockAudio(ssml string) []byte {
	return []byte(fmt.Sprintf("MOCKMP3:%d:%s", len(ssml), ssml))
}

// EstimateAudioLength estimates spoken length in minutes from word count at
// a typical narration pace.
func EstimateAudioLength(text string) float64 {
	const wordsPerMinute = 155.0
	return float64(len(strings.Fields(text))) / wordsPerMinute
}

// FormatDuration renders a duration in seconds as H:MM:SS, or M:SS under an
// hour, the format podcast directories expect.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
