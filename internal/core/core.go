package core

import "time"

// LinkedExcerpt is a fetched article excerpt referenced by a newsletter link.
type LinkedExcerpt struct {
	Title       string    `json:"title"`        // Page title (capped at fetch time)
	URL         string    `json:"url"`          // Source URL
	ExcerptText string    `json:"excerpt_text"` // Extracted body text (capped at fetch time)
	DateFetched time.Time `json:"date_fetched"` // Timestamp when the excerpt was fetched
}

// ContentItem is one ingested newsletter together with its linked-article
// excerpts. It is immutable once constructed; the pipeline only reads its
// text content.
type ContentItem struct {
	SourceLabel    string          `json:"source_label"` // Identified newsletter source (e.g. "TLDR AI")
	Subject        string          `json:"subject"`
	From           string          `json:"from"`
	Date           string          `json:"date"`      // Raw header date string from the email
	BodyText       string          `json:"body_text"` // HTML-stripped body
	LinkedExcerpts []LinkedExcerpt `json:"linked_excerpts,omitempty"`
	ExtractedLinks []string        `json:"extracted_links,omitempty"`
}

// Batch is an ordered, non-empty group of content items sent to the model in
// one request, with its estimated token cost.
type Batch struct {
	Items           []ContentItem `json:"items"`
	EstimatedTokens int           `json:"estimated_tokens"`
	Truncated       bool          `json:"truncated"` // Set when the batch holds a single oversized, truncated item
}

// ProcessingResult is the structured output extracted from one model
// response. Headlines and Insights are best-effort; FullContent is always
// the complete raw response text.
type ProcessingResult struct {
	FullContent string   `json:"full_content"`
	Headlines   []string `json:"headlines,omitempty"` // Podcast mode, at most 6
	DeepDive    string   `json:"deep_dive,omitempty"`
	Insights    []string `json:"insights,omitempty"` // Analysis mode, at most 5
	TopLinks    []string `json:"top_links,omitempty"`
	Trends      []string `json:"trends,omitempty"` // Weekly analysis mode, at most 3
	Strategy    string   `json:"strategy,omitempty"` // "single-context" or "batched", set by the processor
}

// Episode holds the publishable artifacts of one pipeline run.
type Episode struct {
	RunID       string    `json:"run_id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Script      string    `json:"script"`     // Spoken-word script, break-annotated
	AudioPath   string    `json:"audio_path"` // Path of the written MP3, empty if audio disabled
	AudioSize   int       `json:"audio_size"` // Bytes
	Duration    string    `json:"duration"`   // MM:SS or H:MM:SS
	GUID        string    `json:"guid"`
}
