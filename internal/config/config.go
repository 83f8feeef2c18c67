// Package config loads application configuration from a .newscast.yaml
// file, environment variables and a .env file, in ascending precedence of
// file < env.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     App     `mapstructure:"app"`
	LLM     LLM     `mapstructure:"llm"`
	TTS     TTS     `mapstructure:"tts"`
	Podcast Podcast `mapstructure:"podcast"`
	Ingest  Ingest  `mapstructure:"ingest"`
	Feed    Feed    `mapstructure:"feed"`
}

// App holds general application configuration.
type App struct {
	Environment string `mapstructure:"environment"` // "production" or "staging"
	DataDir     string `mapstructure:"data_dir"`
	OutputDir   string `mapstructure:"output_dir"`
}

// LLM holds completion-API configuration.
type LLM struct {
	APIKey            string `mapstructure:"api_key"`
	APIURL            string `mapstructure:"api_url"`
	Model             string `mapstructure:"model"`
	TitleModel        string `mapstructure:"title_model"`
	MaxTokensPerBatch int    `mapstructure:"max_tokens_per_batch"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	MaxRetries        int    `mapstructure:"max_retries"`
	BaseDelaySeconds  int    `mapstructure:"base_delay_seconds"`
}

// TTS holds speech-synthesis configuration.
type TTS struct {
	Provider string `mapstructure:"provider"`
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Voice    string `mapstructure:"voice"`
	Rate     string `mapstructure:"rate"`
}

// Podcast holds the podcast identity.
type Podcast struct {
	Title      string `mapstructure:"title"`
	ShortTitle string `mapstructure:"short_title"`
	Link       string `mapstructure:"link"`
	ImageURL   string `mapstructure:"image_url"`
	AudioBase  string `mapstructure:"audio_base"` // Base URL audio files are served from
}

// Ingest holds email-ingestion configuration.
type Ingest struct {
	InputDir         string `mapstructure:"input_dir"`
	MaxLinksPerEmail int    `mapstructure:"max_links_per_email"`
}

// Feed holds feed-file configuration.
type Feed struct {
	Path string `mapstructure:"path"`
}

// IsStaging reports whether the app runs against the staging environment.
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

var globalConfig *Config

// Load reads configuration once and caches it. An empty configFile selects
// the default search path.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newscast")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load("")
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return &Config{}
		}
		return cfg
	}
	return globalConfig
}

func setDefaults() {
	viper.SetDefault("app.environment", "production")
	viper.SetDefault("app.data_dir", ".newscast")
	viper.SetDefault("app.output_dir", "audio")

	viper.SetDefault("llm.api_url", "https://api.anthropic.com/v1/messages")
	viper.SetDefault("llm.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("llm.title_model", "claude-3-5-haiku-20241022")
	viper.SetDefault("llm.max_tokens_per_batch", 800000)
	viper.SetDefault("llm.requests_per_minute", 5)
	viper.SetDefault("llm.max_retries", 6)
	viper.SetDefault("llm.base_delay_seconds", 10)

	viper.SetDefault("tts.provider", "http")
	viper.SetDefault("tts.voice", "Joanna")
	viper.SetDefault("tts.rate", "medium")

	viper.SetDefault("podcast.title", "Daily AI, by AI")
	viper.SetDefault("podcast.short_title", "Daily AI")
	viper.SetDefault("podcast.link", "https://dailyaibyai.news")

	viper.SetDefault("ingest.input_dir", "inbox")
	viper.SetDefault("ingest.max_links_per_email", 5)

	viper.SetDefault("feed.path", "feed.xml")
}

func bindEnvironmentVariables() {
	envBindings := map[string]string{
		"app.environment":            "NEWSCAST_ENVIRONMENT",
		"llm.api_key":                "ANTHROPIC_API_KEY",
		"llm.model":                  "NEWSCAST_MODEL",
		"llm.requests_per_minute":    "CLAUDE_REQUESTS_PER_MINUTE",
		"llm.max_retries":            "CLAUDE_MAX_RETRIES",
		"llm.base_delay_seconds":     "CLAUDE_BASE_DELAY",
		"llm.max_tokens_per_batch":   "MAX_TOKENS_PER_BATCH",
		"tts.endpoint":               "TTS_ENDPOINT",
		"tts.api_key":                "TTS_API_KEY",
		"tts.voice":                  "TTS_VOICE",
		"tts.rate":                   "TTS_RATE",
		"ingest.input_dir":           "NEWSCAST_INPUT_DIR",
		"ingest.max_links_per_email": "MAX_LINKS_PER_EMAIL",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			fmt.Printf("Warning: Error binding env var %s: %v\n", env, err)
		}
	}
}

func validateConfig(c *Config) error {
	if c.App.Environment != "production" && c.App.Environment != "staging" {
		return fmt.Errorf("invalid environment %q (must be production or staging)", c.App.Environment)
	}
	if c.LLM.RequestsPerMinute < 1 {
		return fmt.Errorf("llm.requests_per_minute must be at least 1")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative")
	}
	return nil
}

// Reset clears the cached configuration. Test hook.
func Reset() {
	globalConfig = nil
	viper.Reset()
}
