package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newscast/internal/config"
	"newscast/internal/fetch"
	"newscast/internal/llm"
	"newscast/internal/pipeline"
	"newscast/internal/store"
	"newscast/internal/tts"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newscast",
	Short: "Newscast turns AI newsletter emails into a daily podcast.",
	Long: `Newscast ingests AI newsletter emails, summarizes them with a completion
API, converts the script to speech and publishes the episode to a podcast
RSS feed.

Example:
  newscast daily
  newscast weekly
  newscast feed dedupe feed.xml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .newscast.yaml)")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildPipeline wires the pipeline from configuration. The returned store
// must be closed by the caller.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, *store.Store, error) {
	ttsCfg := tts.Config{
		Provider: tts.Provider(cfg.TTS.Provider),
		Endpoint: cfg.TTS.Endpoint,
		APIKey:   cfg.TTS.APIKey,
		Voice:    cfg.TTS.Voice,
		Rate:     cfg.TTS.Rate,
	}
	if err := tts.ValidateConfig(ttsCfg); err != nil {
		return nil, nil, err
	}

	st, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open episode store: %w", err)
	}

	client := llm.NewClient(llm.Config{
		APIURL:            cfg.LLM.APIURL,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		MaxRetries:        cfg.LLM.MaxRetries,
		BaseDelay:         time.Duration(cfg.LLM.BaseDelaySeconds) * time.Second,
	})
	fetcher := fetch.New(nil, cfg.Ingest.MaxLinksPerEmail)
	synth := tts.NewClient(ttsCfg)

	return pipeline.New(cfg, client, st, fetcher, synth), st, nil
}
