package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newscast/internal/logger"
	"newscast/internal/report"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Produce today's episode from the newsletter inbox",
	Long: `Read newsletter emails from the input directory, summarize them into a
podcast script, synthesize the audio and append the episode to the RSS feed.

Example:
  newscast daily
  newscast daily --config staging.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDaily(); err != nil {
			logger.Error("daily run failed", "error", err.Error())
			fmt.Print(report.Failure(err, time.Now()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily() error {
	cfg := loadConfig()
	p, st, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := p.RunDaily(context.Background())
	if err != nil {
		return err
	}
	if result.NoInput {
		fmt.Print(report.NoInput(cfg.IsStaging(), time.Now()))
		return nil
	}

	fmt.Print(report.Success(report.RunData{
		Newsletters:  result.Newsletters,
		Strategy:     result.Strategy,
		EpisodeTitle: result.Episode.Title,
		AudioPath:    result.Episode.AudioPath,
		AudioSize:    result.Episode.AudioSize,
		Result:       result.Processing,
		Staging:      cfg.IsStaging(),
		ProcessedAt:  time.Now(),
	}))
	return nil
}
