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

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Produce the weekly intelligence episode from stored daily scripts",
	Long: `Synthesize the trailing week of stored daily scripts into a strategic
analysis episode and append it to the weekly RSS feed.

Example:
  newscast weekly`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWeekly(); err != nil {
			logger.Error("weekly run failed", "error", err.Error())
			fmt.Print(report.Failure(err, time.Now()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(weeklyCmd)
}

func runWeekly() error {
	cfg := loadConfig()
	p, st, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := p.RunWeekly(context.Background())
	if err != nil {
		return err
	}
	if result.NoInput {
		fmt.Println("No stored daily scripts in the last 7 days; nothing to synthesize.")
		return nil
	}

	fmt.Print(report.Success(report.RunData{
		Newsletters:  result.Newsletters,
		Strategy:     result.Strategy,
		EpisodeTitle: result.Episode.Title,
		AudioPath:    result.Episode.AudioPath,
		AudioSize:    result.Episode.AudioSize,
		Result:       result.Processing,
		Analysis:     result.Analysis,
		Staging:      cfg.IsStaging(),
		ProcessedAt:  time.Now(),
	}))
	return nil
}
