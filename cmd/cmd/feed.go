package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newscast/internal/rss"
	"newscast/internal/store"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Maintain podcast RSS feed files",
	Long:  `Reformat, deduplicate and retitle episodes in a podcast RSS feed file.`,
}

var feedFormatCmd = &cobra.Command{
	Use:   "format [feed-file]",
	Short: "Rewrite a feed file with canonical indentation",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := feedPath(args)
		if err := rss.FormatFile(path); err != nil {
			fmt.Printf("Error formatting feed: %s\n", err)
			return
		}
		fmt.Printf("✅ Feed reformatted: %s\n", path)
	},
}

var feedDedupeCmd = &cobra.Command{
	Use:   "dedupe [feed-file]",
	Short: "Remove duplicate episodes from a feed",
	Long: `Remove episode items that share a guid with an earlier item, keeping the
first occurrence in feed order.

Example:
  newscast feed dedupe feed.xml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := feedPath(args)
		feed, err := rss.Load(path)
		if err != nil {
			fmt.Printf("Error loading feed: %s\n", err)
			return
		}
		if feed == nil {
			fmt.Printf("No feed at %s\n", path)
			return
		}

		removed := feed.Dedupe()
		if removed == 0 {
			fmt.Println("No duplicate episodes found.")
			return
		}
		if err := rss.Save(path, feed); err != nil {
			fmt.Printf("Error saving feed: %s\n", err)
			return
		}
		fmt.Printf("✅ Removed %d duplicate episodes, %d remain\n", removed, len(feed.Channel.Items))
	},
}

var feedRetitleCmd = &cobra.Command{
	Use:   "retitle [feed-file]",
	Short: "Replace date-based episode titles with stored generated titles",
	Long: `Look up each episode's date from its guid, fetch the generated title from
the episode store and replace the feed title where one exists.

Example:
  newscast feed retitle feed.xml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		path := feedPath(args)

		feed, err := rss.Load(path)
		if err != nil {
			fmt.Printf("Error loading feed: %s\n", err)
			return
		}
		if feed == nil {
			fmt.Printf("No feed at %s\n", path)
			return
		}

		st, err := store.NewStore(cfg.App.DataDir)
		if err != nil {
			fmt.Printf("Error opening episode store: %s\n", err)
			return
		}
		defer st.Close()

		titles := make(map[string]string)
		for _, item := range feed.Channel.Items {
			date, err := rss.GUIDDate(item.GUID)
			if err != nil {
				continue
			}
			rec, err := st.GetEpisode(date.Format(store.DateLayout))
			if err != nil || rec == nil || rec.Title == "" {
				continue
			}
			titles[item.GUID] = rec.Title
		}

		changed := feed.Retitle(titles)
		if changed == 0 {
			fmt.Println("No episode titles to update.")
			return
		}
		if err := rss.Save(path, feed); err != nil {
			fmt.Printf("Error saving feed: %s\n", err)
			return
		}
		fmt.Printf("✅ Updated %d episode titles\n", changed)
	},
}

func feedPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return loadConfig().Feed.Path
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedFormatCmd)
	feedCmd.AddCommand(feedDedupeCmd)
	feedCmd.AddCommand(feedRetitleCmd)
}
