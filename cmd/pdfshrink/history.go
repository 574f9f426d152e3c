package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent compression runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		history := deps.GetHistoryService()

		records, err := history.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no compression history")
			return nil
		}

		for _, record := range records {
			fmt.Printf("%s  %-30s %s -> %s (%.1f%%, level %s, quality %d)\n",
				record.CreatedAt.Format("2006-01-02 15:04"),
				record.Filename,
				humanSize(record.OriginalSize),
				humanSize(record.CompressedSize),
				record.CompressionRatio*100,
				record.Level,
				record.Quality)
		}

		stats, err := history.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("\n%d runs total, %s saved\n", stats.TotalRuns, humanSize(stats.TotalBytesSaved))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}
