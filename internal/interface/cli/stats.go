package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show program database statistics",
	Long: `Display statistics about the loaded program database.

Shows day, session and paper counts, the program date range,
dataset provenance, and storage info.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to gather statistics: %w", err)
	}

	ag := openAgenda(cmd, database)

	fmt.Println("Program Statistics")
	fmt.Println("==================")
	fmt.Println()

	fmt.Printf("Days:              %d\n", stats.TotalDays)
	fmt.Printf("Sessions:          %d\n", stats.TotalSessions)
	fmt.Printf("Papers and talks:  %d\n", stats.TotalItems)
	fmt.Printf("Tracks:            %d\n", stats.TotalTracks)
	fmt.Printf("Rooms:             %d\n", stats.TotalRooms)
	fmt.Printf("Starred:           %d\n", ag.Len())

	if stats.FirstDate != "" {
		fmt.Println()
		if stats.FirstDate == stats.LastDate {
			fmt.Printf("Program Date:      %s\n", stats.FirstDate)
		} else {
			fmt.Printf("Program Dates:     %s to %s\n", stats.FirstDate, stats.LastDate)
		}
	}

	meta, err := database.GetProgramMeta()
	if err == nil && meta.SourceURL != "" {
		fmt.Println()
		fmt.Printf("Dataset Source:    %s\n", meta.SourceURL)
		if !meta.GeneratedAt.IsZero() {
			fmt.Printf("Dataset Generated: %s\n", meta.GeneratedAt.Format("Jan 2, 2006 3:04 PM"))
		}
		if meta.DatasetPath != "" {
			fmt.Printf("Dataset File:      %s\n", meta.DatasetPath)
		}
	}

	fmt.Println()
	if !stats.LastImportAt.IsZero() {
		fmt.Printf("Last Import:       %s\n", humanize.Time(stats.LastImportAt))
	}
	fmt.Printf("Database Location: %s\n", database.Path())
	fmt.Printf("Database Size:     %s\n", humanize.Bytes(uint64(stats.DatabaseSize)))

	return nil
}
