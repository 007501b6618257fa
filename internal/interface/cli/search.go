package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/search"
)

var (
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the program",
	Long: `Full-text search over session titles, tracks and rooms plus paper
titles and authors, with porter stemming.

Structured filters can be mixed into the query:
  day:monday track:keynote room:rousseau starred:yes
  on:2026-02-24 after:monday before:wednesday

Examples:
  confsched search fuzzing
  confsched search "side channel" day:tuesday
  confsched search starred:yes after:monday`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum number of results to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Join all args as query
	query := strings.Join(args, " ")

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	results, err := search.Search(database, query, ag.IDs())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results for: %s\n", query)
		return nil
	}

	shown := len(results)
	if shown > searchLimit {
		shown = searchLimit
	}

	fmt.Printf("Found %d result(s) for: %s\n\n", len(results), query)

	for _, r := range results[:shown] {
		if ag.Contains(r.SessionID) {
			_, _ = starColor.Print("★ ")
		} else {
			fmt.Print("  ")
		}

		fmt.Printf("%s %-13s %s", r.DayLabel, formatTimeRange(r.Start, r.End), r.Title)

		var extras []string
		if r.Track != "" {
			extras = append(extras, r.Track)
		}
		if r.Room != "" {
			extras = append(extras, r.Room)
		}
		if len(extras) > 0 {
			_, _ = dimColor.Printf("  [%s]", strings.Join(extras, ", "))
		}
		_, _ = dimColor.Printf("  %s", shortID(r.SessionID))
		fmt.Println()

		if r.MatchedItem != "" {
			fmt.Printf("      in: %s\n", r.MatchedItem)
		}
	}

	if len(results) > shown {
		fmt.Printf("\n... and %d more (use --limit to see more)\n", len(results)-shown)
	}

	return nil
}
