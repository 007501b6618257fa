package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/schedule"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show full details for a session",
	Long: `Show a session with its papers and talks.

Accepts a full session ID or a unique prefix, as printed by list and search.

Examples:
  confsched show aaaa0000
  confsched show aaaa000000000001`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	id, err := database.ResolveSessionID(args[0])
	if err != nil {
		return err
	}

	detail, err := database.GetSessionDetail(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s := detail.Session

	_, _ = dayColor.Println(s.Title)
	fmt.Println()
	fmt.Printf("When:  %s %s", s.DayLabel, formatTimeRange(s.Start, s.End))
	if s.DayDate != "" {
		fmt.Printf(" (%s)", s.DayDate)
	}
	fmt.Println()
	if s.Track != "" {
		fmt.Printf("Track: %s\n", s.Track)
	}
	if s.Room != "" {
		fmt.Printf("Room:  %s\n", s.Room)
	}
	if s.URL != "" {
		fmt.Printf("URL:   %s\n", s.URL)
	}
	fmt.Printf("ID:    %s\n", s.SessionID)

	if ag.Contains(s.SessionID) {
		_, _ = starColor.Println("Starred")

		starred, err := database.ListSessions(db.ListFilter{IDs: ag.IDs()})
		if err == nil && schedule.ConflictsByDay(starred)[s.SessionID] {
			_, _ = conflictColor.Println("Conflicts with another starred session")
		}
	}

	if len(detail.Items) > 0 {
		fmt.Println()
		fmt.Printf("Papers and talks (%d):\n", len(detail.Items))
		for i, item := range detail.Items {
			fmt.Printf("  %d. %s\n", i+1, item.Title)
			if item.Authors != "" {
				_, _ = dimColor.Printf("     %s\n", item.Authors)
			}
			if item.URL != "" {
				_, _ = dimColor.Printf("     %s\n", item.URL)
			}
		}
	}

	return nil
}
