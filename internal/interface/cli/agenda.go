package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/schedule"
)

var agendaDay string

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show your starred agenda with conflict flags",
	Long: `Show the starred sessions as a day-by-day agenda.

Sessions whose time ranges overlap on the same day are flagged as
conflicts. Pass --link to adopt a shared agenda before displaying.

Examples:
  confsched agenda
  confsched agenda --day tuesday
  confsched agenda --link "https://example.org/program/#agenda=WyJhYmMiXQ"`,
	RunE: runAgenda,
}

func init() {
	rootCmd.AddCommand(agendaCmd)
	agendaCmd.Flags().StringVar(&agendaDay, "day", "", "Only show this day")
}

func runAgenda(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	ids := ag.IDs()
	if len(ids) == 0 {
		fmt.Println("Nothing starred yet. Use 'confsched star <session-id>' to build an agenda.")
		return nil
	}

	sessions, err := database.ListSessions(db.ListFilter{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}

	// Conflicts are computed over the whole starred set, per day
	conflicts := schedule.ConflictsByDay(sessions)
	missing := len(ids) - len(sessions)

	if agendaDay != "" {
		day, err := resolveDay(database, agendaDay)
		if err != nil {
			return err
		}
		var filtered []models.Session
		for _, s := range sessions {
			if s.DayID == day.DayID {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	if len(sessions) == 0 {
		fmt.Println("No starred sessions on that day.")
		return nil
	}

	currentDay := ""
	conflictCount := 0
	for _, s := range sessions {
		if s.DayID != currentDay {
			currentDay = s.DayID
			printDayHeader(s.DayLabel, s.DayDate)
		}
		if conflicts[s.SessionID] {
			conflictCount++
		}
		printSessionLine(s, true, conflicts[s.SessionID])
	}

	fmt.Println()
	fmt.Printf("%d session(s) starred", len(sessions))
	if conflictCount > 0 {
		fmt.Print(", ")
		_, _ = conflictColor.Printf("%d with time conflicts", conflictCount)
	}
	fmt.Println()

	if missing > 0 {
		_, _ = dimColor.Printf("%d starred session(s) are not in the current program\n", missing)
	}

	fmt.Printf("Share link: %s\n", ag.ShareURL())
	return nil
}
