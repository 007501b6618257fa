package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
)

var (
	listDay     string
	listTrack   string
	listRoom    string
	listStarred bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List program sessions",
	Long: `List the loaded program sessions in schedule order, grouped by day.

Starred sessions are marked. Session IDs shown at the end of each line can
be used (as a unique prefix) with show, star and open.

Examples:
  confsched list
  confsched list --day monday
  confsched list --track "Session 2" --room rousseau
  confsched list --starred`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDay, "day", "", "Filter by day label or date")
	listCmd.Flags().StringVar(&listTrack, "track", "", "Filter by track substring")
	listCmd.Flags().StringVar(&listRoom, "room", "", "Filter by room substring")
	listCmd.Flags().BoolVar(&listStarred, "starred", false, "Only show starred sessions")
}

func runList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	filter := db.ListFilter{Track: listTrack, Room: listRoom}
	if listDay != "" {
		day, err := resolveDay(database, listDay)
		if err != nil {
			return err
		}
		filter.DayID = day.DayID
	}
	if listStarred {
		if ag.Len() == 0 {
			fmt.Println("No sessions starred.")
			return nil
		}
		filter.IDs = ag.IDs()
	}

	sessions, err := database.ListSessions(filter)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		if listDay != "" || listTrack != "" || listRoom != "" || listStarred {
			fmt.Println("No sessions match those filters.")
		} else {
			fmt.Println("No program loaded. Run 'confsched fetch' to download it.")
		}
		return nil
	}

	currentDay := ""
	for _, s := range sessions {
		if s.DayID != currentDay {
			currentDay = s.DayID
			printDayHeader(s.DayLabel, s.DayDate)
		}
		printSessionLine(s, ag.Contains(s.SessionID), false)
	}

	fmt.Println()
	fmt.Printf("%d session(s), %d starred\n", len(sessions), ag.Len())
	return nil
}

// resolveDay matches a day by label substring or exact date
func resolveDay(database *db.DB, query string) (*models.Day, error) {
	days, err := database.ListDays()
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}

	q := strings.ToLower(query)
	for i := range days {
		if strings.Contains(strings.ToLower(days[i].Label), q) || days[i].Date == query {
			return &days[i], nil
		}
	}
	return nil, fmt.Errorf("no day matches %q", query)
}
