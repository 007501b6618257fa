package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/schedule"
)

var starCmd = &cobra.Command{
	Use:   "star <session-id>",
	Short: "Star a session for your agenda",
	Long: `Add a session to your starred agenda.

Accepts a full session ID or a unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runStar,
}

var unstarCmd = &cobra.Command{
	Use:   "unstar <session-id>",
	Short: "Remove a session from your agenda",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnstar,
}

func init() {
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(unstarCmd)
}

func runStar(cmd *cobra.Command, args []string) error {
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

	title := id
	if detail, err := database.GetSessionDetail(id); err == nil {
		title = detail.Title
	}

	if ag.Contains(id) {
		fmt.Printf("Already starred: %s\n", title)
		return nil
	}

	ag.Toggle(id)
	fmt.Printf("Starred: %s\n", title)

	starred, err := database.ListSessions(db.ListFilter{IDs: ag.IDs()})
	if err == nil && schedule.ConflictsByDay(starred)[id] {
		_, _ = conflictColor.Println("Note: this overlaps another starred session (see 'confsched agenda')")
	}

	fmt.Printf("Agenda now has %d session(s)\n", ag.Len())
	return nil
}

func runUnstar(cmd *cobra.Command, args []string) error {
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

	title := id
	if detail, err := database.GetSessionDetail(id); err == nil {
		title = detail.Title
	}

	if !ag.Contains(id) {
		fmt.Printf("Not starred: %s\n", title)
		return nil
	}

	ag.Toggle(id)
	fmt.Printf("Unstarred: %s\n", title)
	fmt.Printf("Agenda now has %d session(s)\n", ag.Len())
	return nil
}
