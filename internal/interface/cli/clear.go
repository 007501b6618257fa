package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all starred sessions",
	Long: `Remove every session from the starred agenda.

This also clears the share link slot, so a fresh share link will
be empty until new sessions are starred.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	count := ag.Len()
	if count == 0 {
		fmt.Println("Nothing starred, nothing to clear.")
		return nil
	}

	if !clearYes {
		fmt.Printf("Remove all %d starred session(s)? [y/N] ", count)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ag.Clear()
	fmt.Printf("Cleared %d starred session(s).\n", count)
	return nil
}
