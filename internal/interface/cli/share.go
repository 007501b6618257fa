package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var shareCopy bool

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a share link for the starred agenda",
	Long: `Print a URL that encodes the starred agenda in its fragment.

Anyone opening the link (or passing it to --link) adopts the same
set of starred sessions.`,
	RunE: runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.Flags().BoolVarP(&shareCopy, "copy", "c", false, "Copy the link to the clipboard")
}

func runShare(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ag := openAgenda(cmd, database)

	url := ag.ShareURL()
	if ag.Len() == 0 {
		_, _ = dimColor.Println("Nothing starred yet, the link below carries an empty agenda.")
	}
	fmt.Println(url)

	if shareCopy {
		if err := clipboard.WriteAll(url); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println("Copied to clipboard.")
	}
	return nil
}
