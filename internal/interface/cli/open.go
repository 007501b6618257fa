package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/browser"
	"github.com/confsched/confsched/internal/core/config"
)

var openCmd = &cobra.Command{
	Use:   "open <session-id>",
	Short: "Open a session's program page in the browser",
	Long: `Open the program page of a session in the default browser.

Set browser_command in config.toml to use a custom opener, with
{url} substituted by the page URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	id, err := database.ResolveSessionID(args[0])
	if err != nil {
		return err
	}

	detail, err := database.GetSessionDetail(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if detail.URL == "" {
		return fmt.Errorf("session %s has no page URL", shortID(id))
	}

	opener := &browser.Opener{CustomCommand: cfg.BrowserCommand}
	if err := opener.Open(detail.URL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	fmt.Printf("Opening %s\n", detail.URL)
	return nil
}
