package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/config"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/sharelink"
)

var (
	dbPath      string
	linkFlag    string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "confsched",
	Short: "Conference program browser and personal agenda",
	Long: `confsched - browse a conference program and build your personal agenda

Load the published program dataset, search sessions and papers, star the
sessions you want to attend, and get a conflict-checked agenda you can
share as a link.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "Database path")
	rootCmd.PersistentFlags().StringVar(&linkFlag, "link", "", "Share link (or bare code) to adopt the starred set from")
}

func openDatabase() (*db.DB, error) {
	database, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// openAgenda reconciles the starred set between the --link flag and the
// stored state. A link that decodes to a non-empty set wins and is written
// back; otherwise the stored set stands.
func openAgenda(cmd *cobra.Command, database *db.DB) *agenda.Set {
	cfg, _ := config.Load()
	code, _ := sharelink.ExtractCode(linkFlag)
	return agenda.Open(database.AgendaStore(), cfg.ShareBaseURL, code, cmd.Flags().Changed("link"))
}
