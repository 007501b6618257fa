package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/config"
	"github.com/confsched/confsched/internal/core/fetch"
	"github.com/confsched/confsched/internal/core/importer"
	"github.com/confsched/confsched/pkg/confprogram"
)

var (
	fetchOutput   string
	fetchNoImport bool
	fetchForce    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download the program dataset and load it",
	Long: `Download the published program dataset and import it into the local
database. The URL defaults to dataset_url from the config file.

Examples:
  confsched fetch
  confsched fetch https://example.org/program.json
  confsched fetch --no-import --output ./program.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Where to save the dataset (default: config dir)")
	fetchCmd.Flags().BoolVar(&fetchNoImport, "no-import", false, "Download only, skip the import")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Import even if this dataset was already loaded")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, _ := config.Load()

	url := cfg.DatasetURL
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" {
		return fmt.Errorf("no dataset URL: pass one or set dataset_url in config.toml")
	}

	dest := fetchOutput
	if dest == "" {
		dest = config.DefaultDatasetPath()
	}

	fmt.Printf("Fetching: %s\n", url)

	result, err := fetch.NewClient().Download(cmd.Context(), url, dest)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("Saved %s to %s (sha256 %s)\n", humanize.Bytes(uint64(result.Bytes)), result.Path, result.SHA256[:12])

	if fetchNoImport {
		return nil
	}

	fmt.Println()
	return importDataset(result.Path, fetchForce)
}

// importDataset loads a dataset file into the database with a progress bar.
// Shared by fetch and load.
func importDataset(path string, force bool) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	// Count sessions up front so the progress bar has a total
	program, err := confprogram.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse dataset: %w", err)
	}
	_, totalSessions, _ := program.Counts()

	imp := importer.New(database)

	var progress *importer.ProgressReporter
	if totalSessions > 0 {
		progress = importer.NewProgressReporter(os.Stdout, totalSessions)
	}

	result, err := imp.ImportFile(path, force, progress)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if result.Skipped {
		fmt.Println("Dataset unchanged since last import, nothing to do (use --force to reload)")
		return nil
	}

	if progress != nil {
		progress.Finish()
	}
	fmt.Printf("Loaded %d days, %d sessions, %d papers/talks\n", result.Days, result.Sessions, result.Items)

	return nil
}
