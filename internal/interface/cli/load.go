package cli

import (
	"github.com/spf13/cobra"
)

var loadForce bool

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a program dataset from a local file",
	Long: `Import a program dataset JSON file into the local database.

The import replaces the previous program snapshot. A file that was already
loaded (same content hash) is skipped unless --force is given.

Examples:
  confsched load ./program.json
  confsched load ./program.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadForce, "force", false, "Import even if this dataset was already loaded")
}

func runLoad(cmd *cobra.Command, args []string) error {
	return importDataset(args[0], loadForce)
}
