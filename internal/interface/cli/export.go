package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/spf13/cobra"

	"github.com/confsched/confsched/internal/core/config"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/schedule"
)

var (
	exportOutput   string
	exportTemplate string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the starred agenda to markdown",
	Long: `Render the starred agenda through a mustache template and write
it to a file.

The default template produces a day-by-day markdown agenda with
conflict markers. Drop a custom template at
~/.config/confsched/export_template.mustache or pass one with
--template.

Examples:
  confsched export
  confsched export --output ~/ndss-agenda.md
  confsched export --template my-template.mustache -o agenda.md`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: agenda.md in current directory)")
	exportCmd.Flags().StringVar(&exportTemplate, "template", "", "Mustache template file to render with")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	ag := openAgenda(cmd, database)

	ids := ag.IDs()
	if len(ids) == 0 {
		return fmt.Errorf("nothing starred yet, star sessions before exporting")
	}

	sessions, err := database.ListSessions(db.ListFilter{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}
	conflicts := schedule.ConflictsByDay(sessions)

	template := cfg.ExportTemplate
	if exportTemplate != "" {
		data, err := os.ReadFile(exportTemplate)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		template = string(data)
	}

	// Group sessions into the shape the template expects
	var days []map[string]interface{}
	var current map[string]interface{}
	currentDay := ""
	for _, s := range sessions {
		if s.DayID != currentDay {
			currentDay = s.DayID
			current = map[string]interface{}{
				"label":    s.DayLabel,
				"date":     s.DayDate,
				"sessions": []map[string]interface{}{},
			}
			days = append(days, current)
		}
		entry := map[string]interface{}{
			"time_range": formatTimeRange(s.Start, s.End),
			"title":      s.Title,
			"track":      s.Track,
			"room":       s.Room,
			"url":        s.URL,
			"conflict":   conflicts[s.SessionID],
		}
		current["sessions"] = append(current["sessions"].([]map[string]interface{}), entry)
	}

	templateData := map[string]interface{}{
		"title":        "My conference agenda",
		"days":         days,
		"share_url":    ag.ShareURL(),
		"generated_at": time.Now().Format("2006-01-02 15:04"),
	}

	rendered, err := mustache.Render(template, templateData)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	outputPath := exportOutput
	if outputPath == "" {
		outputPath = "agenda.md"
	}
	if !filepath.IsAbs(outputPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Exported agenda to: %s\n", outputPath)
	return nil
}
