package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/confsched/confsched/internal/core/models"
)

var (
	dayColor      = color.New(color.FgBlue, color.Bold)
	starColor     = color.New(color.FgYellow, color.Bold)
	conflictColor = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.FgHiBlack)
)

// printDayHeader prints a day section header like "Monday (2026-02-23)"
func printDayHeader(label, date string) {
	fmt.Println()
	if date != "" {
		_, _ = dayColor.Printf("%s (%s)\n", label, date)
	} else {
		_, _ = dayColor.Printf("%s\n", label)
	}
}

// printSessionLine prints one session row with optional star and conflict marks
func printSessionLine(s models.Session, starred, conflicted bool) {
	timeRange := formatTimeRange(s.Start, s.End)

	if starred {
		_, _ = starColor.Print("★ ")
	} else {
		fmt.Print("  ")
	}

	fmt.Printf("%-13s %s", timeRange, s.Title)

	var extras []string
	if s.Track != "" {
		extras = append(extras, s.Track)
	}
	if s.Room != "" {
		extras = append(extras, s.Room)
	}
	if len(extras) > 0 {
		_, _ = dimColor.Printf("  [%s]", strings.Join(extras, ", "))
	}
	if conflicted {
		_, _ = conflictColor.Print("  CONFLICT")
	}
	_, _ = dimColor.Printf("  %s", shortID(s.SessionID))
	fmt.Println()
}

// shortID returns the display prefix of a stable session ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatTimeRange renders "08:30-10:00", a bare start for zero-duration
// markers, or "--:--" when times are missing
func formatTimeRange(start, end string) string {
	switch {
	case start == "" || end == "":
		return "--:--"
	case start == end:
		return start
	default:
		return start + "-" + end
	}
}
