package search

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Filters represents structured constraints parsed from a search query
type Filters struct {
	Text      string    // free text for full-text matching
	Day       string    // day label substring
	Track     string    // track substring
	Room      string    // room substring
	Starred   bool      // restrict to starred sessions
	On        time.Time // only this calendar day
	After     time.Time // this day or later
	Before    time.Time // this day or earlier
	HasOn     bool
	HasAfter  bool
	HasBefore bool
}

// HasConstraints reports whether any structured filter is set
func (f Filters) HasConstraints() bool {
	return f.Day != "" || f.Track != "" || f.Room != "" || f.Starred ||
		f.HasOn || f.HasAfter || f.HasBefore
}

// ParseQuery extracts filters from a search query string
// Supports:
//   - day:<label>, track:<name>, room:<name> - substring filters
//   - starred:yes - only starred sessions
//   - on:monday, on:2026-02-23 - sessions on that calendar day
//   - after:monday, before:2026-02-24 - inclusive date ranges
func ParseQuery(query string) Filters {
	filters := Filters{}

	// Initialize date parser with English rules
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	tokens := strings.Fields(query)
	var queryParts []string

	for _, token := range tokens {
		if strings.HasPrefix(token, "day:") {
			filters.Day = strings.TrimPrefix(token, "day:")
			continue
		}

		if strings.HasPrefix(token, "track:") {
			filters.Track = strings.TrimPrefix(token, "track:")
			continue
		}

		if strings.HasPrefix(token, "room:") {
			filters.Room = strings.TrimPrefix(token, "room:")
			continue
		}

		if strings.HasPrefix(token, "starred:") {
			switch strings.ToLower(strings.TrimPrefix(token, "starred:")) {
			case "yes", "true", "only", "1":
				filters.Starred = true
			}
			continue
		}

		if strings.HasPrefix(token, "on:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "on:")); parsed != nil {
				filters.On = *parsed
				filters.HasOn = true
			}
			continue
		}

		if strings.HasPrefix(token, "after:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "after:")); parsed != nil {
				filters.After = *parsed
				filters.HasAfter = true
			}
			continue
		}

		if strings.HasPrefix(token, "before:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "before:")); parsed != nil {
				filters.Before = *parsed
				filters.HasBefore = true
			}
			continue
		}

		// Not a filter, add to query
		queryParts = append(queryParts, token)
	}

	filters.Text = strings.Join(queryParts, " ")
	return filters
}

// parseDate attempts to parse a date string using natural language parsing
func parseDate(w *when.Parser, dateStr string) *time.Time {
	// Try natural language parsing first
	result, err := w.Parse(dateStr, time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	// Try standard formats
	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"01/02/2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
