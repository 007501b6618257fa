package schedule

import (
	"strconv"
	"strings"

	"github.com/confsched/confsched/internal/core/models"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// ParseClock parses a 24-hour "H:MM" or "HH:MM" wall-clock string into
// minutes since midnight.
func ParseClock(s string) (int, bool) {
	colon := strings.IndexByte(s, ':')
	if colon < 1 || colon > 2 || len(s)-colon != 3 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if i == colon {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	hours, _ := strconv.Atoi(s[:colon])
	minutes, _ := strconv.Atoi(s[colon+1:])
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// sessionInterval extracts a comparable interval from a session. Sessions
// with a missing or unparsable time have no interval, and a session whose
// start equals its end is an instantaneous marker (breaks, room changes)
// that never takes part in overlap comparisons.
func sessionInterval(s models.Session) (Interval, bool) {
	start, ok := ParseClock(s.Start)
	if !ok {
		return Interval{}, false
	}
	end, ok := ParseClock(s.End)
	if !ok {
		return Interval{}, false
	}
	if start == end {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// DetectConflicts returns the set of session IDs that overlap in time with
// at least one other session in the list. Callers pass the sessions of a
// single day (cross-day sessions never conflict); the result is a flat
// membership set, not a pairing.
func DetectConflicts(sessions []models.Session) map[string]bool {
	conflicts := make(map[string]bool)

	type candidate struct {
		id       string
		interval Interval
	}
	candidates := make([]candidate, 0, len(sessions))
	for _, s := range sessions {
		iv, ok := sessionInterval(s)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{id: s.SessionID, interval: iv})
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i].interval.Overlaps(candidates[j].interval) {
				conflicts[candidates[i].id] = true
				conflicts[candidates[j].id] = true
			}
		}
	}

	return conflicts
}

// ConflictsByDay runs conflict detection per day group and merges the
// results. Sessions are grouped by their day ID, so sessions on different
// days are never compared.
func ConflictsByDay(sessions []models.Session) map[string]bool {
	byDay := make(map[string][]models.Session)
	for _, s := range sessions {
		byDay[s.DayID] = append(byDay[s.DayID], s)
	}

	conflicts := make(map[string]bool)
	for _, group := range byDay {
		for id := range DetectConflicts(group) {
			conflicts[id] = true
		}
	}
	return conflicts
}
