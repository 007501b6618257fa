package models

import (
	"errors"
	"time"
)

// Day represents one conference day in the loaded program
type Day struct {
	ID           int64
	DayID        string // Stable hex ID from the dataset
	Label        string
	Date         string // YYYY-MM-DD, may be empty
	Position     int
	SessionCount int
}

// Session represents one scheduled program entry
type Session struct {
	ID        int64
	SessionID string // Stable hex ID from the dataset
	DayID     string
	DayLabel  string
	DayDate   string
	Start     string // HH:MM wall clock, may be empty
	End       string // HH:MM wall clock, may be empty
	Track     string
	Room      string
	Title     string
	URL       string
	Position  int
	ItemCount int
}

// Validate checks if the session has required fields
func (s *Session) Validate() error {
	if s.SessionID == "" {
		return errors.New("session_id is required")
	}
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// TimeRange formats the session's wall-clock interval for display.
// Sessions without both times render as an empty string.
func (s *Session) TimeRange() string {
	if s.Start == "" || s.End == "" {
		return ""
	}
	if s.Start == s.End {
		return s.Start
	}
	return s.Start + "-" + s.End
}

// Item represents a sub-entry of a session (paper, talk, keynote slot)
type Item struct {
	ID        int64
	ItemID    string
	SessionID string
	Title     string
	URL       string
	Authors   string
	Position  int
}

// SessionDetail represents full session information including its items
type SessionDetail struct {
	Session
	Items []Item
}

// Meta describes the provenance of the loaded program dataset
type Meta struct {
	SourceURL   string
	GeneratedAt time.Time
	RawSHA256   string
	DatasetPath string
	LoadedAt    time.Time
}
