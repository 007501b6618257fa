package confprogram

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Program is the root of a conference program dataset.
type Program struct {
	Meta Meta  `json:"meta"`
	Days []Day `json:"days"`
}

// Meta describes how and when the dataset was generated.
type Meta struct {
	SourceURL     string `json:"source_url"`
	GeneratedAt   string `json:"generated_at"`
	RawHTMLSHA256 string `json:"raw_html_sha256"`
}

// Day groups the sessions scheduled under one conference day.
type Day struct {
	DayID    string    `json:"day_id"`
	Label    string    `json:"label"`
	Date     string    `json:"date"` // YYYY-MM-DD, may be empty
	Sessions []Session `json:"sessions"`
}

// Session is one scheduled program entry.
type Session struct {
	SessionID string `json:"session_id"`
	Start     string `json:"start"` // HH:MM, may be empty
	End       string `json:"end"`   // HH:MM, may be empty
	Track     string `json:"track"`
	Room      string `json:"room"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Items     []Item `json:"items"`
}

// Item is a sub-entry of a session (a paper, talk, or keynote slot).
type Item struct {
	ItemID  string `json:"item_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Authors string `json:"authors"`
	Order   int    `json:"order"`
}

// ParseFile parses a program dataset JSON file.
func ParseFile(path string) (program *Program, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Parse(file)
}

// Parse decodes a program dataset from r and normalizes it: string fields
// are whitespace-trimmed, entries without a title are dropped, and missing
// identifiers are filled in with the stable-ID derivation the dataset
// builder uses.
func Parse(r io.Reader) (*Program, error) {
	var program Program
	dec := json.NewDecoder(r)
	if err := dec.Decode(&program); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	program.normalize()
	return &program, nil
}

func (p *Program) normalize() {
	p.Meta.SourceURL = strings.TrimSpace(p.Meta.SourceURL)
	p.Meta.GeneratedAt = strings.TrimSpace(p.Meta.GeneratedAt)
	p.Meta.RawHTMLSHA256 = strings.TrimSpace(p.Meta.RawHTMLSHA256)

	for di := range p.Days {
		day := &p.Days[di]
		day.Label = strings.TrimSpace(day.Label)
		day.Date = strings.TrimSpace(day.Date)
		if day.DayID == "" {
			label := day.Label
			if label == "" {
				label = "unknown"
			}
			day.DayID = StableID(label, day.Date)
		}

		kept := day.Sessions[:0]
		for si := range day.Sessions {
			s := &day.Sessions[si]
			s.Title = strings.TrimSpace(s.Title)
			if s.Title == "" {
				continue
			}
			s.Start = strings.TrimSpace(s.Start)
			s.End = strings.TrimSpace(s.End)
			s.Track = strings.TrimSpace(s.Track)
			s.Room = strings.TrimSpace(s.Room)
			s.URL = strings.TrimSpace(s.URL)
			if s.SessionID == "" {
				s.SessionID = StableID(s.Title, s.Start, s.End, s.Track, s.Room, s.URL)
			}

			items := s.Items[:0]
			for ii := range s.Items {
				item := &s.Items[ii]
				item.Title = strings.TrimSpace(item.Title)
				if item.Title == "" {
					continue
				}
				item.URL = strings.TrimSpace(item.URL)
				item.Authors = strings.TrimSpace(item.Authors)
				if item.ItemID == "" {
					item.ItemID = StableID(item.Title, item.URL, strconv.Itoa(item.Order))
				}
				items = append(items, *item)
			}
			s.Items = items
			kept = append(kept, *s)
		}
		day.Sessions = kept
	}
}

// StableID derives a short stable hex identifier from the given parts,
// matching the dataset builder: parts are trimmed, lowercased, joined with
// NUL, and the result is the first 16 hex chars of the SHA-256 digest.
func StableID(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sum := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return hex.EncodeToString(sum[:])[:16]
}

// GeneratedTime parses the meta generation timestamp. Returns the zero time
// if the field is missing or not RFC 3339.
func (m Meta) GeneratedTime() time.Time {
	t, err := time.Parse(time.RFC3339, m.GeneratedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Counts returns the number of days, sessions and items in the program.
func (p *Program) Counts() (days, sessions, items int) {
	days = len(p.Days)
	for _, d := range p.Days {
		sessions += len(d.Sessions)
		for _, s := range d.Sessions {
			items += len(s.Items)
		}
	}
	return days, sessions, items
}
