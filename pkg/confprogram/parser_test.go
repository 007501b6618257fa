package confprogram

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	program, err := ParseFile("testdata/sample.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if program.Meta.SourceURL != "https://www.ndss-symposium.org/ndss-program/symposium-2026/" {
		t.Errorf("SourceURL = %v", program.Meta.SourceURL)
	}
	if program.Meta.GeneratedTime().IsZero() {
		t.Errorf("GeneratedTime() is zero, want parsed timestamp")
	}

	days, sessions, items := program.Counts()
	if days != 2 || sessions != 3 || items != 2 {
		t.Errorf("Counts() = (%d, %d, %d), want (2, 3, 2)", days, sessions, items)
	}

	first := program.Days[0].Sessions[0]
	if first.Title != "Network Defenses" {
		t.Errorf("first session title = %v", first.Title)
	}
	if first.Start != "08:30" || first.End != "10:00" {
		t.Errorf("first session times = %v-%v, want 08:30-10:00", first.Start, first.End)
	}
	if len(first.Items) != 2 {
		t.Fatalf("first session item count = %d, want 2", len(first.Items))
	}
	if first.Items[1].Authors != "B. Author, C. Author" {
		t.Errorf("second item authors = %v", first.Items[1].Authors)
	}
}

func TestParseFile_InvalidPath(t *testing.T) {
	_, err := ParseFile("nonexistent.json")
	if err == nil {
		t.Error("ParseFile() should return error for invalid path")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader("{not json"))
	if err == nil {
		t.Error("Parse() should return error for malformed JSON")
	}
}

func TestParse_FillsMissingIDs(t *testing.T) {
	input := `{
		"meta": {"source_url": "", "generated_at": "", "raw_html_sha256": ""},
		"days": [{
			"label": "  Day 1  ",
			"date": "2026-02-24",
			"sessions": [{
				"start": "09:00", "end": "10:00",
				"track": "Session 1A", "room": "Rousseau",
				"title": "  Network Defenses  ",
				"url": "https://example.org/s1a",
				"items": [{"title": "Paper One", "url": "https://example.org/p1", "authors": "A", "order": 0}]
			}]
		}]
	}`

	program, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	day := program.Days[0]
	if day.Label != "Day 1" {
		t.Errorf("day label not trimmed: %q", day.Label)
	}
	if day.DayID != StableID("Day 1", "2026-02-24") {
		t.Errorf("day ID = %v, want derived stable ID", day.DayID)
	}

	session := day.Sessions[0]
	if session.Title != "Network Defenses" {
		t.Errorf("session title not trimmed: %q", session.Title)
	}
	want := StableID("Network Defenses", "09:00", "10:00", "Session 1A", "Rousseau", "https://example.org/s1a")
	if session.SessionID != want {
		t.Errorf("session ID = %v, want %v", session.SessionID, want)
	}

	item := session.Items[0]
	if item.ItemID != StableID("Paper One", "https://example.org/p1", "0") {
		t.Errorf("item ID = %v, want derived stable ID", item.ItemID)
	}
}

func TestParse_DropsUntitledSessions(t *testing.T) {
	input := `{
		"meta": {"source_url": "", "generated_at": "", "raw_html_sha256": ""},
		"days": [{
			"day_id": "d1", "label": "Day 1", "date": "",
			"sessions": [
				{"session_id": "s1", "title": "   ", "start": "", "end": "", "track": "", "room": "", "url": "", "items": []},
				{"session_id": "s2", "title": "Kept", "start": "", "end": "", "track": "", "room": "", "url": "", "items": []}
			]
		}]
	}`

	program, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(program.Days[0].Sessions) != 1 {
		t.Fatalf("session count = %d, want 1", len(program.Days[0].Sessions))
	}
	if program.Days[0].Sessions[0].SessionID != "s2" {
		t.Errorf("kept session = %v, want s2", program.Days[0].Sessions[0].SessionID)
	}
}

func TestStableID(t *testing.T) {
	// The recipe: trim + lowercase each part, join with NUL, sha256, first 16 hex.
	sum := sha256.Sum256([]byte("network defenses\x0009:00"))
	want := hex.EncodeToString(sum[:])[:16]

	if got := StableID("  Network Defenses ", "09:00"); got != want {
		t.Errorf("StableID() = %v, want %v", got, want)
	}
	if got := StableID("network defenses", "09:00"); got != want {
		t.Errorf("StableID() not case-insensitive: %v", got)
	}
	if len(StableID("x")) != 16 {
		t.Errorf("StableID length = %d, want 16", len(StableID("x")))
	}
}
