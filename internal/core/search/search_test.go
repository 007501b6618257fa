package search

import (
	"path/filepath"
	"testing"

	"github.com/confsched/confsched/internal/core/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// seedProgram inserts two days with three sessions:
//
//	Monday   08:30-10:00  Session 1A / Rousseau  "Network Defenses"
//	           - "Deterministic Fuzzing at Scale" (Alice Example)
//	           - "Spectre-v2 Revisited" (Bob Sample)
//	Monday   10:30-12:00  Session 1B / Voltaire  "Web Security"
//	Tuesday  09:00-09:45  Keynote / Rousseau     "Opening Keynote"
//	           - "A Web Agenda for the Next Decade" (Carol Keynote)
func seedProgram(t *testing.T, database *db.DB) {
	t.Helper()

	day1, err := database.Exec(`INSERT INTO days (day_id, label, date, position) VALUES ('day1', 'Monday', '2026-02-23', 0)`)
	if err != nil {
		t.Fatalf("failed to insert day: %v", err)
	}
	day1ID, _ := day1.LastInsertId()

	day2, err := database.Exec(`INSERT INTO days (day_id, label, date, position) VALUES ('day2', 'Tuesday', '2026-02-24', 1)`)
	if err != nil {
		t.Fatalf("failed to insert day: %v", err)
	}
	day2ID, _ := day2.LastInsertId()

	sessions := []struct {
		sessionID string
		dayID     int64
		start     string
		end       string
		track     string
		room      string
		title     string
		position  int
	}{
		{"aaaa000000000001", day1ID, "08:30", "10:00", "Session 1A", "Rousseau", "Network Defenses", 0},
		{"aaaa000000000002", day1ID, "10:30", "12:00", "Session 1B", "Voltaire", "Web Security", 1},
		{"bbbb000000000001", day2ID, "09:00", "09:45", "Keynote", "Rousseau", "Opening Keynote", 0},
	}

	rowIDs := make(map[string]int64)
	for _, s := range sessions {
		res, err := database.Exec(`
			INSERT INTO sessions (session_id, day_id, start_time, end_time, track, room, title, url, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, '', ?)
		`, s.sessionID, s.dayID, s.start, s.end, s.track, s.room, s.title, s.position)
		if err != nil {
			t.Fatalf("failed to insert session %s: %v", s.sessionID, err)
		}
		rowIDs[s.sessionID], _ = res.LastInsertId()
	}

	items := []struct {
		itemID    string
		sessionID string
		title     string
		authors   string
		position  int
	}{
		{"item1", "aaaa000000000001", "Deterministic Fuzzing at Scale", "Alice Example (Example University)", 0},
		{"item2", "aaaa000000000001", "Spectre-v2 Revisited", "Bob Sample (Sample Labs)", 1},
		{"item3", "bbbb000000000001", "A Web Agenda for the Next Decade", "Carol Keynote (Keynote Inc)", 0},
	}

	for _, it := range items {
		_, err := database.Exec(`
			INSERT INTO items (item_id, session_id, title, url, authors, position)
			VALUES (?, ?, ?, '', ?, ?)
		`, it.itemID, rowIDs[it.sessionID], it.title, it.authors, it.position)
		if err != nil {
			t.Fatalf("failed to insert item %s: %v", it.itemID, err)
		}
	}
}

func sessionIDs(results []Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.SessionID
	}
	return ids
}

func TestSearch(t *testing.T) {
	database := newTestDB(t)
	seedProgram(t, database)

	t.Run("EmptyQuery", func(t *testing.T) {
		if _, err := Search(database, "   ", nil); err == nil {
			t.Error("expected error for empty query")
		}
	})

	t.Run("TitleMatch", func(t *testing.T) {
		results, err := Search(database, "security", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d: %v", len(results), sessionIDs(results))
		}
		r := results[0]
		if r.SessionID != "aaaa000000000002" {
			t.Errorf("expected Web Security session, got %s", r.SessionID)
		}
		if r.DayLabel != "Monday" || r.Start != "10:30" || r.Room != "Voltaire" {
			t.Errorf("unexpected result fields: %+v", r)
		}
		if r.Snippet == "" {
			t.Error("expected a snippet")
		}
		if r.MatchedItem != "" {
			t.Errorf("direct match should not set MatchedItem, got %q", r.MatchedItem)
		}
	})

	t.Run("PorterStemming", func(t *testing.T) {
		results, err := Search(database, "defense", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "aaaa000000000001" {
			t.Errorf("expected stemmed match on Network Defenses, got %v", sessionIDs(results))
		}
	})

	t.Run("ItemAuthorMatch", func(t *testing.T) {
		results, err := Search(database, "alice", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].SessionID != "aaaa000000000001" {
			t.Errorf("expected parent session of matched item, got %s", results[0].SessionID)
		}
		if results[0].MatchedItem != "Deterministic Fuzzing at Scale" {
			t.Errorf("expected MatchedItem set, got %q", results[0].MatchedItem)
		}
	})

	t.Run("DirectMatchesBeforeItemMatches", func(t *testing.T) {
		results, err := Search(database, "web", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d: %v", len(results), sessionIDs(results))
		}
		if results[0].SessionID != "aaaa000000000002" {
			t.Errorf("expected direct title match first, got %s", results[0].SessionID)
		}
		if results[1].SessionID != "bbbb000000000001" {
			t.Errorf("expected item match second, got %s", results[1].SessionID)
		}
		if results[1].MatchedItem != "A Web Agenda for the Next Decade" {
			t.Errorf("expected MatchedItem on item hit, got %q", results[1].MatchedItem)
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		results, err := Search(database, "quantum", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("LikeFallbackForSpecialChars", func(t *testing.T) {
		results, err := Search(database, "spectre-v2", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].SessionID != "aaaa000000000001" {
			t.Errorf("expected hyphenated item title match, got %s", results[0].SessionID)
		}
		if results[0].MatchedItem != "Spectre-v2 Revisited" {
			t.Errorf("expected MatchedItem set, got %q", results[0].MatchedItem)
		}
	})
}

func TestSearch_Filters(t *testing.T) {
	database := newTestDB(t)
	seedProgram(t, database)

	t.Run("DayFilterOnly", func(t *testing.T) {
		results, err := Search(database, "day:monday", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		got := sessionIDs(results)
		if len(got) != 2 || got[0] != "aaaa000000000001" || got[1] != "aaaa000000000002" {
			t.Errorf("expected Monday sessions in program order, got %v", got)
		}
	})

	t.Run("TrackFilterOnly", func(t *testing.T) {
		results, err := Search(database, "track:keynote", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "bbbb000000000001" {
			t.Errorf("expected keynote session, got %v", sessionIDs(results))
		}
	})

	t.Run("RoomFilterWithText", func(t *testing.T) {
		results, err := Search(database, "room:rousseau defense", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "aaaa000000000001" {
			t.Errorf("expected Rousseau session matching text, got %v", sessionIDs(results))
		}
	})

	t.Run("DayFilterWithText", func(t *testing.T) {
		results, err := Search(database, "day:tuesday web", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "bbbb000000000001" {
			t.Errorf("expected only Tuesday web match, got %v", sessionIDs(results))
		}
	})

	t.Run("OnDate", func(t *testing.T) {
		results, err := Search(database, "on:2026-02-24", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "bbbb000000000001" {
			t.Errorf("expected Tuesday sessions, got %v", sessionIDs(results))
		}
	})

	t.Run("DateRange", func(t *testing.T) {
		results, err := Search(database, "after:2026-02-24", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "bbbb000000000001" {
			t.Errorf("expected sessions on or after Tuesday, got %v", sessionIDs(results))
		}

		results, err = Search(database, "before:2026-02-23", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected Monday sessions, got %v", sessionIDs(results))
		}
	})

	t.Run("StarredFilter", func(t *testing.T) {
		results, err := Search(database, "starred:yes", []string{"aaaa000000000002"})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].SessionID != "aaaa000000000002" {
			t.Errorf("expected only the starred session, got %v", sessionIDs(results))
		}
	})

	t.Run("StarredFilterNothingStarred", func(t *testing.T) {
		results, err := Search(database, "starred:yes", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results with nothing starred, got %v", sessionIDs(results))
		}
	})

	t.Run("StarredFilterWithText", func(t *testing.T) {
		results, err := Search(database, "starred:yes web", []string{"aaaa000000000002", "bbbb000000000001"})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected both starred web matches, got %v", sessionIDs(results))
		}
	})
}
