package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/confsched/confsched/internal/core/db"
)

const datasetOne = `{
  "meta": {
    "source_url": "https://www.ndss-symposium.org/ndss-program/symposium-2026/",
    "generated_at": "2026-01-10T08:00:00Z",
    "raw_html_sha256": "ab12cd34"
  },
  "days": [
    {
      "day_id": "day0000000000001",
      "label": "Monday",
      "date": "2026-02-23",
      "sessions": [
        {
          "session_id": "aaaa000000000001",
          "start": "08:30",
          "end": "10:00",
          "track": "Session 1A",
          "room": "Rousseau",
          "title": "Network Defenses",
          "url": "https://www.ndss-symposium.org/ndss-paper/network-defenses/",
          "items": [
            {
              "item_id": "item000000000001",
              "title": "Defending the Perimeter",
              "url": "https://www.ndss-symposium.org/ndss-paper/defending/",
              "authors": "Alice Example (Example University)",
              "order": 0
            },
            {
              "item_id": "item000000000002",
              "title": "Beyond Firewalls",
              "url": "",
              "authors": "Bob Sample (Sample Labs)",
              "order": 1
            }
          ]
        },
        {
          "session_id": "aaaa000000000002",
          "start": "10:30",
          "end": "12:00",
          "track": "Session 1B",
          "room": "Voltaire",
          "title": "Fuzzing Frontiers",
          "url": "",
          "items": []
        }
      ]
    },
    {
      "day_id": "day0000000000002",
      "label": "Tuesday",
      "date": "2026-02-24",
      "sessions": [
        {
          "session_id": "bbbb000000000001",
          "start": "09:00",
          "end": "09:45",
          "track": "Keynote",
          "room": "Rousseau",
          "title": "Opening Keynote",
          "url": "",
          "items": []
        }
      ]
    }
  ]
}`

const datasetTwo = `{
  "meta": {
    "source_url": "https://www.ndss-symposium.org/ndss-program/symposium-2026/",
    "generated_at": "2026-01-17T08:00:00Z",
    "raw_html_sha256": "ef56ab78"
  },
  "days": [
    {
      "day_id": "day0000000000003",
      "label": "Wednesday",
      "date": "2026-02-25",
      "sessions": [
        {
          "session_id": "cccc000000000001",
          "start": "14:00",
          "end": "15:30",
          "track": "Session 3A",
          "room": "Voltaire",
          "title": "Hardware Security",
          "url": "",
          "items": []
        }
      ]
    }
  ]
}`

// datasetDuplicate violates the sessions.session_id UNIQUE constraint
const datasetDuplicate = `{
  "meta": {"source_url": "", "generated_at": "", "raw_html_sha256": ""},
  "days": [
    {
      "day_id": "day0000000000009",
      "label": "Monday",
      "date": "2026-02-23",
      "sessions": [
        {"session_id": "dddd000000000001", "start": "08:30", "end": "10:00", "track": "", "room": "", "title": "First", "url": "", "items": []},
        {"session_id": "dddd000000000001", "start": "10:30", "end": "12:00", "track": "", "room": "", "title": "Second", "url": "", "items": []}
      ]
    }
  ]
}`

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

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func countRows(t *testing.T, database *db.DB, table string) int {
	t.Helper()
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

func TestImportFile(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	path := writeDataset(t, datasetOne)
	result, err := imp.ImportFile(path, false, nil)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	if result.Skipped {
		t.Error("first import should not be skipped")
	}
	if result.Days != 2 {
		t.Errorf("expected 2 days, got %d", result.Days)
	}
	if result.Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", result.Sessions)
	}
	if result.Items != 2 {
		t.Errorf("expected 2 items, got %d", result.Items)
	}
	if result.FileHash == "" {
		t.Error("expected a file hash")
	}

	if got := countRows(t, database, "days"); got != 2 {
		t.Errorf("expected 2 day rows, got %d", got)
	}
	if got := countRows(t, database, "sessions"); got != 3 {
		t.Errorf("expected 3 session rows, got %d", got)
	}
	if got := countRows(t, database, "items"); got != 2 {
		t.Errorf("expected 2 item rows, got %d", got)
	}

	var status string
	var sessions int
	err = database.QueryRow(`
		SELECT status, sessions_imported FROM import_log WHERE file_hash = ?
	`, result.FileHash).Scan(&status, &sessions)
	if err != nil {
		t.Fatalf("failed to read import log: %v", err)
	}
	if status != "success" {
		t.Errorf("expected success status, got %q", status)
	}
	if sessions != 3 {
		t.Errorf("expected 3 sessions in log, got %d", sessions)
	}

	meta, err := database.GetProgramMeta()
	if err != nil {
		t.Fatalf("GetProgramMeta() error = %v", err)
	}
	if meta.SourceURL != "https://www.ndss-symposium.org/ndss-program/symposium-2026/" {
		t.Errorf("unexpected source URL %q", meta.SourceURL)
	}
	if meta.DatasetPath != path {
		t.Errorf("expected dataset path %q, got %q", path, meta.DatasetPath)
	}
	if meta.LoadedAt.IsZero() {
		t.Error("expected loaded_at to be set")
	}
}

func TestImportFile_SkipsDuplicate(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	path := writeDataset(t, datasetOne)
	if _, err := imp.ImportFile(path, false, nil); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	result, err := imp.ImportFile(path, false, nil)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if !result.Skipped {
		t.Error("expected identical file to be skipped")
	}
	if result.Sessions != 0 {
		t.Errorf("skipped import should report no sessions, got %d", result.Sessions)
	}

	if got := countRows(t, database, "import_log"); got != 1 {
		t.Errorf("expected single import log row, got %d", got)
	}
}

func TestImportFile_ForceReimports(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	path := writeDataset(t, datasetOne)
	if _, err := imp.ImportFile(path, false, nil); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	result, err := imp.ImportFile(path, true, nil)
	if err != nil {
		t.Fatalf("forced import failed: %v", err)
	}
	if result.Skipped {
		t.Error("forced import should not be skipped")
	}
	if result.Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", result.Sessions)
	}

	// Snapshot semantics: rows are replaced, not duplicated
	if got := countRows(t, database, "sessions"); got != 3 {
		t.Errorf("expected 3 session rows after forced reimport, got %d", got)
	}
}

func TestImportFile_ReplacesSnapshot(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	if _, err := imp.ImportFile(writeDataset(t, datasetOne), false, nil); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if _, err := imp.ImportFile(writeDataset(t, datasetTwo), false, nil); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	if got := countRows(t, database, "days"); got != 1 {
		t.Errorf("expected 1 day after replacement, got %d", got)
	}
	if got := countRows(t, database, "sessions"); got != 1 {
		t.Errorf("expected 1 session after replacement, got %d", got)
	}
	if got := countRows(t, database, "items"); got != 0 {
		t.Errorf("expected 0 items after replacement, got %d", got)
	}

	var title string
	err := database.QueryRow(`SELECT title FROM sessions WHERE session_id = 'cccc000000000001'`).Scan(&title)
	if err != nil {
		t.Fatalf("replacement session missing: %v", err)
	}
	if title != "Hardware Security" {
		t.Errorf("expected replacement session title, got %q", title)
	}
}

func TestImportFile_InvalidJSON(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	path := writeDataset(t, `{not json`)
	if _, err := imp.ImportFile(path, false, nil); err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	if got := countRows(t, database, "import_log"); got != 0 {
		t.Errorf("parse failures should not be logged, got %d rows", got)
	}
}

func TestImportFile_LogsFailure(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	path := writeDataset(t, datasetDuplicate)
	if _, err := imp.ImportFile(path, false, nil); err == nil {
		t.Fatal("expected error for duplicate session IDs")
	}

	var status, errMsg string
	err := database.QueryRow(`SELECT status, error_message FROM import_log`).Scan(&status, &errMsg)
	if err != nil {
		t.Fatalf("failed to read import log: %v", err)
	}
	if status != "failed" {
		t.Errorf("expected failed status, got %q", status)
	}
	if errMsg == "" {
		t.Error("expected an error message in the log")
	}

	// Transaction rollback leaves no partial rows
	if got := countRows(t, database, "days"); got != 0 {
		t.Errorf("expected rollback to leave 0 days, got %d", got)
	}
	if got := countRows(t, database, "sessions"); got != 0 {
		t.Errorf("expected rollback to leave 0 sessions, got %d", got)
	}
}

func TestImportFile_MissingFile(t *testing.T) {
	database := newTestDB(t)
	imp := New(database)

	if _, err := imp.ImportFile(filepath.Join(t.TempDir(), "nope.json"), false, nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}
