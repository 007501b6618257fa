package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/pkg/confprogram"
)

// Importer loads program datasets into the database
type Importer struct {
	db *db.DB
}

// New creates a new importer
func New(database *db.DB) *Importer {
	return &Importer{db: database}
}

// Result summarizes one import run
type Result struct {
	Days     int
	Sessions int
	Items    int
	FileHash string
	Skipped  bool // identical file already imported
}

// ImportFile parses a dataset file and loads it as the current program
// snapshot. A file whose hash matches a previous successful import is
// skipped unless force is set.
func (i *Importer) ImportFile(path string, force bool, progress *ProgressReporter) (*Result, error) {
	hash, err := computeFileHash(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash file: %w", err)
	}

	if !force {
		var exists bool
		err = i.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM import_log WHERE file_hash = ? AND status = 'success')
		`, hash).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check import log: %w", err)
		}
		if exists {
			return &Result{FileHash: hash, Skipped: true}, nil
		}
	}

	program, err := confprogram.ParseFile(path)
	if err != nil {
		return nil, err
	}

	result, err := i.importProgram(program, path, hash, progress)
	if err != nil {
		_, _ = i.db.Exec(`
			INSERT INTO import_log (file_path, file_hash, status, error_message)
			VALUES (?, ?, 'failed', ?)
		`, path, hash, err.Error())
		return nil, err
	}

	// Record dataset provenance for the stats and API surfaces
	meta := models.Meta{
		SourceURL:   program.Meta.SourceURL,
		GeneratedAt: program.Meta.GeneratedTime(),
		RawSHA256:   program.Meta.RawHTMLSHA256,
		DatasetPath: path,
		LoadedAt:    time.Now(),
	}
	if err := i.db.SetProgramMeta(meta); err != nil {
		return nil, fmt.Errorf("failed to record dataset meta: %w", err)
	}

	return result, nil
}

// importProgram replaces the stored snapshot with the parsed program inside
// one transaction. A dataset is a full point-in-time export, so the previous
// rows are dropped rather than merged.
func (i *Importer) importProgram(program *confprogram.Program, path, hash string, progress *ProgressReporter) (*Result, error) {
	tx, err := i.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM days`); err != nil {
		return nil, fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	result := &Result{FileHash: hash}
	for dayPos, day := range program.Days {
		dayInsert, err := tx.Exec(`
			INSERT INTO days (day_id, label, date, position)
			VALUES (?, ?, ?, ?)
		`, day.DayID, day.Label, day.Date, dayPos)
		if err != nil {
			return nil, fmt.Errorf("failed to insert day %s: %w", day.Label, err)
		}
		dayRowID, err := dayInsert.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get day ID: %w", err)
		}
		result.Days++

		for sessionPos, session := range day.Sessions {
			sessionInsert, err := tx.Exec(`
				INSERT INTO sessions (
					session_id, day_id, start_time, end_time,
					track, room, title, url, position
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				session.SessionID,
				dayRowID,
				session.Start,
				session.End,
				session.Track,
				session.Room,
				session.Title,
				session.URL,
				sessionPos,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert session %s: %w", session.SessionID, err)
			}
			sessionRowID, err := sessionInsert.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("failed to get session ID: %w", err)
			}
			result.Sessions++

			for itemPos, item := range session.Items {
				_, err := tx.Exec(`
					INSERT INTO items (item_id, session_id, title, url, authors, position)
					VALUES (?, ?, ?, ?, ?, ?)
				`, item.ItemID, sessionRowID, item.Title, item.URL, item.Authors, itemPos)
				if err != nil {
					return nil, fmt.Errorf("failed to insert item %s: %w", item.ItemID, err)
				}
				result.Items++
			}

			if progress != nil {
				progress.Update(day.Label, session.Title)
			}
		}
	}

	_, err = tx.Exec(`
		INSERT INTO import_log (file_path, file_hash, days_imported, sessions_imported, items_imported, status)
		VALUES (?, ?, ?, ?, ?, 'success')
	`, path, hash, result.Days, result.Sessions, result.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return result, nil
}

func computeFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
