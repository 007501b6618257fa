package db

import (
	"fmt"
	"time"

	"github.com/confsched/confsched/internal/core/models"
)

// program_meta keys
const (
	metaSourceURL   = "source_url"
	metaGeneratedAt = "generated_at"
	metaRawSHA256   = "raw_sha256"
	metaDatasetPath = "dataset_path"
	metaLoadedAt    = "loaded_at"
)

// SetProgramMeta records the provenance of the currently loaded dataset
func (db *DB) SetProgramMeta(meta models.Meta) error {
	pairs := map[string]string{
		metaSourceURL:   meta.SourceURL,
		metaRawSHA256:   meta.RawSHA256,
		metaDatasetPath: meta.DatasetPath,
	}
	if !meta.GeneratedAt.IsZero() {
		pairs[metaGeneratedAt] = meta.GeneratedAt.UTC().Format(time.RFC3339)
	}
	if !meta.LoadedAt.IsZero() {
		pairs[metaLoadedAt] = meta.LoadedAt.UTC().Format(time.RFC3339)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for key, value := range pairs {
		_, err := tx.Exec(`
			INSERT INTO program_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("write meta %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// GetProgramMeta returns the provenance of the currently loaded dataset.
// Fields missing from the table stay zero-valued.
func (db *DB) GetProgramMeta() (*models.Meta, error) {
	rows, err := db.Query(`SELECT key, value FROM program_meta`)
	if err != nil {
		return nil, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()

	meta := &models.Meta{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		switch key {
		case metaSourceURL:
			meta.SourceURL = value
		case metaRawSHA256:
			meta.RawSHA256 = value
		case metaDatasetPath:
			meta.DatasetPath = value
		case metaGeneratedAt:
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				meta.GeneratedAt = t
			}
		case metaLoadedAt:
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				meta.LoadedAt = t
			}
		}
	}

	return meta, rows.Err()
}
