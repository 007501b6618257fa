package db

import (
	"database/sql"
	"os"
	"time"
)

// Stats represents database statistics
type Stats struct {
	TotalDays     int
	TotalSessions int
	TotalItems    int
	TotalTracks   int
	TotalRooms    int
	FirstDate     string
	LastDate      string
	LastImportAt  time.Time
	DatabaseSize  int64
}

// GetStats returns comprehensive database statistics
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := db.QueryRow("SELECT COUNT(*) FROM days").Scan(&stats.TotalDays)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&stats.TotalSessions)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM items").Scan(&stats.TotalItems)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT track) FROM sessions WHERE track IS NOT NULL AND track != ''
	`).Scan(&stats.TotalTracks)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT room) FROM sessions WHERE room IS NOT NULL AND room != ''
	`).Scan(&stats.TotalRooms)
	if err != nil {
		return nil, err
	}

	// Date range (only if we have days with dates)
	if stats.TotalDays > 0 {
		var first, last sql.NullString
		err = db.QueryRow(`
			SELECT MIN(date), MAX(date) FROM days WHERE date IS NOT NULL AND date != ''
		`).Scan(&first, &last)
		if err != nil {
			return nil, err
		}
		if first.Valid {
			stats.FirstDate = first.String
		}
		if last.Valid {
			stats.LastDate = last.String
		}
	}

	// Most recent successful import
	var importedAt sql.NullString
	err = db.QueryRow(`
		SELECT MAX(imported_at) FROM import_log WHERE status = 'success'
	`).Scan(&importedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if importedAt.Valid {
		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02 15:04:05.999999999 -0700 MST",
			"2006-01-02 15:04:05",
		}
		for _, format := range formats {
			if t, parseErr := time.Parse(format, importedAt.String); parseErr == nil {
				stats.LastImportAt = t
				break
			}
		}
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.DatabaseSize = info.Size()
	}

	return stats, nil
}
