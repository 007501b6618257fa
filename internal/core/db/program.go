package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/confsched/confsched/internal/core/models"
)

// ListDays returns all days in program order with session counts
func (db *DB) ListDays() ([]models.Day, error) {
	rows, err := db.Query(`
		SELECT
			d.id,
			d.day_id,
			d.label,
			COALESCE(d.date, ''),
			d.position,
			(SELECT COUNT(*) FROM sessions WHERE day_id = d.id) as session_count
		FROM days d
		ORDER BY d.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []models.Day
	for rows.Next() {
		var d models.Day
		if err := rows.Scan(&d.ID, &d.DayID, &d.Label, &d.Date, &d.Position, &d.SessionCount); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// ListFilter narrows ListSessions results. Zero values mean "no filter".
type ListFilter struct {
	DayID string   // stable day ID, exact match
	Track string   // substring match
	Room  string   // substring match
	IDs   []string // restrict to these session IDs
}

const sessionColumns = `
	s.id,
	s.session_id,
	d.day_id,
	d.label,
	COALESCE(d.date, ''),
	COALESCE(s.start_time, ''),
	COALESCE(s.end_time, ''),
	COALESCE(s.track, ''),
	COALESCE(s.room, ''),
	s.title,
	COALESCE(s.url, ''),
	s.position,
	(SELECT COUNT(*) FROM items WHERE session_id = s.id) as item_count`

func scanSession(rows *sql.Rows) (models.Session, error) {
	var s models.Session
	err := rows.Scan(
		&s.ID,
		&s.SessionID,
		&s.DayID,
		&s.DayLabel,
		&s.DayDate,
		&s.Start,
		&s.End,
		&s.Track,
		&s.Room,
		&s.Title,
		&s.URL,
		&s.Position,
		&s.ItemCount,
	)
	return s, err
}

// ListSessions returns sessions in program order, optionally filtered
func (db *DB) ListSessions(filter ListFilter) ([]models.Session, error) {
	query := `
		SELECT` + sessionColumns + `
		FROM sessions s
		JOIN days d ON d.id = s.day_id
		WHERE 1=1`

	args := []interface{}{}
	if filter.DayID != "" {
		query += " AND d.day_id = ?"
		args = append(args, filter.DayID)
	}
	if filter.Track != "" {
		query += " AND s.track LIKE ?"
		args = append(args, "%"+filter.Track+"%")
	}
	if filter.Room != "" {
		query += " AND s.room LIKE ?"
		args = append(args, "%"+filter.Room+"%")
	}
	if len(filter.IDs) > 0 {
		placeholders := strings.Repeat("?,", len(filter.IDs))
		query += " AND s.session_id IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}

	query += `
		ORDER BY d.position ASC, s.position ASC
	`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetSessionDetail returns full details for a single session including items
func (db *DB) GetSessionDetail(sessionID string) (*models.SessionDetail, error) {
	var s models.Session
	err := db.QueryRow(`
		SELECT`+sessionColumns+`
		FROM sessions s
		JOIN days d ON d.id = s.day_id
		WHERE s.session_id = ?
	`, sessionID).Scan(
		&s.ID,
		&s.SessionID,
		&s.DayID,
		&s.DayLabel,
		&s.DayDate,
		&s.Start,
		&s.End,
		&s.Track,
		&s.Room,
		&s.Title,
		&s.URL,
		&s.Position,
		&s.ItemCount,
	)
	if err != nil {
		return nil, err
	}

	detail := &models.SessionDetail{Session: s}

	itemRows, err := db.Query(`
		SELECT
			i.id,
			i.item_id,
			i.title,
			COALESCE(i.url, ''),
			COALESCE(i.authors, ''),
			i.position
		FROM items i
		WHERE i.session_id = ?
		ORDER BY i.position ASC
	`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		err := itemRows.Scan(
			&item.ID,
			&item.ItemID,
			&item.Title,
			&item.URL,
			&item.Authors,
			&item.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.SessionID = s.SessionID
		detail.Items = append(detail.Items, item)
	}

	return detail, itemRows.Err()
}

// ResolveSessionID expands a session-ID prefix to the full stable ID.
// An exact match always wins; otherwise the prefix must be unambiguous.
func (db *DB) ResolveSessionID(prefix string) (string, error) {
	var exact string
	err := db.QueryRow(`SELECT session_id FROM sessions WHERE session_id = ?`, prefix).Scan(&exact)
	if err == nil {
		return exact, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("resolve session id: %w", err)
	}

	rows, err := db.Query(`SELECT session_id FROM sessions WHERE session_id LIKE ? LIMIT 3`, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("resolve session id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no session matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous", prefix)
	}
}

// ListTracks returns the distinct non-empty track labels in program order
func (db *DB) ListTracks() ([]string, error) {
	return db.listDistinct("track")
}

// ListRooms returns the distinct non-empty room labels in program order
func (db *DB) ListRooms() ([]string, error) {
	return db.listDistinct("room")
}

func (db *DB) listDistinct(column string) ([]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT ` + column + ` FROM sessions
		WHERE ` + column + ` IS NOT NULL AND ` + column + ` != ''
		ORDER BY ` + column + ` ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query %s labels: %w", column, err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}
