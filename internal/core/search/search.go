package search

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/confsched/confsched/internal/core/db"
)

// Result represents a single search hit resolved to its session
type Result struct {
	SessionID   string
	Title       string
	DayLabel    string
	DayDate     string
	Start       string
	End         string
	Track       string
	Room        string
	Snippet     string
	MatchedItem string // set when the hit came from a paper or talk inside the session
}

const searchLimit = 200

// Characters the FTS5 query parser treats as operators or string syntax.
// Queries containing them fall back to LIKE substring matching.
const ftsHostileChars = `-_@#$%&"'()`

const resultColumns = `
	s.session_id,
	s.title,
	d.label,
	COALESCE(d.date, ''),
	COALESCE(s.start_time, ''),
	COALESCE(s.end_time, ''),
	COALESCE(s.track, ''),
	COALESCE(s.room, '')`

// Search runs a query against the program. Free text matches session
// titles, tracks and rooms plus item titles and authors. Sessions that
// match directly are listed before sessions found through their items,
// both in program order. starredIDs backs the starred: filter.
func Search(database *db.DB, rawQuery string, starredIDs []string) ([]Result, error) {
	filters := ParseQuery(rawQuery)
	if filters.Text == "" && !filters.HasConstraints() {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	if filters.Starred && len(starredIDs) == 0 {
		return nil, nil
	}

	conds, condArgs := filterClauses(filters, starredIDs)

	// Filter-only query: list matching sessions in program order
	if filters.Text == "" {
		where := "1=1"
		if len(conds) > 0 {
			where = strings.Join(conds, " AND ")
		}
		rows, err := database.Query(fmt.Sprintf(`
			SELECT %s, ''
			FROM sessions s
			JOIN days d ON d.id = s.day_id
			WHERE %s
			ORDER BY d.position, s.position
			LIMIT ?
		`, resultColumns, where), append(condArgs, searchLimit)...)
		if err != nil {
			return nil, fmt.Errorf("search query failed: %w", err)
		}
		return scanResults(rows, false)
	}

	andConds := ""
	if len(conds) > 0 {
		andConds = " AND " + strings.Join(conds, " AND ")
	}

	if strings.ContainsAny(filters.Text, ftsHostileChars) {
		return searchLike(database, filters.Text, andConds, condArgs)
	}
	return searchFTS(database, filters.Text, andConds, condArgs)
}

// searchFTS queries the FTS5 tables with snippet extraction
func searchFTS(database *db.DB, text, andConds string, condArgs []interface{}) ([]Result, error) {
	args := append([]interface{}{text}, condArgs...)
	args = append(args, searchLimit)

	sessionRows, err := database.Query(fmt.Sprintf(`
		SELECT %s,
			snippet(sessions_fts, -1, '', '', '...', 64)
		FROM sessions_fts
		JOIN sessions s ON sessions_fts.rowid = s.id
		JOIN days d ON d.id = s.day_id
		WHERE sessions_fts MATCH ?%s
		ORDER BY d.position, s.position
		LIMIT ?
	`, resultColumns, andConds), args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	sessionHits, err := scanResults(sessionRows, false)
	if err != nil {
		return nil, err
	}

	itemRows, err := database.Query(fmt.Sprintf(`
		SELECT %s,
			snippet(items_fts, -1, '', '', '...', 64),
			i.title
		FROM items_fts
		JOIN items i ON items_fts.rowid = i.id
		JOIN sessions s ON s.id = i.session_id
		JOIN days d ON d.id = s.day_id
		WHERE items_fts MATCH ?%s
		ORDER BY d.position, s.position, i.position
		LIMIT ?
	`, resultColumns, andConds), args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	itemHits, err := scanResults(itemRows, true)
	if err != nil {
		return nil, err
	}

	return merge(sessionHits, itemHits), nil
}

// searchLike is the fallback for queries FTS5 cannot parse. It does exact
// substring matching over the same fields.
func searchLike(database *db.DB, text, andConds string, condArgs []interface{}) ([]Result, error) {
	sessionArgs := append([]interface{}{text, text, text}, condArgs...)
	sessionArgs = append(sessionArgs, searchLimit)

	sessionRows, err := database.Query(fmt.Sprintf(`
		SELECT %s, s.title
		FROM sessions s
		JOIN days d ON d.id = s.day_id
		WHERE (
			s.title LIKE '%%' || ? || '%%'
			OR COALESCE(s.track, '') LIKE '%%' || ? || '%%'
			OR COALESCE(s.room, '') LIKE '%%' || ? || '%%'
		)%s
		ORDER BY d.position, s.position
		LIMIT ?
	`, resultColumns, andConds), sessionArgs...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	sessionHits, err := scanResults(sessionRows, false)
	if err != nil {
		return nil, err
	}

	itemArgs := append([]interface{}{text, text}, condArgs...)
	itemArgs = append(itemArgs, searchLimit)

	itemRows, err := database.Query(fmt.Sprintf(`
		SELECT %s, i.title, i.title
		FROM items i
		JOIN sessions s ON s.id = i.session_id
		JOIN days d ON d.id = s.day_id
		WHERE (
			i.title LIKE '%%' || ? || '%%'
			OR COALESCE(i.authors, '') LIKE '%%' || ? || '%%'
		)%s
		ORDER BY d.position, s.position, i.position
		LIMIT ?
	`, resultColumns, andConds), itemArgs...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	itemHits, err := scanResults(itemRows, true)
	if err != nil {
		return nil, err
	}

	return merge(sessionHits, itemHits), nil
}

// filterClauses converts the structured filters into SQL conditions over
// the joined sessions (s) and days (d) tables
func filterClauses(f Filters, starredIDs []string) ([]string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Day != "" {
		conds = append(conds, "LOWER(d.label) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Day)
	}
	if f.HasOn {
		conds = append(conds, "d.date = ?")
		args = append(args, f.On.Format("2006-01-02"))
	}
	if f.HasAfter {
		conds = append(conds, "d.date >= ?")
		args = append(args, f.After.Format("2006-01-02"))
	}
	if f.HasBefore {
		conds = append(conds, "d.date <= ?")
		args = append(args, f.Before.Format("2006-01-02"))
	}
	if f.Track != "" {
		conds = append(conds, "LOWER(COALESCE(s.track, '')) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Track)
	}
	if f.Room != "" {
		conds = append(conds, "LOWER(COALESCE(s.room, '')) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Room)
	}
	if f.Starred {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(starredIDs)), ",")
		conds = append(conds, "s.session_id IN ("+placeholders+")")
		for _, id := range starredIDs {
			args = append(args, id)
		}
	}

	return conds, args
}

func scanResults(rows *sql.Rows, withItem bool) ([]Result, error) {
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var r Result
		var err error
		if withItem {
			err = rows.Scan(&r.SessionID, &r.Title, &r.DayLabel, &r.DayDate,
				&r.Start, &r.End, &r.Track, &r.Room, &r.Snippet, &r.MatchedItem)
		} else {
			err = rows.Scan(&r.SessionID, &r.Title, &r.DayLabel, &r.DayDate,
				&r.Start, &r.End, &r.Track, &r.Room, &r.Snippet)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// merge appends item hits whose session was not already matched directly
func merge(sessionHits, itemHits []Result) []Result {
	seen := make(map[string]bool, len(sessionHits))
	for _, r := range sessionHits {
		seen[r.SessionID] = true
	}

	results := sessionHits
	for _, r := range itemHits {
		if seen[r.SessionID] {
			continue
		}
		seen[r.SessionID] = true
		results = append(results, r)
	}
	return results
}

