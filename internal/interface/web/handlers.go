package web

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/schedule"
	"github.com/confsched/confsched/internal/core/search"
	"github.com/confsched/confsched/internal/core/sharelink"
)

type Handler struct {
	db     *db.DB
	agenda *agenda.Set
}

func NewHandler(database *db.DB, ag *agenda.Set) *Handler {
	return &Handler{db: database, agenda: ag}
}

type dayJSON struct {
	DayID        string `json:"day_id"`
	Label        string `json:"label"`
	Date         string `json:"date,omitempty"`
	SessionCount int    `json:"session_count"`
}

type sessionJSON struct {
	SessionID string `json:"session_id"`
	DayID     string `json:"day_id"`
	DayLabel  string `json:"day_label"`
	DayDate   string `json:"day_date,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Track     string `json:"track,omitempty"`
	Room      string `json:"room,omitempty"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	ItemCount int    `json:"item_count"`
	Starred   bool   `json:"starred"`
	Conflict  bool   `json:"conflict,omitempty"`
}

type itemJSON struct {
	ItemID  string `json:"item_id"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Authors string `json:"authors,omitempty"`
}

func (h *Handler) toSessionJSON(s models.Session, conflicts map[string]bool) sessionJSON {
	return sessionJSON{
		SessionID: s.SessionID,
		DayID:     s.DayID,
		DayLabel:  s.DayLabel,
		DayDate:   s.DayDate,
		Start:     s.Start,
		End:       s.End,
		Track:     s.Track,
		Room:      s.Room,
		Title:     s.Title,
		URL:       s.URL,
		ItemCount: s.ItemCount,
		Starred:   h.agenda.Contains(s.SessionID),
		Conflict:  conflicts[s.SessionID],
	}
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var sessions int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessions); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": sessions,
	})
}

// Program handles GET /api/program
func (h *Handler) Program(w http.ResponseWriter, r *http.Request) {
	meta, err := h.db.GetProgramMeta()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := h.db.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"days":     stats.TotalDays,
		"sessions": stats.TotalSessions,
		"items":    stats.TotalItems,
	}
	if meta.SourceURL != "" {
		resp["source_url"] = meta.SourceURL
	}
	if !meta.GeneratedAt.IsZero() {
		resp["generated_at"] = meta.GeneratedAt.Format(time.RFC3339)
	}
	if !meta.LoadedAt.IsZero() {
		resp["loaded_at"] = meta.LoadedAt.Format(time.RFC3339)
	}
	if stats.FirstDate != "" {
		resp["first_date"] = stats.FirstDate
		resp["last_date"] = stats.LastDate
	}

	writeJSON(w, http.StatusOK, resp)
}

// Days handles GET /api/days
func (h *Handler) Days(w http.ResponseWriter, r *http.Request) {
	days, err := h.db.ListDays()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dayJSON, 0, len(days))
	for _, d := range days {
		out = append(out, dayJSON{
			DayID:        d.DayID,
			Label:        d.Label,
			Date:         d.Date,
			SessionCount: d.SessionCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": out})
}

// DaySessions handles GET /api/days/{day}/sessions
func (h *Handler) DaySessions(w http.ResponseWriter, r *http.Request) {
	dayParam := chi.URLParam(r, "day")

	days, err := h.db.ListDays()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var day *models.Day
	for i := range days {
		if days[i].DayID == dayParam || days[i].Date == dayParam ||
			strings.EqualFold(days[i].Label, dayParam) {
			day = &days[i]
			break
		}
	}
	if day == nil {
		writeError(w, http.StatusNotFound, "day not found")
		return
	}

	sessions, err := h.db.ListSessions(db.ListFilter{DayID: day.DayID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]sessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, h.toSessionJSON(s, nil))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":      dayJSON{DayID: day.DayID, Label: day.Label, Date: day.Date, SessionCount: day.SessionCount},
		"sessions": out,
	})
}

// Session handles GET /api/sessions/{id}
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	id, err := h.db.ResolveSessionID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	detail, err := h.db.GetSessionDetail(id)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]itemJSON, 0, len(detail.Items))
	for _, it := range detail.Items {
		items = append(items, itemJSON{
			ItemID:  it.ItemID,
			Title:   it.Title,
			URL:     it.URL,
			Authors: it.Authors,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": h.toSessionJSON(detail.Session, nil),
		"items":   items,
	})
}

// Search handles GET /api/search?q=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := search.Search(h.db, query, h.agenda.IDs())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	type resultJSON struct {
		SessionID   string `json:"session_id"`
		Title       string `json:"title"`
		DayLabel    string `json:"day_label"`
		DayDate     string `json:"day_date,omitempty"`
		Start       string `json:"start,omitempty"`
		End         string `json:"end,omitempty"`
		Track       string `json:"track,omitempty"`
		Room        string `json:"room,omitempty"`
		Snippet     string `json:"snippet,omitempty"`
		MatchedItem string `json:"matched_item,omitempty"`
		Starred     bool   `json:"starred"`
	}

	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, resultJSON{
			SessionID:   res.SessionID,
			Title:       res.Title,
			DayLabel:    res.DayLabel,
			DayDate:     res.DayDate,
			Start:       res.Start,
			End:         res.End,
			Track:       res.Track,
			Room:        res.Room,
			Snippet:     res.Snippet,
			MatchedItem: res.MatchedItem,
			Starred:     h.agenda.Contains(res.SessionID),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(out),
		"results": out,
	})
}

// Agenda handles GET /api/agenda
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	ids := h.agenda.IDs()

	sessions, err := h.db.ListSessions(db.ListFilter{IDs: ids})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	conflicts := schedule.ConflictsByDay(sessions)

	type agendaDayJSON struct {
		DayID    string        `json:"day_id"`
		Label    string        `json:"label"`
		Date     string        `json:"date,omitempty"`
		Sessions []sessionJSON `json:"sessions"`
	}

	var days []agendaDayJSON
	currentDay := ""
	for _, s := range sessions {
		if s.DayID != currentDay {
			currentDay = s.DayID
			days = append(days, agendaDayJSON{DayID: s.DayID, Label: s.DayLabel, Date: s.DayDate})
		}
		last := &days[len(days)-1]
		last.Sessions = append(last.Sessions, h.toSessionJSON(s, conflicts))
	}

	conflictIDs := make([]string, 0, len(conflicts))
	for _, id := range ids {
		if conflicts[id] {
			conflictIDs = append(conflictIDs, id)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":          days,
		"starred_count": len(ids),
		"conflict_ids":  conflictIDs,
		"share_url":     h.agenda.ShareURL(),
	})
}

// Starred handles GET /api/starred
func (h *Handler) Starred(w http.ResponseWriter, r *http.Request) {
	ids := h.agenda.IDs()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ids":   ids,
		"count": len(ids),
	})
}

// ToggleStar handles POST /api/starred/{id}/toggle
func (h *Handler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	id, err := h.db.ResolveSessionID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	starred := h.agenda.Toggle(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": id,
		"starred":    starred,
		"count":      h.agenda.Len(),
	})
}

// ClearStarred handles DELETE /api/starred
func (h *Handler) ClearStarred(w http.ResponseWriter, r *http.Request) {
	cleared := h.agenda.Len()
	h.agenda.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{"cleared": cleared})
}

// Share handles GET /api/share
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":   h.agenda.ShareURL(),
		"count": h.agenda.Len(),
	})
}

// AdoptShare handles POST /api/share/adopt. The posted link replaces the
// starred set only when it decodes to a non-empty set; an empty or garbage
// link is rejected so it cannot wipe a saved agenda.
func (h *Handler) AdoptShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Link string `json:"link"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	code, _ := sharelink.ExtractCode(req.Link)
	if !h.agenda.Adopt(code) {
		writeError(w, http.StatusUnprocessableEntity, "link carries no agenda")
		return
	}

	ids := h.agenda.IDs()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ids":   ids,
		"count": len(ids),
	})
}
