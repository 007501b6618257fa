package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/config"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/schedule"
	"github.com/confsched/confsched/internal/core/search"
	"github.com/confsched/confsched/internal/core/sharelink"
)

// SearchProgramArgs defines arguments for the search_program tool
type SearchProgramArgs struct {
	Query string `json:"query" jsonschema:"description=Search query with optional day:/track:/room:/starred: filters,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max number of results to return (default: 20)"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"description=Session ID (or unique prefix) to retrieve,required"`
}

// ToggleStarArgs defines arguments for the toggle_star tool
type ToggleStarArgs struct {
	SessionID string `json:"session_id" jsonschema:"description=Session ID (or unique prefix) to star or unstar,required"`
}

// ShareLinkArgs defines arguments for the share_link tool
type ShareLinkArgs struct {
	Link string `json:"link,omitempty" jsonschema:"description=Share link to adopt before returning the current one"`
}

// SearchMatch represents one search result
type SearchMatch struct {
	SessionID   string `json:"session_id"`
	Title       string `json:"title"`
	Day         string `json:"day"`
	Date        string `json:"date,omitempty"`
	TimeRange   string `json:"time_range,omitempty"`
	Track       string `json:"track,omitempty"`
	Room        string `json:"room,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	MatchedItem string `json:"matched_item,omitempty"`
	Starred     bool   `json:"starred"`
}

// SessionInfo represents a session with its papers and talks
type SessionInfo struct {
	SessionID string     `json:"session_id"`
	Title     string     `json:"title"`
	Day       string     `json:"day"`
	Date      string     `json:"date,omitempty"`
	TimeRange string     `json:"time_range,omitempty"`
	Track     string     `json:"track,omitempty"`
	Room      string     `json:"room,omitempty"`
	URL       string     `json:"url,omitempty"`
	Starred   bool       `json:"starred"`
	Conflict  bool       `json:"conflict"`
	Items     []ItemInfo `json:"items,omitempty"`
}

// ItemInfo represents a paper or talk within a session
type ItemInfo struct {
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	URL     string `json:"url,omitempty"`
}

// AgendaEntry represents one starred session in the agenda listing
type AgendaEntry struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Day       string `json:"day"`
	Date      string `json:"date,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Room      string `json:"room,omitempty"`
	Conflict  bool   `json:"conflict"`
}

// StartServer starts the MCP server over stdio
func StartServer(dbPath, link string, linkPresent bool) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	code, _ := sharelink.ExtractCode(link)
	ag := agenda.Open(database.AgendaStore(), cfg.ShareBaseURL, code, linkPresent)

	s := server.NewMCPServer(
		"confsched",
		"1.0.0",
	)

	searchTool := mcp.NewTool("search_program",
		mcp.WithDescription("Search the conference program by full text over session titles, paper titles and authors. The query accepts day:, track:, room:, starred:, on:, after: and before: filters."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query, e.g. 'fuzzing day:tuesday' or 'starred:only'")),
		mcp.WithNumber("limit",
			mcp.Description("Max number of results to return (default: 20)")),
	)
	s.AddTool(searchTool, makeSearchProgramHandler(database, ag))

	sessionTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve one session with its papers and talks, star state, and whether it conflicts with another starred session"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session ID (or unique prefix) to retrieve")),
	)
	s.AddTool(sessionTool, makeGetSessionHandler(database, ag))

	agendaTool := mcp.NewTool("get_agenda",
		mcp.WithDescription("Get the starred agenda grouped by day, with time-overlap conflicts flagged and the share link"),
	)
	s.AddTool(agendaTool, makeGetAgendaHandler(database, ag))

	toggleTool := mcp.NewTool("toggle_star",
		mcp.WithDescription("Star a session if it is not starred, or unstar it if it is. Returns the resulting star state."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session ID (or unique prefix) to star or unstar")),
	)
	s.AddTool(toggleTool, makeToggleStarHandler(database, ag))

	shareTool := mcp.NewTool("share_link",
		mcp.WithDescription("Return the share link for the starred agenda. If a link is passed it is adopted first; links carrying no agenda are rejected and leave the current set untouched."),
		mcp.WithString("link",
			mcp.Description("Share link to adopt before returning the current one")),
	)
	s.AddTool(shareTool, makeShareLinkHandler(ag))

	return server.ServeStdio(s)
}

func makeSearchProgramHandler(database *db.DB, ag *agenda.Set) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchProgramArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		coreResults, err := search.Search(database, args.Query, ag.IDs())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		if len(coreResults) > limit {
			coreResults = coreResults[:limit]
		}

		results := make([]SearchMatch, 0, len(coreResults))
		for _, res := range coreResults {
			results = append(results, SearchMatch{
				SessionID:   res.SessionID,
				Title:       res.Title,
				Day:         res.DayLabel,
				Date:        res.DayDate,
				TimeRange:   timeRange(res.Start, res.End),
				Track:       res.Track,
				Room:        res.Room,
				Snippet:     res.Snippet,
				MatchedItem: res.MatchedItem,
				Starred:     ag.Contains(res.SessionID),
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"results": results,
			"count":   len(results),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetSessionHandler(database *db.DB, ag *agenda.Set) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		id, err := database.ResolveSessionID(args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		detail, err := database.GetSessionDetail(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("session not found: %v", err)), nil
		}

		info := SessionInfo{
			SessionID: detail.SessionID,
			Title:     detail.Title,
			Day:       detail.DayLabel,
			Date:      detail.DayDate,
			TimeRange: detail.TimeRange(),
			Track:     detail.Track,
			Room:      detail.Room,
			URL:       detail.URL,
			Starred:   ag.Contains(detail.SessionID),
		}
		if info.Starred {
			info.Conflict = starredConflicts(database, ag)[detail.SessionID]
		}
		for _, item := range detail.Items {
			info.Items = append(info.Items, ItemInfo{
				Title:   item.Title,
				Authors: item.Authors,
				URL:     item.URL,
			})
		}

		resultJSON, err := json.Marshal(info)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetAgendaHandler(database *db.DB, ag *agenda.Set) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := ag.IDs()

		sessions, err := database.ListSessions(db.ListFilter{IDs: ids})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}
		conflicts := schedule.ConflictsByDay(sessions)

		entries := make([]AgendaEntry, 0, len(sessions))
		conflictCount := 0
		for _, s := range sessions {
			if conflicts[s.SessionID] {
				conflictCount++
			}
			entries = append(entries, AgendaEntry{
				SessionID: s.SessionID,
				Title:     s.Title,
				Day:       s.DayLabel,
				Date:      s.DayDate,
				TimeRange: s.TimeRange(),
				Room:      s.Room,
				Conflict:  conflicts[s.SessionID],
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"sessions":       entries,
			"starred_count":  len(ids),
			"conflict_count": conflictCount,
			"share_url":      ag.ShareURL(),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeToggleStarHandler(database *db.DB, ag *agenda.Set) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ToggleStarArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		id, err := database.ResolveSessionID(args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		starred := ag.Toggle(id)

		conflict := false
		if starred {
			conflict = starredConflicts(database, ag)[id]
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"session_id": id,
			"starred":    starred,
			"conflict":   conflict,
			"count":      ag.Len(),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeShareLinkHandler(ag *agenda.Set) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ShareLinkArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		if args.Link != "" {
			code, _ := sharelink.ExtractCode(args.Link)
			if !ag.Adopt(code) {
				return mcp.NewToolResultError("link carries no agenda"), nil
			}
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"url":   ag.ShareURL(),
			"count": ag.Len(),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

// starredConflicts computes the conflict map over the current starred set.
func starredConflicts(database *db.DB, ag *agenda.Set) map[string]bool {
	sessions, err := database.ListSessions(db.ListFilter{IDs: ag.IDs()})
	if err != nil {
		return map[string]bool{}
	}
	return schedule.ConflictsByDay(sessions)
}

func timeRange(start, end string) string {
	s := models.Session{Start: start, End: end}
	return s.TimeRange()
}
