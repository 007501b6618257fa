package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/confsched/confsched/internal/core/browser"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/search"
)

type errMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	sessions []models.Session
	meta     models.Meta
}

type sessionDetailLoadedMsg struct {
	detail models.SessionDetail
}

type searchResultsMsg struct {
	results []search.Result
}

type statusMsg struct {
	text string
}

type clearStatusMsg struct{}

// statusLingerTime is how long a transient status line stays visible.
const statusLingerTime = 2 * time.Second

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func loadSessions(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		sessions, err := database.ListSessions(db.ListFilter{})
		if err != nil {
			return errMsg{err}
		}
		meta, err := database.GetProgramMeta()
		if err != nil {
			return errMsg{err}
		}
		return sessionsLoadedMsg{sessions: sessions, meta: *meta}
	}
}

func loadSessionDetail(database *db.DB, sessionID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := database.GetSessionDetail(sessionID)
		if err != nil {
			return errMsg{err}
		}
		return sessionDetailLoadedMsg{detail: *detail}
	}
}

func performSearch(database *db.DB, query string, starredIDs []string) tea.Cmd {
	return func() tea.Msg {
		// Minimum 2 characters to search (avoid useless single-char results)
		if len(query) < 2 {
			return searchResultsMsg{results: nil}
		}

		results, err := search.Search(database, query, starredIDs)
		if err != nil {
			return searchResultsMsg{results: []search.Result{}}
		}
		return searchResultsMsg{results: results}
	}
}

func copyToClipboard(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: "Clipboard unavailable: " + err.Error()}
		}
		return statusMsg{text: label + " copied to clipboard"}
	}
}

func openInBrowser(url, customCommand string) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return statusMsg{text: "No page URL for this session"}
		}
		opener := &browser.Opener{CustomCommand: customCommand}
		if err := opener.Open(url); err != nil {
			return statusMsg{text: "Failed to open browser: " + err.Error()}
		}
		return statusMsg{text: "Opening " + url}
	}
}
