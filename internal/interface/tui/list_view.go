package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/models"
)

type sessionListItem struct {
	session models.Session
}

func (i sessionListItem) FilterValue() string {
	return i.session.Title + " " + i.session.Track + " " + i.session.Room
}

func (i sessionListItem) Title() string {
	return i.session.Title
}

func (i sessionListItem) Description() string {
	parts := []string{i.session.DayLabel}
	if tr := i.session.TimeRange(); tr != "" {
		parts = append(parts, tr)
	}
	if i.session.Track != "" {
		parts = append(parts, i.session.Track)
	}
	if i.session.Room != "" {
		parts = append(parts, i.session.Room)
	}
	return strings.Join(parts, " | ")
}

// sessionDelegate renders items with a live star badge so toggles show up
// without rebuilding the list.
type sessionDelegate struct {
	list.DefaultDelegate
	agenda *agenda.Set
}

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	s, ok := item.(sessionListItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	starred := d.agenda.Contains(s.session.SessionID)

	title := s.Title()
	if starred {
		title = starBadgeStyle.Render("★ ") + title
	} else {
		title = "  " + title
	}
	desc := "  " + s.Description()

	if index == m.Index() {
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	} else if starred {
		title = starredItemStyle.Render(title)
		desc = itemStyle.Render(desc)
	} else {
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createSessionList(sessions []models.Session, ag *agenda.Set, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionListItem{session: s}
	}

	delegate := sessionDelegate{DefaultDelegate: list.NewDefaultDelegate(), agenda: ag}

	l := list.New(items, delegate, width, height-3)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false) // Dedicated search view on /

	return l
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			return m, loadSessionDetail(m.db, selected.session.SessionID)
		}
		return m, nil

	case "s":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			if m.agenda.Toggle(selected.session.SessionID) {
				m.status = "Starred: " + selected.session.Title
			} else {
				m.status = "Unstarred: " + selected.session.Title
			}
			return m, clearStatusAfter(statusLingerTime)
		}
		return m, nil

	case "o":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			return m, openInBrowser(selected.session.URL, m.cfg.BrowserCommand)
		}
		return m, nil

	case "a":
		return m.enterAgendaView()

	case "c":
		return m, copyToClipboard(m.agenda.ShareURL(), "Share link")

	case "/":
		m.mode = searchView
		m.searchInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	helpText := "↑/k up • ↓/j down • enter details • s star • a agenda • / search • q quit • ? more"
	if m.status != "" {
		helpText = statusStyle.Render(m.status)
	}

	if len(m.sessions) == 0 {
		return "No program loaded. Run 'confsched fetch' first.\n\n" + helpText
	}

	header := titleStyle.Render("Program") + metaStyle.Render(fmt.Sprintf("  %d sessions", len(m.sessions)))
	if !m.meta.GeneratedAt.IsZero() {
		header += metaStyle.Render(" · generated " + humanize.Time(m.meta.GeneratedAt))
	}

	return header + "\n" + m.list.View() + "\n" + helpText
}
