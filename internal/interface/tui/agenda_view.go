package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/schedule"
)

func (m Model) enterAgendaView() (tea.Model, tea.Cmd) {
	m.mode = agendaView
	m.viewport = viewport.New(m.width, m.height-2)
	m.viewport.SetContent(m.renderAgenda())
	return m, nil
}

func (m Model) renderAgenda() string {
	ids := m.agenda.IDs()
	if len(ids) == 0 {
		return "Nothing starred yet.\n\nPress 's' on a session in the list to star it."
	}

	sessions, err := m.db.ListSessions(db.ListFilter{IDs: ids})
	if err != nil {
		return "Error loading agenda: " + err.Error()
	}
	conflicts := schedule.ConflictsByDay(sessions)

	width := m.width
	if width < 40 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("My Agenda") + "\n")
	b.WriteString(strings.Repeat("─", width) + "\n")

	conflictCount := 0
	currentDay := ""
	for _, s := range sessions {
		if s.DayID != currentDay {
			currentDay = s.DayID
			header := s.DayLabel
			if s.DayDate != "" {
				header += " (" + s.DayDate + ")"
			}
			b.WriteString("\n" + dayHeaderStyle.Render(header) + "\n")
		}

		line := "  ★ "
		if tr := s.TimeRange(); tr != "" {
			line += fmt.Sprintf("%-13s", tr)
		} else {
			line += fmt.Sprintf("%-13s", "--:--")
		}
		line += s.Title
		b.WriteString(line)

		var meta []string
		if s.Track != "" {
			meta = append(meta, s.Track)
		}
		if s.Room != "" {
			meta = append(meta, s.Room)
		}
		if len(meta) > 0 {
			b.WriteString(metaStyle.Render("  [" + strings.Join(meta, ", ") + "]"))
		}

		if conflicts[s.SessionID] {
			conflictCount++
			b.WriteString(conflictBadgeStyle.Render("  CONFLICT"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + strings.Repeat("─", width) + "\n")
	summary := fmt.Sprintf("%d session(s) starred", len(sessions))
	if conflictCount > 0 {
		summary += conflictBadgeStyle.Render(fmt.Sprintf("  %d with time conflicts", conflictCount))
	}
	b.WriteString(summary + "\n")

	if missing := len(ids) - len(sessions); missing > 0 {
		b.WriteString(metaStyle.Render(fmt.Sprintf("%d starred session(s) are not in the current program\n", missing)))
	}

	b.WriteString(metaStyle.Render("Share: "+m.agenda.ShareURL()) + "\n")

	return b.String()
}

func (m Model) updateAgenda(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "a":
		m.mode = listView
		return m, nil

	case "c":
		return m, copyToClipboard(m.agenda.ShareURL(), "Share link")

	case "j", "down":
		m.viewport.LineDown(1)
		return m, nil

	case "k", "up":
		m.viewport.LineUp(1)
		return m, nil

	case "d":
		m.viewport.HalfViewDown()
		return m, nil

	case "u":
		m.viewport.HalfViewUp()
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewAgenda() string {
	helpText := "c copy share link • j/k scroll • esc back • q quit"
	if m.status != "" {
		helpText = statusStyle.Render(m.status)
	}
	return m.viewport.View() + "\n" + helpText
}
