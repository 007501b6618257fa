package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/schedule"
)

func createDetailViewport(m Model, detail models.SessionDetail) viewport.Model {
	vp := viewport.New(m.width, m.height-2)
	vp.SetContent(renderSessionDetail(m, detail))
	return vp
}

func renderSessionDetail(m Model, detail models.SessionDetail) string {
	var b strings.Builder

	width := m.width
	if width < 40 {
		width = 80
	}

	title := detail.Title
	if m.agenda.Contains(detail.SessionID) {
		title = starBadgeStyle.Render("★ ") + title
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	when := detail.DayLabel
	if tr := detail.TimeRange(); tr != "" {
		when += " " + tr
	}
	if detail.DayDate != "" {
		when += " (" + detail.DayDate + ")"
	}
	b.WriteString(when + "\n")

	if detail.Track != "" {
		b.WriteString(trackStyle.Render(detail.Track) + "\n")
	}
	if detail.Room != "" {
		b.WriteString("Room: " + detail.Room + "\n")
	}
	if detail.URL != "" {
		b.WriteString(metaStyle.Render(detail.URL) + "\n")
	}
	b.WriteString(metaStyle.Render("ID: "+detail.SessionID) + "\n")

	if m.agenda.Contains(detail.SessionID) && m.starredConflicts()[detail.SessionID] {
		b.WriteString(conflictBadgeStyle.Render("Conflicts with another starred session") + "\n")
	}

	b.WriteString(strings.Repeat("─", width) + "\n\n")

	if len(detail.Items) == 0 {
		b.WriteString(metaStyle.Render("No papers or talks listed for this session.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Papers and talks (%d):\n\n", len(detail.Items)))

		wrapWidth := width - 6
		if wrapWidth < 40 {
			wrapWidth = 40
		}
		for i, item := range detail.Items {
			b.WriteString(fmt.Sprintf("%2d. ", i+1))
			b.WriteString(wordwrap.String(item.Title, wrapWidth))
			b.WriteString("\n")
			if item.Authors != "" {
				b.WriteString("    " + metaStyle.Render(wordwrap.String(item.Authors, wrapWidth)))
				b.WriteString("\n")
			}
			if item.URL != "" {
				b.WriteString("    " + metaStyle.Render(item.URL))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// starredConflicts computes the conflict map over the starred set.
func (m Model) starredConflicts() map[string]bool {
	sessions, err := m.db.ListSessions(db.ListFilter{IDs: m.agenda.IDs()})
	if err != nil {
		return map[string]bool{}
	}
	return schedule.ConflictsByDay(sessions)
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = listView
		return m, nil

	case "s":
		if m.detail != nil {
			if m.agenda.Toggle(m.detail.SessionID) {
				m.status = "Starred: " + m.detail.Title
			} else {
				m.status = "Unstarred: " + m.detail.Title
			}
			// Re-render so the star badge and conflict note track the toggle
			m.viewport.SetContent(renderSessionDetail(m, *m.detail))
			return m, clearStatusAfter(statusLingerTime)
		}
		return m, nil

	case "c":
		return m, copyToClipboard(m.agenda.ShareURL(), "Share link")

	case "o":
		if m.detail != nil {
			return m, openInBrowser(m.detail.URL, m.cfg.BrowserCommand)
		}
		return m, nil

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

func (m Model) viewDetail() string {
	helpText := "s star • c copy share link • o open page • j/k scroll • esc back • q quit"
	if m.status != "" {
		helpText = statusStyle.Render(m.status)
	}
	return m.viewport.View() + "\n" + helpText
}
