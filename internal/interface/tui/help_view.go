package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = listView
		return m, nil
	}

	return m, nil
}

func (m Model) viewHelp() string {
	help := `
confsched - Help
═══════════════════

SESSION LIST VIEW
─────────────────
  ↑/↓, j/k     Navigate sessions
  Enter        View session details
  s            Star or unstar the selected session
  a            View your agenda
  c            Copy the agenda share link
  o            Open the session page in a browser
  /            Search the program
  ?            Show this help
  q            Quit

SESSION DETAIL VIEW
───────────────────
  s            Star or unstar this session
  c            Copy the agenda share link
  o            Open the session page in a browser
  j/k          Scroll line by line
  d/u          Scroll half page
  g/G          Jump to top/bottom
  esc          Back to session list
  q            Quit

AGENDA VIEW
───────────
  c            Copy the agenda share link
  j/k          Scroll line by line
  d/u          Scroll half page
  esc, a       Back to session list
  q            Quit

SEARCH VIEW
───────────
  Type         Enter search query (live)
  Enter        Open selected session
  Ctrl+j, ↑/↓  Navigate results
  Ctrl+s       Star or unstar the selected result
  esc          Back to session list

  Filters: day:tuesday  track:1a  room:rousseau
           starred:only  on:2026-02-24  after:monday

Press esc to return to the session list
`

	return helpStyle.Render(help)
}
