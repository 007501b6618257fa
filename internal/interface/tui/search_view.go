package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Each rendered search result takes about four lines
const (
	searchLinesPerResult = 4
	searchReservedLines  = 7
)

func (m Model) updateSearch(mssg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch mssg.String() {
	case "esc":
		m.mode = listView
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchResults = nil
		m.searchSelectedIdx = 0
		m.searchViewOffset = 0
		return m, nil

	case "enter":
		if len(m.searchResults) > 0 && m.searchSelectedIdx < len(m.searchResults) {
			sessionID := m.searchResults[m.searchSelectedIdx].SessionID
			return m, loadSessionDetail(m.db, sessionID)
		}
		return m, nil

	// Navigation: Ctrl+j or arrow keys, so j/k stay typeable in the query
	case "ctrl+j", "down":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx++
			if m.searchSelectedIdx >= len(m.searchResults) {
				m.searchSelectedIdx = len(m.searchResults) - 1
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil

	case "up":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx--
			if m.searchSelectedIdx < 0 {
				m.searchSelectedIdx = 0
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil

	case "ctrl+s":
		// Star the selected result without leaving the search
		if len(m.searchResults) > 0 && m.searchSelectedIdx < len(m.searchResults) {
			res := m.searchResults[m.searchSelectedIdx]
			if m.agenda.Toggle(res.SessionID) {
				m.status = "Starred: " + res.Title
			} else {
				m.status = "Unstarred: " + res.Title
			}
			return m, clearStatusAfter(statusLingerTime)
		}
		return m, nil
	}

	// All other keys go to the text input
	m.searchInput, cmd = m.searchInput.Update(mssg)

	// Live search on every keystroke
	query := m.searchInput.Value()
	m.searchSelectedIdx = 0
	m.searchViewOffset = 0
	return m, tea.Batch(cmd, performSearch(m.db, query, m.agenda.IDs()))
}

func (m Model) viewSearch() string {
	var b strings.Builder

	b.WriteString(searchHeaderStyle.Render("Search: "))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 80))
	b.WriteString("\n\n")

	if m.searchResults == nil {
		b.WriteString(searchMetaStyle.Render("Type to search (minimum 2 characters)"))
	} else if len(m.searchResults) == 0 {
		b.WriteString(searchMetaStyle.Render("No results found"))
	} else {
		b.WriteString(searchMetaStyle.Render(fmt.Sprintf("Found %d sessions:", len(m.searchResults))))
		b.WriteString("\n\n")

		availableHeight := m.height - searchReservedLines
		maxVisibleResults := availableHeight / searchLinesPerResult
		if maxVisibleResults < 2 {
			maxVisibleResults = 2
		}

		startIdx := m.searchViewOffset
		endIdx := startIdx + maxVisibleResults
		if endIdx > len(m.searchResults) {
			endIdx = len(m.searchResults)
		}

		for i := startIdx; i < endIdx; i++ {
			result := m.searchResults[i]
			isSelected := i == m.searchSelectedIdx

			title := result.Title
			prefix := "  "
			if isSelected {
				prefix = "► "
				title = searchSelectedStyle.Render(title)
			} else if m.agenda.Contains(result.SessionID) {
				title = starredItemStyle.Render(title)
			}
			if m.agenda.Contains(result.SessionID) {
				prefix += starBadgeStyle.Render("★ ")
			} else {
				prefix += "  "
			}

			when := result.DayLabel
			if result.Start != "" && result.End != "" {
				when += " " + result.Start + "-" + result.End
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, title, searchMetaStyle.Render("| "+when)))

			var meta []string
			if result.Track != "" {
				meta = append(meta, result.Track)
			}
			if result.Room != "" {
				meta = append(meta, result.Room)
			}
			if len(meta) > 0 {
				b.WriteString("    " + searchMetaStyle.Render(strings.Join(meta, ", ")) + "\n")
			}
			if result.MatchedItem != "" {
				b.WriteString("    " + searchMetaStyle.Render("in: ") + highlightQuery(result.MatchedItem, m.searchInput.Value()) + "\n")
			} else if result.Snippet != "" {
				b.WriteString("    " + highlightQuery(result.Snippet, m.searchInput.Value()) + "\n")
			}
			b.WriteString("\n")
		}

		if startIdx > 0 {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results above\n", startIdx)))
		}
		if endIdx < len(m.searchResults) {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results below\n", len(m.searchResults)-endIdx)))
		}
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	} else if len(m.searchResults) > 0 {
		b.WriteString("Ctrl+j or ↑↓: navigate | Enter: details | Ctrl+s: star | esc: back")
	} else {
		b.WriteString("Type to search (min 2 chars) | esc: back")
	}
	b.WriteString("\n")
	b.WriteString(searchMetaStyle.Render("Filters: day:tuesday | track:1a | room:rousseau | starred:only | on:2026-02-24 | after:monday"))

	return b.String()
}

func highlightQuery(text, query string) string {
	if query == "" {
		return text
	}

	// Simple case-insensitive highlighting of the first occurrence
	lower := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	idx := strings.Index(lower, lowerQuery)
	if idx == -1 {
		return text
	}

	before := text[:idx]
	match := text[idx : idx+len(query)]
	after := text[idx+len(query):]

	return before + searchMatchStyle.Render(match) + after
}
