package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/config"
	"github.com/confsched/confsched/internal/core/db"
	"github.com/confsched/confsched/internal/core/models"
	"github.com/confsched/confsched/internal/core/search"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	agendaView
	searchView
	helpView
)

type Model struct {
	db     *db.DB
	agenda *agenda.Set
	cfg    *config.Config

	mode     viewMode
	list     list.Model
	viewport viewport.Model
	width    int
	height   int
	err      error

	sessions []models.Session
	meta     models.Meta
	detail   *models.SessionDetail

	searchInput       textinput.Model
	searchResults     []search.Result
	searchSelectedIdx int
	searchViewOffset  int

	// Transient status line, cleared by timer
	status string
}

func New(database *db.DB, ag *agenda.Set, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "title, author, day:tuesday, track:1a, starred:only"
	input.CharLimit = 200

	return Model{
		db:          database,
		agenda:      ag,
		cfg:         cfg,
		mode:        listView,
		searchInput: input,
	}
}

func (m Model) Init() tea.Cmd {
	return loadSessions(m.db)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if len(m.sessions) > 0 {
			m.list.SetSize(msg.Width, msg.Height-3)
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		return m, nil

	case tea.MouseMsg:
		if m.mode == searchView {
			switch msg.Button {
			case tea.MouseButtonWheelDown:
				return handleSearchMouseWheel(m, true), nil
			case tea.MouseButtonWheelUp:
				return handleSearchMouseWheel(m, false), nil
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "?":
			if m.mode != searchView {
				m.mode = helpView
				return m, nil
			}
		}

		switch m.mode {
		case listView:
			return m.updateList(msg)
		case detailView:
			return m.updateDetail(msg)
		case agendaView:
			return m.updateAgenda(msg)
		case searchView:
			return m.updateSearch(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.meta = msg.meta
		m.list = createSessionList(msg.sessions, m.agenda, m.width, m.height)
		return m, nil

	case sessionDetailLoadedMsg:
		detail := msg.detail
		m.detail = &detail
		m.viewport = createDetailViewport(m, detail)
		m.mode = detailView
		return m, nil

	case searchResultsMsg:
		m.searchResults = msg.results
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, clearStatusAfter(statusLingerTime)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case detailView:
		return m.viewDetail()
	case agendaView:
		return m.viewAgenda()
	case searchView:
		return m.viewSearch()
	case helpView:
		return m.viewHelp()
	}

	return ""
}
