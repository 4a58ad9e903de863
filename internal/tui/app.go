// Package tui provides a terminal browser for generation history.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sanixdarker/gqlg/internal/history"
)

// View represents different views in the TUI.
type View int

const (
	ViewRuns View = iota
	ViewDocuments
	ViewDocument
)

// KeyMap defines keyboard shortcuts.
type KeyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Enter   key.Binding
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// Styles defines the visual styles for the TUI.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Error       lipgloss.Style
	Box         lipgloss.Style
	MenuItem    lipgloss.Style
	MenuItemSel lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() Styles {
	accent := lipgloss.Color("#e535ab")
	muted := lipgloss.Color("#666666")
	text := lipgloss.Color("#e0e0e0")
	bg := lipgloss.Color("#0a0a0a")
	border := lipgloss.Color("#333333")

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(muted),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Accent: lipgloss.NewStyle().
			Foreground(accent),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		MenuItem: lipgloss.NewStyle().
			Foreground(text).
			PaddingLeft(1),

		MenuItemSel: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true).
			PaddingLeft(1),

		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}

// Model is the main TUI model.
type Model struct {
	history   *history.Service
	keys      KeyMap
	styles    Styles
	width     int
	height    int
	view      View
	runs      RunsModel
	documents DocumentsModel
	document  DocumentModel
}

// NewModel creates a new TUI model.
func NewModel(historyService *history.Service) Model {
	keys := DefaultKeyMap()
	styles := DefaultStyles()

	return Model{
		history:   historyService,
		keys:      keys,
		styles:    styles,
		view:      ViewRuns,
		runs:      NewRunsModel(keys, styles),
		documents: NewDocumentsModel(keys, styles),
		document:  NewDocumentModel(keys, styles),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadRuns()
}

type runsLoadedMsg struct {
	runs  []*history.Run
	total int
	err   error
}

type documentsLoadedMsg struct {
	run  *history.Run
	docs []*history.StoredDocument
	err  error
}

func (m Model) loadRuns() tea.Cmd {
	svc := m.history
	return func() tea.Msg {
		if svc == nil {
			return runsLoadedMsg{err: errNoHistory}
		}
		runs, total, err := svc.ListRuns(context.Background(), 1, 100)
		return runsLoadedMsg{runs: runs, total: total, err: err}
	}
}

func (m Model) loadDocuments(run *history.Run) tea.Cmd {
	svc := m.history
	return func() tea.Msg {
		docs, err := svc.Documents(context.Background(), run.ID)
		return documentsLoadedMsg{run: run, docs: docs, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.document = m.document.SetSize(msg.Width, msg.Height)
		return m, nil

	case runsLoadedMsg:
		m.runs = m.runs.SetRuns(msg.runs, msg.total, msg.err)
		return m, nil

	case documentsLoadedMsg:
		m.documents = m.documents.SetDocuments(msg.run, msg.docs, msg.err)
		m.view = ViewDocuments
		return m, nil

	case tea.KeyMsg:
		if m.view == ViewDocuments && m.documents.Filtering() {
			break
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		switch m.view {
		case ViewRuns:
			switch {
			case key.Matches(msg, m.keys.Enter):
				if run := m.runs.Selected(); run != nil {
					return m, m.loadDocuments(run)
				}
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				return m, m.loadRuns()
			}
		case ViewDocuments:
			switch {
			case key.Matches(msg, m.keys.Back):
				m.view = ViewRuns
				return m, nil
			case key.Matches(msg, m.keys.Enter):
				if doc := m.documents.Selected(); doc != nil {
					m.document = m.document.SetDocument(doc)
					m.view = ViewDocument
				}
				return m, nil
			}
		case ViewDocument:
			if key.Matches(msg, m.keys.Back) {
				m.view = ViewDocuments
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewRuns:
		m.runs, cmd = m.runs.Update(msg)
	case ViewDocuments:
		m.documents, cmd = m.documents.Update(msg)
	case ViewDocument:
		m.document, cmd = m.document.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var content string
	switch m.view {
	case ViewDocuments:
		content = m.documents.View()
	case ViewDocument:
		content = m.document.View()
	default:
		content = m.runs.View()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
