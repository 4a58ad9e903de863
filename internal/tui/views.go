package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sanixdarker/gqlg/internal/history"
)

var errNoHistory = errors.New("no history database configured")

// RunsModel lists recorded runs.
type RunsModel struct {
	keys     KeyMap
	styles   Styles
	runs     []*history.Run
	total    int
	selected int
	err      error
	loaded   bool
}

// NewRunsModel creates a new runs model.
func NewRunsModel(keys KeyMap, styles Styles) RunsModel {
	return RunsModel{keys: keys, styles: styles}
}

// SetRuns replaces the listed runs.
func (m RunsModel) SetRuns(runs []*history.Run, total int, err error) RunsModel {
	m.runs = runs
	m.total = total
	m.err = err
	m.loaded = true
	if m.selected >= len(runs) {
		m.selected = 0
	}
	return m
}

// Selected returns the run under the cursor.
func (m RunsModel) Selected() *history.Run {
	if m.selected < len(m.runs) {
		return m.runs[m.selected]
	}
	return nil
}

// Update handles cursor movement.
func (m RunsModel) Update(msg tea.Msg) (RunsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.selected = moveCursor(m.keys, msg, m.selected, len(m.runs))
	}
	return m, nil
}

// View renders the run list.
func (m RunsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("gqlg history"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d runs", m.total)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	case !m.loaded:
		b.WriteString(m.styles.Muted.Render("Loading..."))
	case len(m.runs) == 0:
		b.WriteString(m.styles.Muted.Render("No runs recorded yet. Use gqlg generate --db to record one."))
	default:
		for i, run := range m.runs {
			line := fmt.Sprintf("%s  %-28s depth %-3d %4d docs  %s",
				shortID(run.ID), truncate(run.SchemaName, 28), run.DepthLimit,
				run.DocumentCount, run.CreatedAt.Local().Format("2006-01-02 15:04"))
			b.WriteString(m.renderItem(i == m.selected, line))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("j/k: navigate | enter: documents | r: reload | q: quit"))
	return b.String()
}

func (m RunsModel) renderItem(selected bool, line string) string {
	if selected {
		return m.styles.Accent.Render(">") + m.styles.MenuItemSel.Render(line) + "\n"
	}
	return " " + m.styles.MenuItem.Render(line) + "\n"
}

// DocumentsModel lists the documents of one run.
type DocumentsModel struct {
	keys     KeyMap
	styles   Styles
	run      *history.Run
	docs     []*history.StoredDocument
	visible  []*history.StoredDocument
	selected int
	filter   textinput.Model
	err      error
}

// NewDocumentsModel creates a new documents model.
func NewDocumentsModel(keys KeyMap, styles Styles) DocumentsModel {
	ti := textinput.New()
	ti.Placeholder = "field name"
	ti.Prompt = "/ "
	ti.Width = 40

	return DocumentsModel{keys: keys, styles: styles, filter: ti}
}

// SetDocuments replaces the listed documents and clears the filter.
func (m DocumentsModel) SetDocuments(run *history.Run, docs []*history.StoredDocument, err error) DocumentsModel {
	m.run = run
	m.docs = docs
	m.err = err
	m.selected = 0
	m.filter.SetValue("")
	m.filter.Blur()
	m.visible = filterDocuments(docs, "")
	return m
}

// Filtering reports whether the filter input has focus.
func (m DocumentsModel) Filtering() bool {
	return m.filter.Focused()
}

// Selected returns the document under the cursor.
func (m DocumentsModel) Selected() *history.StoredDocument {
	if m.selected < len(m.visible) {
		return m.visible[m.selected]
	}
	return nil
}

// Update handles cursor movement and the name filter.
func (m DocumentsModel) Update(msg tea.Msg) (DocumentsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filter.Focused() {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.visible = filterDocuments(m.docs, m.filter.Value())
		m.selected = 0
		return m, cmd
	}

	if key.Matches(keyMsg, m.keys.Filter) {
		return m, m.filter.Focus()
	}
	m.selected = moveCursor(m.keys, keyMsg, m.selected, len(m.visible))
	return m, nil
}

// View renders the document list.
func (m DocumentsModel) View() string {
	var b strings.Builder

	if m.run != nil {
		b.WriteString(m.styles.Title.Render(m.run.SchemaName))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("run %s, depth limit %d", shortID(m.run.ID), m.run.DepthLimit)))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else {
		if m.filter.Focused() || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(m.styles.Muted.Render("No documents."))
			b.WriteString("\n")
		}
		for i, d := range m.visible {
			marks := ""
			if d.HasArgs {
				marks += " $"
			}
			if d.HasChildren {
				marks += " {}"
			}
			line := fmt.Sprintf("%-13s %s", d.Kind, d.Name)
			if i == m.selected {
				b.WriteString(m.styles.Accent.Render(">") + m.styles.MenuItemSel.Render(line) + m.styles.Muted.Render(marks) + "\n")
			} else {
				b.WriteString(" " + m.styles.MenuItem.Render(line) + m.styles.Muted.Render(marks) + "\n")
			}
		}
	}

	b.WriteString(m.styles.Help.Render("j/k: navigate | enter: view | /: filter | esc: back"))
	return b.String()
}

func filterDocuments(docs []*history.StoredDocument, q string) []*history.StoredDocument {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return docs
	}
	var out []*history.StoredDocument
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d)
		}
	}
	return out
}

// DocumentModel shows one document in a scrollable viewport.
type DocumentModel struct {
	keys     KeyMap
	styles   Styles
	doc      *history.StoredDocument
	viewport viewport.Model
}

// NewDocumentModel creates a new document model.
func NewDocumentModel(keys KeyMap, styles Styles) DocumentModel {
	return DocumentModel{
		keys:     keys,
		styles:   styles,
		viewport: viewport.New(80, 20),
	}
}

// SetSize resizes the viewport to the terminal.
func (m DocumentModel) SetSize(width, height int) DocumentModel {
	if width > 8 {
		m.viewport.Width = width - 8
	}
	if height > 10 {
		m.viewport.Height = height - 10
	}
	return m
}

// SetDocument shows doc from the top.
func (m DocumentModel) SetDocument(doc *history.StoredDocument) DocumentModel {
	m.doc = doc
	m.viewport.SetContent(doc.Query)
	m.viewport.GotoTop()
	return m
}

// Update scrolls the viewport.
func (m DocumentModel) Update(msg tea.Msg) (DocumentModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the document.
func (m DocumentModel) View() string {
	if m.doc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s %s", m.doc.Kind, m.doc.Name)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Box.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("%3.f%% | j/k: scroll | esc: back", m.viewport.ScrollPercent()*100)))
	return b.String()
}

func moveCursor(keys KeyMap, msg tea.KeyMsg, selected, n int) int {
	switch {
	case key.Matches(msg, keys.Up):
		if selected > 0 {
			selected--
		}
	case key.Matches(msg, keys.Down):
		if selected < n-1 {
			selected++
		}
	}
	return selected
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
