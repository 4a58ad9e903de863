package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e535ab")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// printSummary writes the per-kind document counts of a generation. The
// files column is only shown when files is not nil.
func printSummary(w io.Writer, title string, res *querygen.Result, files map[querygen.Kind]int) {
	headers := []string{"Kind", "Root type", "Documents", "With args"}
	if files != nil {
		headers = append(headers, "Files")
	}
	t := newTable(headers...)

	for _, kind := range querygen.Kinds {
		root, docs, withArgs := mutedStyle.Render("none"), 0, 0
		if g := res.Group(kind); g != nil {
			root, docs = g.RootType, len(g.Documents)
			if root == "" {
				root = "-"
			}
			for _, d := range g.Documents {
				if d.HasArgs {
					withArgs++
				}
			}
		}
		row := []string{string(kind), root, strconv.Itoa(docs), strconv.Itoa(withArgs)}
		if files != nil {
			row = append(row, strconv.Itoa(files[kind]))
		}
		t.Row(row...)
	}

	fmt.Fprintln(w, accentStyle.Render(title))
	fmt.Fprintln(w, t.Render())
}

func printRuns(w io.Writer, runs []*history.Run, total int) {
	t := newTable("Run", "Schema", "Depth", "Documents", "Created")
	for _, r := range runs {
		t.Row(shortID(r.ID), r.SchemaName, strconv.Itoa(r.DepthLimit), strconv.Itoa(r.DocumentCount),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d runs", len(runs), total)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
