package cli

import (
	"fmt"
	"strconv"

	"github.com/sanixdarker/gqlg/internal/writer"
	"github.com/sanixdarker/gqlg/pkg/catalog"
	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/spf13/cobra"
)

var catalogHTML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog <dir>",
	Short: "Summarize the catalog of an output directory",
	Long: `Read the README.md catalog written by gqlg generate and list its
documents, or render it as HTML with --html.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := writer.ReadCatalog(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if catalogHTML {
			html, err := catalog.HTML(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, html)
			return nil
		}

		fm := c.Frontmatter
		fmt.Fprintln(out, accentStyle.Render(fm.Name))
		if fm.Schema != "" {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("schema %s, depth limit %d, generated %s", fm.Schema, fm.DepthLimit, fm.GeneratedAt)))
		}

		withArgs := make(map[string]bool, len(fm.WithArgs))
		for _, k := range fm.WithArgs {
			withArgs[k] = true
		}
		t := newTable("Kind", "Name", "Args", "Lines")
		for _, kind := range querygen.Kinds {
			for _, e := range c.EntriesOf(kind) {
				args := ""
				if withArgs[string(e.Kind)+"."+e.Name] {
					args = "yes"
				}
				t.Row(string(e.Kind), e.Name, args, strconv.Itoa(countLines(e.Query)))
			}
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogHTML, "html", false, "Render the catalog as HTML")
	rootCmd.AddCommand(catalogCmd)
}
