package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/tui"
	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	historyPage   int
	historyKind   string
	historyName   string
	historyDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs or show one run",
	Long: `Without arguments, list the runs recorded with --db, newest first.
With a run id (or a unique prefix of at least 4 characters), print the
run's documents; --kind and --name select a single document.

Examples:
  gqlg history --db gqlg.db
  gqlg history 3f2a9c1e --db gqlg.db
  gqlg history 3f2a --db gqlg.db --kind mutation --name createUser
  gqlg history 3f2a --db gqlg.db --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()
		svc := application.History

		if len(args) == 0 {
			runs, total, err := svc.ListRuns(ctx, historyPage, 20)
			if err != nil {
				return err
			}
			printRuns(out, runs, total)
			return nil
		}

		run, err := svc.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", args[0])
		}

		if historyDelete {
			if err := svc.DeleteRun(ctx, run.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted run %s\n", run.ID)
			return nil
		}

		if historyName != "" {
			kind, ok := querygen.ParseKind(historyKind)
			if !ok {
				return fmt.Errorf("unknown operation kind %q", historyKind)
			}
			doc, err := svc.Document(ctx, run.ID, kind, historyName)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("run %s has no %s %s", shortID(run.ID), kind, historyName)
			}
			fmt.Fprintln(out, doc.Query)
			return nil
		}

		res, err := svc.Result(ctx, run)
		if err != nil {
			return err
		}
		printSummary(out, fmt.Sprintf("run %s: %s", run.ID, run.SchemaName), res, nil)
		for _, g := range res.Groups {
			for _, d := range g.Documents {
				fmt.Fprintf(out, "\n%s\n", mutedStyle.Render("# "+string(d.Kind)+" "+d.Name))
				fmt.Fprintln(out, d.Query)
			}
		}
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded runs in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		p := tea.NewProgram(tui.NewModel(application.History), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run browser: %w", err)
		}
		return nil
	},
}

// openHistory creates the application and fails when no database is configured.
func openHistory(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("no database configured: use --db or set GQLG_DB")
	}

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func init() {
	historyCmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (or set GQLG_DB)")
	historyCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "Page of runs to list")
	historyCmd.Flags().StringVarP(&historyKind, "kind", "k", string(querygen.KindQuery), "Kind of the document selected with --name")
	historyCmd.Flags().StringVar(&historyName, "name", "", "Print only the document of this root field")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "Delete the run")

	browseCmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (or set GQLG_DB)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(browseCmd)
}
