package cli

import (
	"fmt"
	"os"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/loader"
	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/spf13/cobra"
)

var printKind string

var printCmd = &cobra.Command{
	Use:   "print <schema> [field...]",
	Short: "Print generated documents to stdout",
	Long: `Print the documents generated for a schema without writing files.

With field names, only the documents of those root fields of --kind are
printed.

Examples:
  gqlg print schema.graphql
  gqlg print schema.graphql user viewer --depthLimit 3
  gqlg print schema.graphql createUser --kind mutation`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := querygen.ParseKind(printKind)
		if !ok {
			return fmt.Errorf("unknown operation kind %q", printKind)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}

		manager := loader.NewManager()
		f := cfg.Format
		if f == "" {
			f = manager.DetectFormat(args[0], content)
		}
		schema, err := manager.Load(f, content, &loader.Options{SourcePath: args[0]})
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}

		gen := querygen.New(schema, querygen.WithDepthLimit(cfg.DepthLimit))
		var docs []*querygen.Document
		if fields := args[1:]; len(fields) > 0 {
			root := gen.RootType(kind)
			if root == nil {
				return fmt.Errorf("schema has no %s type", kind)
			}
			for _, field := range fields {
				doc, err := gen.Generate(field, root.Name)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}
		} else {
			res, err := gen.GenerateAll()
			if err != nil {
				return err
			}
			for _, g := range res.Groups {
				docs = append(docs, g.Documents...)
			}
		}

		out := cmd.OutOrStdout()
		for i, doc := range docs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, doc.Query)
		}
		return nil
	},
}

func init() {
	printCmd.Flags().StringVarP(&printKind, "kind", "k", string(querygen.KindQuery), "Root kind of the named fields (query, mutation, subscription)")
	printCmd.Flags().IntVar(&depthLimit, "depthLimit", app.DefaultConfig().DepthLimit, "Maximum depth of generated selections")
	printCmd.Flags().StringVarP(&format, "format", "f", "", "Schema format (graphql, introspection); detected when empty")

	rootCmd.AddCommand(printCmd)
}
