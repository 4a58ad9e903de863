package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/loader"
	"github.com/sanixdarker/gqlg/internal/writer"
	"github.com/spf13/cobra"
)

var (
	genSchemaPath string
	genDestDir    string
	genName       string
	genNoCatalog  bool
	genEndpoint   string
	genToken      string
	depthLimit    int
	format        string
	dbPath        string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate operation documents into a directory",
	Long: `Generate one operation document per root field of the schema.

The destination gets mutations/, queries/ and subscriptions/ folders with
one <field>.gql file each, an index.js per folder, a root index.js and a
README.md catalog. Existing kind folders are replaced.

Examples:
  gqlg generate --schemaFilePath schema.graphql --destDirPath ./gql
  gqlg generate --schemaFilePath schema.json --destDirPath ./gql --depthLimit 4
  gqlg generate --schemaFilePath schema.graphql --destDirPath ./gql --db gqlg.db
  gqlg generate --endpoint https://api.example.com/graphql --destDirPath ./gql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genSchemaPath, "schemaFilePath", "", "Path of the schema file (SDL or introspection JSON)")
	cmd.Flags().StringVar(&genDestDir, "destDirPath", "", "Directory to write the documents to")
	cmd.Flags().IntVar(&depthLimit, "depthLimit", app.DefaultConfig().DepthLimit, "Maximum depth of generated selections")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Schema format (graphql, introspection); detected when empty")
	cmd.Flags().StringVar(&dbPath, "db", "", "Record the run in this SQLite database (or set GQLG_DB)")
	cmd.Flags().StringVarP(&genName, "name", "n", "", "Name shown in the catalog (default: schema file name)")
	cmd.Flags().BoolVar(&genNoCatalog, "no-catalog", false, "Do not write README.md")
	cmd.Flags().StringVar(&genEndpoint, "endpoint", "", "Introspect this GraphQL endpoint instead of reading --schemaFilePath")
	cmd.Flags().StringVar(&genToken, "token", "", "Bearer token for --endpoint (or set GQLG_TOKEN)")
}

func runGenerate(cmd *cobra.Command) error {
	if (genSchemaPath == "" && genEndpoint == "") || genDestDir == "" {
		return fmt.Errorf("--destDirPath and one of --schemaFilePath or --endpoint are required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, source, err := readSchema(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	res, err := application.Generate(content, app.GenerateOptions{
		Format:     cfg.Format,
		SourcePath: source,
		DepthLimit: cfg.DepthLimit,
	})
	if err != nil {
		return err
	}

	name := genName
	if name == "" {
		name = filepath.Base(source)
	}
	summary, err := writer.New(genDestDir, application.Logger).Write(res, &writer.Options{
		Name:       name,
		SchemaPath: source,
		NoCatalog:  genNoCatalog,
	})
	if err != nil {
		return fmt.Errorf("failed to write documents: %w", err)
	}

	out := cmd.OutOrStdout()
	printSummary(out, fmt.Sprintf("%d documents written to %s", res.Count(), summary.Dir), res, summary.Files)

	if application.History != nil {
		run, err := application.History.Record(context.Background(), name, content, res)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, mutedStyle.Render("recorded run "+run.ID))
	}
	return nil
}

// readSchema returns the schema content and where it came from.
func readSchema(ctx context.Context, cfg *app.Config) ([]byte, string, error) {
	if genEndpoint == "" {
		content, err := os.ReadFile(genSchemaPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read schema file: %w", err)
		}
		return content, genSchemaPath, nil
	}

	token := genToken
	if token == "" {
		token = os.Getenv("GQLG_TOKEN")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	content, err := loader.NewFetcher(token).Fetch(ctx, genEndpoint)
	if err != nil {
		return nil, "", fmt.Errorf("failed to introspect %s: %w", genEndpoint, err)
	}
	cfg.Format = loader.FormatIntrospection
	return content, genEndpoint, nil
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}
