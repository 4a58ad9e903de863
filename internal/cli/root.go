// Package cli provides the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "gqlg",
	Short: "Generate GraphQL operation documents from a schema",
	Long: `gqlg reads a GraphQL schema and writes one operation document per
root field of the Query, Mutation and Subscription types, selecting
every reachable field up to a depth limit and declaring a variable for
every argument.

Features:
  - SDL and introspection JSON schemas
  - .gql files, index.js loaders and a README.md catalog per output directory
  - Generation history in SQLite, browsable over HTTP and SSH

Running gqlg with --schemaFilePath and --destDirPath is the same as
running gqlg generate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if genSchemaPath == "" && genDestDir == "" {
			return cmd.Help()
		}
		return runGenerate(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gqlg version %s (commit: %s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default "+app.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the configuration from defaults, the config file, the
// environment and finally the flags of cmd that were set explicitly.
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	cfg := app.DefaultConfig()

	path, required := configPath, true
	if path == "" {
		path, required = app.DefaultConfigFile, false
	}
	if err := app.LoadConfigFile(path, cfg, required); err != nil {
		return nil, err
	}

	if db := os.Getenv("GQLG_DB"); db != "" {
		cfg.DBPath = db
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("depthLimit") {
		cfg.DepthLimit = depthLimit
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("ssh-port") {
		cfg.SSHPort = serveSSHPort
	}
	if cfg.DepthLimit < 0 {
		return nil, fmt.Errorf("depth limit must not be negative, got %d", cfg.DepthLimit)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
