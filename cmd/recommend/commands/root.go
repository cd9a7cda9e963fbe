package commands

import (
	"fmt"
	"os"

	"movierec/internal/config"
	"movierec/internal/logging"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	quiet        bool
	catalogPath  string
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Content-based movie recommendations from the command line",
		Long: `recommend answers "movies like X" queries against the same catalog and
TF-IDF similarity index the API serves.

Settings come from the environment (and .env), exactly as for the API:
CATALOG_PATH, CATALOG_SOURCE, MATCH_CUTOFF, TOP_N, JWT_SECRET, ...

Examples:
  recommend query "The Dark Knight"
  recommend query --k 5 --format json "Avatr"
  recommend query --node localhost:9001 "Titanic"
  recommend similar 42
  recommend search "batman"
  recommend token --ttl 1h`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("--format must be table or json, got %q", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results")
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "CSV catalog path (overrides CATALOG_PATH)")

	cmd.AddCommand(
		NewQueryCmd(),
		NewSimilarCmd(),
		NewSearchCmd(),
		NewTokenCmd(),
		NewHashPasswordCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment and applies CLI overrides. Logs go to
// stderr at warn level unless LOG_LEVEL says otherwise.
func loadConfig() (*config.Config, error) {
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", "warn")
	}
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})

	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
		cfg.CatalogSource = "csv"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
