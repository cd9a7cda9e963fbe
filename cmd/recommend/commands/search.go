package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find catalog titles close to some text",
		Long: `List titles whose similarity ratio to the text reaches MATCH_CUTOFF,
best first, with their row indices.

Examples:
  recommend search "batmn"
  recommend search --limit 3 --format json "star wars"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	idx, err := buildIndex(ctx, cfg)
	if err != nil {
		return err
	}

	hits := idx.Candidates(args[0], searchLimit)
	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), hits)
	}
	if len(hits) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No titles close to: %s\n", args[0])
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RATIO\tINDEX\tTITLE\n")
	for _, h := range hits {
		fmt.Fprintf(w, "%.3f\t%d\t%s\n", h.Ratio, h.Index, h.Title)
	}
	return w.Flush()
}
