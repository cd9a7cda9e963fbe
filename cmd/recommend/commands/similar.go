package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var similarK int

// NewSimilarCmd creates the similar command
func NewSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <index>",
		Short: "List movies similar to a catalog row",
		Long: `Rank the catalog against the movie at a known row index, skipping title
matching. Row indices are shown by "recommend search".

Examples:
  recommend similar 0
  recommend similar --k 3 --format json 42`,
		Args: cobra.ExactArgs(1),
		RunE: runSimilar,
	}

	cmd.Flags().IntVar(&similarK, "k", 10, "Number of recommendations")

	return cmd
}

func runSimilar(cmd *cobra.Command, args []string) error {
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index must be an integer, got %q", args[0])
	}
	if err := validatePositiveInt(similarK, "k"); err != nil {
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

	m, err := idx.Movie(row)
	if err != nil {
		return err
	}
	items, err := idx.Similar(row, similarK)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), items)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Movies similar to %s:\n", m.Title)
	}
	printItems(cmd.OutOrStdout(), items)
	return nil
}
