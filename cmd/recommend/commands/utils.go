package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"movierec/internal/config"
	"movierec/internal/db"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/goccy/go-json"
)

var errNotFound = errors.New("movie not found")

// buildIndex loads the catalog the same way the API does.
func buildIndex(ctx context.Context, cfg *config.Config) (*recommend.Index, error) {
	if cfg.CatalogSource == "mongo" {
		db.InitMongo(cfg)
		defer db.Close(ctx)
	}
	idx, err := service.LoadIndex(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return idx, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", data)
	return nil
}

func printItems(w io.Writer, items []models.RecItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tINDEX\tSCORE\tTITLE\n")
	for i, it := range items {
		fmt.Fprintf(tw, "%d\t%d\t%.4f\t%s\n", i+1, it.Index, it.Score, it.Title)
	}
	tw.Flush()
}

// printResult writes a query answer in the chosen format.
func printResult(w io.Writer, res *models.RecResult) error {
	if outputFormat == "json" {
		return printJSON(w, res)
	}
	if !quiet {
		fmt.Fprintf(w, "Movies similar to %s:\n", res.Match)
		if len(res.Alternatives) > 0 {
			fmt.Fprintf(w, "(also close: %v)\n", res.Alternatives)
		}
	}
	printItems(w, res.Items)
	return nil
}

func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
