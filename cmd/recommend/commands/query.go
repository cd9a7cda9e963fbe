package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movierec/internal/cluster"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/spf13/cobra"
)

var (
	queryK       int
	queryNode    string
	queryTimeout time.Duration
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <title>",
		Short: "Recommend movies similar to a title",
		Long: `Fuzzy-match a title against the catalog and list the most similar movies.

Typos are fine: "Avatr" resolves to "Avatar". With --node the query is sent
to a running query node over TCP instead of building the index locally.

Examples:
  recommend query "Avatar"
  recommend query --k 5 "The Dark Knight"
  recommend query --node localhost:9001 --format json "Titanic"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryK, "k", 0, "Number of recommendations (0 uses TOP_N)")
	cmd.Flags().StringVar(&queryNode, "node", "", "Address of a query node (host:port)")
	cmd.Flags().DurationVar(&queryTimeout, "timeout", 10*time.Second, "Timeout for --node requests")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryK < 0 || queryK > recommend.MaxK {
		return fmt.Errorf("k must be between 0 and %d, got %d", recommend.MaxK, queryK)
	}

	var (
		res *models.RecResult
		err error
	)
	if queryNode != "" {
		res, err = queryRemote(cmd.Context(), args[0])
	} else {
		res, err = queryLocal(cmd.Context(), args[0])
	}
	if errors.Is(err, recommend.ErrEmptyQuery) {
		return nil
	}
	if errors.Is(err, recommend.ErrNoMatch) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}

func queryLocal(ctx context.Context, title string) (*models.RecResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := buildIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc := service.NewRecommendService(idx, nil, 0)
	return svc.Recommend(ctx, service.RecRequest{Query: title, K: queryK, Surface: "cli"})
}

func queryRemote(ctx context.Context, title string) (*models.RecResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	resp, err := cluster.SendTask(ctx, queryNode, &cluster.QueryTask{Query: title, K: queryK})
	if err != nil {
		return nil, err
	}
	switch resp.Status {
	case cluster.StatusOK:
		return resp.Result, nil
	case cluster.StatusEmpty:
		return nil, recommend.ErrEmptyQuery
	case cluster.StatusNotFound:
		return nil, recommend.ErrNoMatch
	default:
		return nil, fmt.Errorf("node %s: %s", resp.NodeID, resp.Error)
	}
}
