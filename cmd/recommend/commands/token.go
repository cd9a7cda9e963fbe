package commands

import (
	"errors"
	"fmt"
	"time"

	"movierec/internal/config"
	"movierec/internal/service"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

// NewTokenCmd creates the token command
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for the admin endpoints",
		Long: `Sign an HS256 token with JWT_SECRET for use as
"Authorization: Bearer <token>" on /admin routes.

Examples:
  recommend token
  recommend token --ttl 1h --subject ops`,
		Args: cobra.NoArgs,
		RunE: runToken,
	}

	cmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Token subject")
	cmd.Flags().StringVar(&tokenRole, "role", service.RoleAdmin, "Role claim")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", tokenTTL)
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	token, err := service.SignToken(cfg.JWTSecret, tokenSubject, tokenRole, tokenTTL)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// NewHashPasswordCmd creates the hash-password command
func NewHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
