package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legislativas/internal/adapters/driven/auth"
	"github.com/custodia-labs/legislativas/internal/config"
	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/services"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin bearer token",
	Long: `Signs a bearer token with ADMIN_JWT_SECRET for the admin API.

Example:
  legislativas token --subject ops --ttl 24h`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(domain.RoleAdmin), "token role (admin or viewer)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	secret := config.GetEnv("ADMIN_JWT_SECRET", "")
	if secret == "" {
		return errors.New("ADMIN_JWT_SECRET is not set")
	}

	authService := services.NewAuthService(auth.NewAdapter(secret))
	token, err := authService.IssueToken(tokenSubject, domain.Role(tokenRole), tokenTTL)
	if err != nil {
		return err
	}

	cmd.Println(token)
	return nil
}
