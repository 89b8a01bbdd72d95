package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizhub/api/internal/config"
	"github.com/quizhub/api/internal/database"
	"github.com/quizhub/api/internal/migrations"
	"github.com/quizhub/api/internal/server"
)

func newSeedAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := database.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return fmt.Errorf("connecting to sqlite: %w", err)
			}
			defer db.Close()

			if err := migrations.Run(db); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			store := server.NewSQLiteStore(db)
			id, err := store.CreateAdmin(cmd.Context(), email, string(hash))
			if err != nil {
				return fmt.Errorf("creating admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", email, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
