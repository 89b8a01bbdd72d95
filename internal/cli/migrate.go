package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizhub/api/internal/config"
	"github.com/quizhub/api/internal/database"
	"github.com/quizhub/api/internal/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
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
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
