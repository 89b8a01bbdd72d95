package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// ExecuteContext runs the CLI. The context cancels running commands on
// shutdown signals.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizhub",
		Short:         "Backend for hosting live quiz sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedAdminCmd())
	return cmd
}
