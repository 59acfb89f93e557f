package check

import (
	"context"
	"fmt"

	"github.com/caarlos0/log"
	"github.com/loicsikidi/adminhelper/internal"
	"github.com/loicsikidi/adminhelper/internal/config"
	"github.com/loicsikidi/adminhelper/internal/privilege"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	return newCommand(privilege.IsAdministrator)
}

func newCommand(isAdministrator func() (bool, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "check whether the current process runs as administrator",
		Long: `Query the operating system for the security context of the current
process and test its membership in the administrator role.

Exit codes:
  0 - running as administrator
  1 - not running as administrator, or the query failed`,
		Example: `  # Check privileges
  adminhelper check

  ## Check with verbose logging
  adminhelper check --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, isAdministrator)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

func run(_ context.Context, cmd *cobra.Command, isAdministrator func() (bool, error)) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.New(cmd.OutOrStdout())
	if cfg.Verbose() {
		logger.Level = log.DebugLevel
	}

	logger.Info("Checking administrator privileges")
	admin, err := isAdministrator()
	if err != nil {
		return fmt.Errorf("failed to query administrator role: %w", err)
	}

	logger.IncreasePadding()
	defer logger.ResetPadding()
	if !admin {
		logger.WithField("hint", "run 'adminhelper restart' to request elevation").
			Warn("not running as administrator")
		return internal.ErrSilence
	}

	logger.Info("running as administrator 🔒")
	return nil
}
