package restart

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/log"
	"github.com/loicsikidi/adminhelper/internal"
	"github.com/loicsikidi/adminhelper/internal/config"
	"github.com/loicsikidi/adminhelper/internal/privilege"
	"github.com/spf13/cobra"
)

// defaultChildArgs is the command the elevated instance runs when none is
// given, so it reports its own privileges.
var defaultChildArgs = []string{"check"}

type dependencies struct {
	isAdministrator func() (bool, error)
	restart         func(ctx context.Context, cfg privilege.RestartConfig) error
}

func NewCommand() *cobra.Command {
	return newCommand(dependencies{
		isAdministrator: privilege.IsAdministrator,
		restart:         privilege.RestartAsAdministrator,
	})
}

func newCommand(deps dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart [-- command...]",
		Short: "restart the cli with administrator privileges",
		Long: `Relaunch this executable with an elevation request (UAC on Windows,
pkexec or sudo on Linux, an authorization dialog on macOS) and terminate
the current instance.

If elevation is refused, a "Permission Denied" warning is shown and the
command exits without administrator privileges.

Exit codes:
  0   - already running as administrator, or the elevated instance succeeded
  1   - elevation was refused or failed
  n   - exit code of the elevated instance (with --wait, or on Linux/macOS)

On Linux and macOS the elevated instance always runs attached to this one,
so --timeout bounds it there even without --wait.`,
		Example: `  # Relaunch elevated and check privileges
  adminhelper restart

  ## Relaunch elevated, wait for the new instance and use its exit code
  adminhelper restart --wait -- check --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, args, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Bool("wait", false, "Wait for the elevated instance and exit with its code")
	cmd.Flags().Duration("timeout", config.DefaultRestartTimeout,
		"Maximum time to wait for the elevated instance, prompt included (with --wait on Windows, always on Linux/macOS)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, args []string, deps dependencies) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger := log.New(cmd.OutOrStdout())
	if cfg.Verbose() {
		logger.Level = log.DebugLevel
	}

	admin, err := deps.isAdministrator()
	if err != nil {
		return fmt.Errorf("failed to query administrator role: %w", err)
	}
	if admin {
		logger.Info("already running as administrator, nothing to do")
		return nil
	}

	childArgs := args
	if len(childArgs) == 0 {
		childArgs = defaultChildArgs
	}
	if alreadyElevated(cmd) {
		childArgs = append([]string{privilege.AlreadyElevatedFlag}, childArgs...)
	}

	err = deps.restart(ctx, privilege.RestartConfig{
		Logger:  logger,
		Args:    childArgs,
		Wait:    cfg.RestartWait(),
		Timeout: cfg.RestartTimeout(),
	})
	if errors.Is(err, privilege.ErrElevationFailed) {
		logger.WithField("hint", "right-click the executable and choose 'Run as administrator', or run it from an elevated shell").
			Error("continuing without administrator privileges")
		return internal.ErrSilence
	}
	if err != nil {
		return fmt.Errorf("failed to restart with elevated privileges: %w", err)
	}
	return nil
}

// alreadyElevated reports whether the inherited recursion-guard flag is set.
func alreadyElevated(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup(privilege.AlreadyElevatedFlagName)
	return flag != nil && flag.Value.String() == "true"
}
