package privilege

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/log"
	"github.com/loicsikidi/adminhelper/internal/logutil"
	"github.com/loicsikidi/adminhelper/internal/notify"
)

const defaultTimeout = 5 * time.Minute

var (
	// ErrElevationFailed wraps every failure of RestartAsAdministrator.
	ErrElevationFailed = errors.New("elevated restart failed")
	// ErrRelaunchLoop is returned when the process was already started by
	// an elevated restart and would otherwise relaunch itself again.
	ErrRelaunchLoop = errors.New("process was already relaunched for elevation")
)

// LaunchRequest describes the elevated instance to start.
type LaunchRequest struct {
	Executable string
	Directory  string
	Args       []string
	// Wait blocks until the elevated instance exits. Unix launchers always
	// wait because the instance shares the terminal.
	Wait bool
	// Timeout bounds the wait. It applies whenever the launcher waits: with
	// Wait on Windows, always on Unix. Expiry is a launch failure.
	Timeout time.Duration
}

// Launcher starts an elevated instance. The returned code is the one the
// current process should exit with.
type Launcher interface {
	Launch(ctx context.Context, req LaunchRequest) (int, error)
}

type RestartConfig struct {
	Launcher   Launcher
	Notifier   notify.Notifier
	Logger     *log.Logger
	Exit       func(code int)
	Executable func() (string, error)
	// Args are passed to the elevated instance, after AlreadyElevatedFlag.
	// Defaults to os.Args[1:].
	Args    []string
	Wait    bool
	Timeout time.Duration
}

func (c *RestartConfig) CheckAndSetDefaults() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Launcher == nil {
		c.Launcher = platform.newLauncher()
	}
	if c.Notifier == nil {
		c.Notifier = notify.Default()
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stderr)
	}
	if c.Exit == nil {
		c.Exit = os.Exit
	}
	if c.Executable == nil {
		c.Executable = os.Executable
	}
	if c.Args == nil {
		c.Args = os.Args[1:]
	}
	return nil
}

// RestartAsAdministrator starts a new elevated instance of the current
// executable and then terminates the current process through cfg.Exit.
//
// If elevation fails for any reason (prompt cancelled, launcher missing,
// relaunch loop) the permission denied warning is shown, cfg.Exit is not
// called and an error wrapping ErrElevationFailed is returned. There is no
// retry.
func RestartAsAdministrator(ctx context.Context, cfg RestartConfig) error {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	code, err := relaunch(ctx, &cfg)
	if err != nil {
		cfg.Logger.WithError(err).Debug("elevation request did not succeed")
		if werr := notify.PermissionDenied(cfg.Notifier); werr != nil {
			cfg.Logger.WithError(werr).Error("could not notify user")
		}
		return fmt.Errorf("%w: %w", ErrElevationFailed, err)
	}

	cfg.Logger.WithField("code", code).Debug("terminating non-elevated instance")
	cfg.Exit(code)
	return nil
}

func relaunch(ctx context.Context, cfg *RestartConfig) (int, error) {
	logger := cfg.Logger

	if WasLaunchedElevated(cfg.Args) {
		return 0, ErrRelaunchLoop
	}

	executable, err := cfg.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.WithError(err).Debug("working directory unavailable, letting the OS pick one")
		cwd = ""
	}

	req := LaunchRequest{
		Executable: executable,
		Directory:  cwd,
		Args:       ChildArgs(cfg.Args),
		Wait:       cfg.Wait,
		Timeout:    cfg.Timeout,
	}

	logger.WithField("executable", executable).Warn("administrator privileges required, requesting elevation")
	start := time.Now()
	code, err := cfg.Launcher.Launch(ctx, req)
	if err != nil {
		return 0, err
	}
	if cfg.Wait {
		logutil.LogDuration(logger, "elevated instance", start)
	}
	return code, nil
}
