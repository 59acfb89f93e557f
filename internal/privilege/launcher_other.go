//go:build !windows

package privilege

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"

	"al.essio.dev/pkg/shellescape"
)

// pkexec exit codes that mean the elevated instance never ran.
const (
	pkexecDismissed    = 126
	pkexecUnauthorized = 127
)

// terminateGrace is how long a timed out instance gets to exit after
// SIGTERM before it is killed.
const terminateGrace = 5 * time.Second

var errNoElevationTool = errors.New("neither pkexec nor sudo found")

// execLauncher elevates by running the executable under pkexec or sudo, or
// osascript on macOS. It always waits for the elevated instance.
type execLauncher struct {
	goos     string
	lookPath func(file string) (string, error)
	run      func(cmd *exec.Cmd) error
}

func newExecLauncher() *execLauncher {
	return &execLauncher{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runAttached,
	}
}

func runAttached(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Launch runs the elevated instance and waits for it. A positive
// req.Timeout bounds the prompt and the instance together; when it expires
// the instance is terminated and a timeout error is returned.
func (l *execLauncher) Launch(ctx context.Context, req LaunchRequest) (int, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	code, err := l.launch(ctx, req)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("timed out after %s waiting for elevated process: %w", req.Timeout, ctx.Err())
	}
	return code, err
}

func (l *execLauncher) launch(ctx context.Context, req LaunchRequest) (int, error) {
	if l.goos == "darwin" {
		return l.launchOsascript(ctx, req)
	}
	// pkexec first: it can prompt without a terminal
	if path, err := l.lookPath("pkexec"); err == nil {
		return l.launchPkexec(ctx, path, req)
	}
	if path, err := l.lookPath("sudo"); err == nil {
		return l.launchSudo(ctx, path, req)
	}
	return 0, errNoElevationTool
}

func (l *execLauncher) launchPkexec(ctx context.Context, pkexec string, req LaunchRequest) (int, error) {
	cmd := command(ctx, pkexec, append([]string{req.Executable}, req.Args...)...)
	cmd.Dir = req.Directory

	code, err := exitCode(l.run(cmd))
	if err != nil {
		return 0, fmt.Errorf("pkexec failed: %w", err)
	}
	if code == pkexecDismissed || code == pkexecUnauthorized {
		return 0, fmt.Errorf("pkexec refused authorization (exit code %d)", code)
	}
	return code, nil
}

func (l *execLauncher) launchSudo(ctx context.Context, sudo string, req LaunchRequest) (int, error) {
	// validate credentials on their own so a refused prompt is not confused
	// with the elevated instance failing
	validate := command(ctx, sudo, "-v")
	if err := l.run(validate); err != nil {
		return 0, fmt.Errorf("sudo refused authorization: %w", err)
	}

	cmd := command(ctx, sudo, append([]string{"--", req.Executable}, req.Args...)...)
	cmd.Dir = req.Directory

	code, err := exitCode(l.run(cmd))
	if err != nil {
		return 0, fmt.Errorf("sudo failed: %w", err)
	}
	return code, nil
}

// launchOsascript cannot tell a cancelled dialog from a failing instance, so
// any osascript error is treated as a refused elevation.
func (l *execLauncher) launchOsascript(ctx context.Context, req LaunchRequest) (int, error) {
	osascript, err := l.lookPath("osascript")
	if err != nil {
		return 0, fmt.Errorf("osascript not found: %w", err)
	}

	cmd := command(ctx, osascript, "-e", appleScript(req))
	if err := l.run(cmd); err != nil {
		return 0, fmt.Errorf("macOS elevation failed (user may have denied): %w", err)
	}
	return 0, nil
}

// appleScript builds a "do shell script" statement running req with
// administrator privileges.
func appleScript(req LaunchRequest) string {
	shellCmd := shellescape.QuoteCommand(append([]string{req.Executable}, req.Args...))
	if req.Directory != "" {
		shellCmd = "cd " + shellescape.Quote(req.Directory) + " && " + shellCmd
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(shellCmd)
	return fmt.Sprintf(`do shell script "%s" with administrator privileges`, escaped)
}

// command builds a process that receives SIGTERM rather than SIGKILL when
// ctx ends, so sudo and pkexec can pass it on to the elevated instance.
func command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = terminateGrace
	return cmd
}

// exitCode splits a run error into the child's exit code and a launch error.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
