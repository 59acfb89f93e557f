//go:build windows

package privilege

import (
	"context"
	"fmt"

	"github.com/loicsikidi/adminhelper/internal/windowsexec"
)

// shellLauncher elevates through ShellExecuteExW with the "runas" verb,
// which raises the UAC prompt.
type shellLauncher struct{}

func (shellLauncher) Launch(ctx context.Context, req LaunchRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if !req.Wait {
		if err := windowsexec.RunAs(req.Executable, req.Directory, req.Args); err != nil {
			return 0, fmt.Errorf("failed to start elevated process: %w", err)
		}
		return 0, nil
	}

	code, err := windowsexec.RunAsAndWait(req.Executable, req.Directory, req.Timeout, req.Args)
	if err != nil {
		return 0, fmt.Errorf("failed to run elevated process: %w", err)
	}
	return int(code), nil
}
