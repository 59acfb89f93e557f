//go:build !windows

package privilege

import "os"

var platform = platformImpl{
	isAdministrator: isSuperuser,
	newLauncher:     func() Launcher { return newExecLauncher() },
}

func isSuperuser() (bool, error) {
	return os.Geteuid() == 0, nil
}
