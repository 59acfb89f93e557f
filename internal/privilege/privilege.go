// Package privilege detects administrator privileges and restarts the
// current executable with an elevation request when they are missing.
//
// On Windows the administrator role is membership in BUILTIN\Administrators
// and elevation goes through the UAC prompt. On Unix systems the role is the
// superuser and elevation goes through pkexec, sudo or, on macOS, an
// AppleScript authorization dialog.
package privilege

// AlreadyElevatedFlag marks a process started by RestartAsAdministrator.
// A process carrying it never tries to elevate again, even if the privilege
// probe still reports a standard user.
const (
	AlreadyElevatedFlagName = "_already-elevated"
	AlreadyElevatedFlag     = "--" + AlreadyElevatedFlagName
)

type platformImpl struct {
	isAdministrator func() (bool, error)
	newLauncher     func() Launcher
}

// IsAdministrator reports whether the current process runs in the
// administrator role. An error means the OS identity query itself failed.
func IsAdministrator() (bool, error) {
	return platform.isAdministrator()
}

// WasLaunchedElevated reports whether args carry AlreadyElevatedFlag.
func WasLaunchedElevated(args []string) bool {
	for _, arg := range args {
		if arg == AlreadyElevatedFlag {
			return true
		}
	}
	return false
}

// ChildArgs returns the arguments for the elevated instance: a single
// AlreadyElevatedFlag followed by args.
func ChildArgs(args []string) []string {
	child := make([]string, 0, len(args)+1)
	child = append(child, AlreadyElevatedFlag)
	for _, arg := range args {
		if arg == AlreadyElevatedFlag {
			continue
		}
		child = append(child, arg)
	}
	return child
}
