//go:build windows

package privilege

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var platform = platformImpl{
	isAdministrator: isAdministratorWindows,
	newLauncher:     func() Launcher { return shellLauncher{} },
}

// isAdministratorWindows checks whether the token of the calling thread (or
// process) is a member of BUILTIN\Administrators. A UAC filtered token holds
// the group as deny-only, so a non-elevated administrator reports false.
func isAdministratorWindows() (bool, error) {
	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false, fmt.Errorf("failed to allocate administrators SID: %w", err)
	}
	defer windows.FreeSid(sid) //nolint:errcheck // nothing to do on free failure

	member, err := windows.Token(0).IsMember(sid)
	if err != nil {
		return false, fmt.Errorf("failed to check token membership: %w", err)
	}
	return member, nil
}
