// Package notify shows user-facing warnings when elevation is refused.
package notify

import "fmt"

// Permission denied warning shown when the elevated restart fails.
const (
	PermissionDeniedTitle = "Permission Denied"
	PermissionDeniedText  = "Administrator permission required to remove entries."
)

// Notifier displays a warning to the user. Implementations block until the
// user has acknowledged it, where the platform allows that.
type Notifier interface {
	Warn(title, text string) error
}

// PermissionDenied shows the fixed permission denied warning.
func PermissionDenied(n Notifier) error {
	if err := n.Warn(PermissionDeniedTitle, PermissionDeniedText); err != nil {
		return fmt.Errorf("failed to show permission denied warning: %w", err)
	}
	return nil
}
