//go:build !windows

package notify

// Default returns the console notifier; there is no portable modal dialog
// outside Windows.
func Default() Notifier {
	return NewConsole()
}
