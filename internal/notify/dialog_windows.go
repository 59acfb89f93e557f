//go:build windows

package notify

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// dialogStyle is an OK button with a warning icon.
const dialogStyle = windows.MB_OK | windows.MB_ICONWARNING

// Dialog shows warnings in a modal message box.
type Dialog struct{}

func (Dialog) Warn(title, text string) error {
	lpText, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("converting text to ptr: %w", err)
	}
	lpCaption, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("converting title to ptr: %w", err)
	}
	if _, err := windows.MessageBox(0, lpText, lpCaption, dialogStyle); err != nil {
		return fmt.Errorf("calling MessageBoxW: %w", err)
	}
	return nil
}

// Default returns the message box notifier.
func Default() Notifier {
	return Dialog{}
}
