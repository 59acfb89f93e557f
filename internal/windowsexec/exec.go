//go:build windows

// Package windowsexec starts processes through the Windows shell so that
// the "runas" verb can raise a UAC consent prompt.
package windowsexec

import (
	"errors"
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go exec.go
//sys shellExecuteExW(info *shellExecuteInfoW) (err error) [failretval==0] = shell32.ShellExecuteExW

// shellExecuteInfoW is the input/output struct for ShellExecuteExW.
// See: https://learn.microsoft.com/en-us/windows/win32/api/shellapi/ns-shellapi-shellexecuteinfow
type shellExecuteInfoW struct {
	cbSize         uint32
	fMask          uint32
	hwnd           windows.Handle
	lpVerb         uintptr
	lpFile         uintptr
	lpParameters   uintptr
	lpDirectory    uintptr
	nShow          int32
	hInstApp       windows.Handle
	lpIDList       uintptr
	lpClass        uintptr
	hkeyClass      windows.Handle
	dwHotKey       uint32
	hIconOrMonitor windows.Handle
	hProcess       windows.Handle
}

// runAsCall pairs the ShellExecuteExW struct with the UTF-16 strings its
// uintptr fields point to, so they stay reachable during the call.
type runAsCall struct {
	info    shellExecuteInfoW
	strings []*uint16
}

const (
	// SEE_MASK_NOCLOSEPROCESS (0x00000040):
	// Use to indicate that the hProcess member receives the process handle.
	// The calling application is responsible for closing the handle.
	SEE_MASK_NOCLOSEPROCESS = 0x40

	// SEE_MASK_NOASYNC (0x00000100):
	// Wait for the execute operation to complete before returning.
	SEE_MASK_NOASYNC = 0x100

	verbRunAs = "runas"
)

// ErrCancelled is returned when the user declines the UAC prompt.
var ErrCancelled = errors.New("elevation prompt cancelled by user")

// RunAs starts file with elevated privileges via the UAC prompt and returns
// as soon as the new process has been created.
func RunAs(file, directory string, parameters []string) error {
	call, err := newRunAsCall(file, directory, parameters, SEE_MASK_NOASYNC)
	if err != nil {
		return err
	}
	return call.execute()
}

// RunAsAndWait starts file with elevated privileges via the UAC prompt and
// waits for it to exit, or until timeout is exhausted. A timeout <= 0 waits
// forever. It returns the exit code of the elevated process.
func RunAsAndWait(
	file, directory string,
	timeout time.Duration,
	parameters []string,
) (uint32, error) {
	call, err := newRunAsCall(file, directory, parameters, SEE_MASK_NOCLOSEPROCESS|SEE_MASK_NOASYNC)
	if err != nil {
		return 0, err
	}
	if err := call.execute(); err != nil {
		return 0, err
	}
	info := &call.info

	if info.hProcess == 0 {
		return 0, fmt.Errorf("unexpected null hProcess handle from shellExecuteExW")
	}
	defer windows.CloseHandle(info.hProcess) //nolint:errcheck // nothing to do on close failure

	waitTime := uint32(windows.INFINITE)
	if timeout > 0 {
		waitTime = uint32(timeout.Milliseconds())
	}

	w, err := windows.WaitForSingleObject(info.hProcess, waitTime)
	if err != nil {
		return 0, fmt.Errorf("waiting for elevated process: %w", err)
	}

	switch w {
	case windows.WAIT_OBJECT_0:
	case uint32(windows.WAIT_TIMEOUT):
		return 0, fmt.Errorf("timed out after %s waiting for elevated process", timeout)
	default:
		return 0, fmt.Errorf("unexpected wait result: %d", w)
	}

	var code uint32
	if err := windows.GetExitCodeProcess(info.hProcess, &code); err != nil {
		return 0, fmt.Errorf("getting exit code: %w", err)
	}
	return code, nil
}

func newRunAsCall(file, directory string, parameters []string, mask uint32) (*runAsCall, error) {
	lpVerb, err := windows.UTF16PtrFromString(verbRunAs)
	if err != nil {
		return nil, fmt.Errorf("converting verb to ptr: %w", err)
	}
	lpFile, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return nil, fmt.Errorf("converting file to ptr: %w", err)
	}
	lpParameters, err := windows.UTF16PtrFromString(windows.ComposeCommandLine(parameters))
	if err != nil {
		return nil, fmt.Errorf("converting parameters to ptr: %w", err)
	}

	call := &runAsCall{
		info: shellExecuteInfoW{
			fMask:        mask,
			lpVerb:       uintptr(unsafe.Pointer(lpVerb)),
			lpFile:       uintptr(unsafe.Pointer(lpFile)),
			lpParameters: uintptr(unsafe.Pointer(lpParameters)),
			nShow:        windows.SW_NORMAL,
		},
		strings: []*uint16{lpVerb, lpFile, lpParameters},
	}
	// an empty directory lets the shell use the current one
	if directory != "" {
		lpDirectory, err := windows.UTF16PtrFromString(directory)
		if err != nil {
			return nil, fmt.Errorf("converting directory to ptr: %w", err)
		}
		call.info.lpDirectory = uintptr(unsafe.Pointer(lpDirectory))
		call.strings = append(call.strings, lpDirectory)
	}
	call.info.cbSize = uint32(unsafe.Sizeof(call.info))
	return call, nil
}

func (c *runAsCall) execute() error {
	info := &c.info
	err := shellExecuteExW(info)
	runtime.KeepAlive(c.strings)
	if err != nil {
		return shellExecuteError(err, info.hInstApp)
	}
	return nil
}

// shellExecuteError wraps a ShellExecuteExW failure with the hInstApp code
// the shell reported alongside it.
func shellExecuteError(err error, hInstApp windows.Handle) error {
	if errors.Is(err, windows.ERROR_CANCELLED) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return fmt.Errorf("calling shellExecuteExW (hInstApp=%d): %w", hInstApp, err)
}
