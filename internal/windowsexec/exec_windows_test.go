package windowsexec

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

func Test_newRunAsCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		directory     string
		parameters    []string
		mask          uint32
		wantDirectory bool
		wantParams    string
	}{
		{
			name:          "no wait with directory",
			directory:     `C:\Users\test`,
			parameters:    []string{"check"},
			mask:          SEE_MASK_NOASYNC,
			wantDirectory: true,
			wantParams:    "check",
		},
		{
			name:          "wait without directory",
			directory:     "",
			parameters:    []string{"--_already-elevated", "check"},
			mask:          SEE_MASK_NOCLOSEPROCESS | SEE_MASK_NOASYNC,
			wantDirectory: false,
			wantParams:    "--_already-elevated check",
		},
		{
			name:          "arguments with spaces are quoted",
			directory:     "",
			parameters:    []string{"remove", "my entry"},
			mask:          SEE_MASK_NOASYNC,
			wantDirectory: false,
			wantParams:    `remove "my entry"`,
		},
		{
			name:          "no parameters",
			mask:          SEE_MASK_NOASYNC,
			wantDirectory: false,
			wantParams:    "",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			call, err := newRunAsCall(`C:\bin\adminhelper.exe`, tc.directory, tc.parameters, tc.mask)
			if err != nil {
				t.Fatalf("newRunAsCall() error = %v", err)
			}
			info := &call.info

			if info.cbSize != uint32(unsafe.Sizeof(*info)) {
				t.Errorf("cbSize = %d, want %d", info.cbSize, unsafe.Sizeof(*info))
			}
			if info.fMask != tc.mask {
				t.Errorf("fMask = %#x, want %#x", info.fMask, tc.mask)
			}
			if info.nShow != windows.SW_NORMAL {
				t.Errorf("nShow = %d, want %d", info.nShow, windows.SW_NORMAL)
			}
			if got := windows.UTF16PtrToString(call.strings[0]); got != "runas" {
				t.Errorf("verb = %q, want %q", got, "runas")
			}
			if got := windows.UTF16PtrToString(call.strings[2]); got != tc.wantParams {
				t.Errorf("parameters = %q, want %q", got, tc.wantParams)
			}
			if (info.lpDirectory != 0) != tc.wantDirectory {
				t.Errorf("directory set = %v, want %v", info.lpDirectory != 0, tc.wantDirectory)
			}
		})
	}
}

func Test_newRunAsCallRejectsNUL(t *testing.T) {
	t.Parallel()

	if _, err := newRunAsCall("bad\x00file", "", nil, SEE_MASK_NOASYNC); err == nil {
		t.Error("newRunAsCall() expected error for file containing NUL")
	}
}

func Test_shellExecuteError(t *testing.T) {
	t.Parallel()

	t.Run("cancelled prompt", func(t *testing.T) {
		t.Parallel()

		err := shellExecuteError(windows.ERROR_CANCELLED, 5)
		if !errors.Is(err, ErrCancelled) || !errors.Is(err, windows.ERROR_CANCELLED) {
			t.Errorf("shellExecuteError() = %v, want %v wrapping ERROR_CANCELLED", err, ErrCancelled)
		}
	})

	t.Run("other failure carries hInstApp", func(t *testing.T) {
		t.Parallel()

		err := shellExecuteError(windows.ERROR_FILE_NOT_FOUND, 2)
		if !errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
			t.Errorf("shellExecuteError() = %v, want it to wrap ERROR_FILE_NOT_FOUND", err)
		}
		if errors.Is(err, ErrCancelled) {
			t.Errorf("shellExecuteError() = %v, reported as cancelled", err)
		}
		if !strings.Contains(err.Error(), "hInstApp=2") {
			t.Errorf("shellExecuteError() = %q, want it to contain hInstApp=2", err)
		}
	})
}
