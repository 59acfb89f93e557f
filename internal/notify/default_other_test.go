//go:build !windows

package notify

import "testing"

func TestDefaultIsConsole(t *testing.T) {
	c, ok := Default().(*Console)
	if !ok {
		t.Fatalf("Default() = %T, want *Console", Default())
	}
	if c.Out == nil {
		t.Error("Default() console has no output stream")
	}
}
