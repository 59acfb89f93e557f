package privilege

import "testing"

func TestIsAdministrator(t *testing.T) {
	if _, err := IsAdministrator(); err != nil {
		t.Fatalf("IsAdministrator() error = %v", err)
	}
}

func TestPlatformLauncher(t *testing.T) {
	if _, ok := platform.newLauncher().(shellLauncher); !ok {
		t.Errorf("newLauncher() = %T, want shellLauncher", platform.newLauncher())
	}
}
