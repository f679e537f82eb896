package storage

import "testing"

// swapManagerState installs a throwaway disk registry for the test and
// restores the real one afterwards.
func swapManagerState(t *testing.T, d map[string]Disk, def string) {
	t.Helper()
	managerMu.Lock()
	prevDisks, prevDefault := disks, defaultDisk
	disks, defaultDisk = d, def
	managerMu.Unlock()
	t.Cleanup(func() {
		managerMu.Lock()
		disks, defaultDisk = prevDisks, prevDefault
		managerMu.Unlock()
	})
}

func TestDefaultFallsBackToLocal(t *testing.T) {
	local := testLocalDisk(t)
	// The configured default never registered, as happens when s3 boot fails.
	swapManagerState(t, map[string]Disk{"local": local}, "s3")

	d := Default()
	if d != Disk(local) {
		t.Fatalf("expected fallback to local disk, got %T", d)
	}
}

func TestDefaultPrefersConfiguredDisk(t *testing.T) {
	local := testLocalDisk(t)
	other := testLocalDisk(t)
	swapManagerState(t, map[string]Disk{"local": local, "s3": other}, "s3")

	if d := Default(); d != Disk(other) {
		t.Fatalf("expected the configured default disk, got %T", d)
	}
}
