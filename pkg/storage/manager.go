package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/inbasree/weddingvista/config"
	"github.com/inbasree/weddingvista/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager.
// Call once at application startup (e.g. in internal/server/server.go).
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	// Always boot local disk.
	disks["local"] = newLocalDisk()

	// Boot S3 disk only if bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
//
//	storage.Use("s3").Put("products/1693526400-gobi.jpg", data)
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk lets you plug in a custom Disk implementation at boot time.
// Tests use this to swap in an in-memory disk.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// LocalRoot returns the directory backing the local disk so the server can
// mount a static file handler over it.
func LocalRoot() string {
	if d, ok := Use("local").(*localDisk); ok {
		return d.Root()
	}
	return config.StorageLocalRoot()
}

// Default returns the configured default disk. When that disk failed to
// initialize (an s3 default with bad credentials, say) it falls back to the
// local disk instead of panicking, so the server still boots and serves.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	d, ok := disks[name]
	if !ok {
		d = disks["local"]
	}
	managerMu.RUnlock()
	if !ok {
		logger.Warn("storage: default disk unavailable, using local", "disk", name)
	}
	return d
}

// ─── Default disk helpers ─────────────────────────────────────────────────────
// These proxy to the default disk (STORAGE_DISK env var, default "local").

func defaultD() Disk { return Default() }

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// GetStream returns a ReadCloser from the default disk.
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Missing reports whether path is absent on the default disk.
func Missing(path string) bool { return defaultD().Missing(path) }

// Size returns the byte size of path on the default disk.
func Size(path string) (int64, error) { return defaultD().Size(path) }

// URL returns the public URL of path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Delete removes path from the default disk. Missing files are not an error.
func Delete(path string) error { return defaultD().Delete(path) }
