// Package storage abstracts file storage behind named disks. The default
// disk comes from config (STORAGE_DISK); "local" writes under a root
// directory, "s3" talks to an S3 bucket.
package storage

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/smartbytes/canteen/config"
)

// Disk is a single storage backend.
type Disk interface {
	Put(path string, r io.Reader) error
	Get(path string) (io.ReadCloser, error)
	Delete(path string) error
	Exists(path string) (bool, error)
	URL(path string) string
}

var (
	mu    sync.RWMutex
	disks = map[string]Disk{}
	def   string
)

// ErrDiskNotConfigured is returned when no disk is available for an operation.
var ErrDiskNotConfigured = errors.New("storage: disk not configured")

// Connect initialises the configured disks. The local disk is always
// registered; the s3 disk only when a bucket is configured.
func Connect() error {
	mu.Lock()
	defer mu.Unlock()

	local, err := newLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}
	disks["local"] = local

	if config.StorageS3Bucket() != "" {
		s3disk, err := newS3Disk()
		if err != nil {
			return err
		}
		disks["s3"] = s3disk
	}

	def = config.StorageDefault()
	if _, ok := disks[def]; !ok {
		def = "local"
	}
	return nil
}

// Use returns a named disk, or nil when it is not registered.
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[name]
}

func defaultDisk() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[def]
}

// Put writes the content at path on the default disk.
func Put(path string, r io.Reader) error {
	d := defaultDisk()
	if d == nil {
		return ErrDiskNotConfigured
	}
	return d.Put(path, r)
}

// Get opens the content at path on the default disk.
func Get(path string) (io.ReadCloser, error) {
	d := defaultDisk()
	if d == nil {
		return nil, ErrDiskNotConfigured
	}
	return d.Get(path)
}

// Delete removes the content at path on the default disk.
func Delete(path string) error {
	d := defaultDisk()
	if d == nil {
		return ErrDiskNotConfigured
	}
	return d.Delete(path)
}

// Exists reports whether path exists on the default disk.
func Exists(path string) (bool, error) {
	d := defaultDisk()
	if d == nil {
		return false, ErrDiskNotConfigured
	}
	return d.Exists(path)
}

// URL returns the public URL for path on the default disk, or an empty
// string when storage is not configured.
func URL(path string) string {
	d := defaultDisk()
	if d == nil {
		return ""
	}
	return d.URL(path)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
