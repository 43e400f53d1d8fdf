package storage

import (
	"io"
	"os"
	"path/filepath"
)

type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk(root, baseURL string) (*localDisk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &localDisk{root: root, baseURL: baseURL}, nil
}

func (d *localDisk) fullPath(path string) string {
	return filepath.Join(d.root, filepath.Clean("/"+path))
}

func (d *localDisk) Put(path string, r io.Reader) error {
	full := d.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}

func (d *localDisk) Get(path string) (io.ReadCloser, error) {
	return os.Open(d.fullPath(path))
}

func (d *localDisk) Delete(path string) error {
	err := os.Remove(d.fullPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *localDisk) Exists(path string) (bool, error) {
	_, err := os.Stat(d.fullPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (d *localDisk) URL(path string) string {
	return joinURL(d.baseURL, path)
}
