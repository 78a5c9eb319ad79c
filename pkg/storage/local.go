package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local stores files under a root directory.
type Local struct {
	root    string
	baseURL string
}

// NewLocal roots the disk at root, made absolute against the working directory.
func NewLocal(root, baseURL string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage/local: resolve root %q: %w", root, err)
	}
	return &Local{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root is the absolute directory files are written under.
func (d *Local) Root() string { return d.root }

func (d *Local) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(path.Clean("/"+p)))
}

func (d *Local) Put(_ context.Context, p string, content []byte) error {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	return nil
}

func (d *Local) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *Local) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Stat(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage/local: stat %s: %w", p, err)
	}
	return true, nil
}

func (d *Local) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *Local) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	out := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(strings.Trim(directory, "/"), e.Name()))
		}
	}
	return out, nil
}

func (d *Local) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(p, "/")
}
