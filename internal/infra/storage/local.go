// Package storage keeps generated quote files, on local disk or in a GCS
// bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("storage: invalid object name")

// Local writes files under Dir. Files appear atomically: data goes to a
// temporary file in the same directory which is then renamed.
type Local struct {
	Dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &Local{Dir: dir}, nil
}

func (l *Local) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}
	final := filepath.Join(l.Dir, name)

	tmp, err := os.CreateTemp(l.Dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("storage: temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("storage: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("storage: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o640); err != nil {
		cleanup()
		return "", fmt.Errorf("storage: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", fmt.Errorf("storage: rename %s: %w", name, err)
	}
	return final, nil
}

// checkName accepts a single path element.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
