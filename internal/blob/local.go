package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs as files in a single flat directory.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if it does not exist yet.
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: abs}, nil
}

// resolve joins name onto the upload directory and rejects anything
// that would land outside it. Names come from URLs, so traversal
// sequences must never reach the filesystem.
func (l *Local) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") {
		return "", ErrInvalidName
	}
	p := filepath.Join(l.dir, name)
	if filepath.Dir(p) != l.dir {
		return "", ErrInvalidName
	}
	return p, nil
}

func (l *Local) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	p, err := l.resolve(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("close blob: %w", err)
	}
	return p, nil
}

func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	p, err := l.resolve(name)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("open blob: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, ct, nil
}

func (l *Local) Remove(ctx context.Context, name string) error {
	p, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
