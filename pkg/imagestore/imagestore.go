package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store saves uploaded product images and returns the public URL path.
type Store interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// ObjectName returns the stored name for an upload: the millisecond
// timestamp, a dash, and the base name of the original file.
func ObjectName(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base
}

// LocalStore writes images to a directory served as static files.
type LocalStore struct {
	dir     string
	urlBase string
	now     func() time.Time
}

// NewLocalStore creates dir if needed. urlBase is the path the directory
// is served under, e.g. "/images".
func NewLocalStore(dir, urlBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlBase: urlBase, now: time.Now}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	name := ObjectName(s.now(), filename)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return path.Join(s.urlBase, name), nil
}
