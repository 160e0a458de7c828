package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Saver persists an uploaded image before analysis starts. Save returns the
// stored (renamed) filename.
type Saver interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalSaver writes uploads to a directory on disk, prefixing each file with
// a timestamp so repeated uploads of the same label never collide.
type LocalSaver struct {
	dir string
}

func NewLocalSaver(dir string) (*LocalSaver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalSaver{dir: dir}, nil
}

func (s *LocalSaver) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), sanitizeFilename(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return name, nil
}

// Path returns the on-disk path for a stored filename.
func (s *LocalSaver) Path(storedName string) string {
	return filepath.Join(s.dir, storedName)
}

// sanitizeFilename strips directory components and anything outside a safe
// character set.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := b.String()
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}
