// Package storage writes uploaded assets to the local upload directory that
// is served under /uploads.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corpsite/corpsite/internal/service"
)

// PublicPrefix is the URL prefix under which the upload directory is served.
const PublicPrefix = "/uploads"

const (
	teamDir          = "team"
	defaultExtension = ".jpg"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
}

// ImageStore saves validated image uploads under generated names.
type ImageStore struct {
	root string
	now  func() time.Time
}

// NewImageStore returns a store rooted at dir, creating it if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{root: root, now: time.Now}, nil
}

// Root returns the absolute upload directory.
func (s *ImageStore) Root() string {
	return s.root
}

// StoreTeamImage validates and writes a team member photo. It returns the
// public path of the stored file, e.g. /uploads/team/1700000000000-<uuid>.png.
func (s *ImageStore) StoreTeamImage(r io.Reader, filename, contentType string) (string, error) {
	if r == nil {
		return "", invalid("File is required")
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") {
		return "", invalid("Only image files are allowed")
	}
	if strings.HasPrefix(ct, "image/svg") {
		return "", invalid("SVG images are not allowed")
	}
	ext, err := extension(filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, teamDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create team upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)
	target := filepath.Join(dir, name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = invalid("File is required")
	}
	if err != nil {
		os.Remove(target)
		return "", err
	}

	return path.Join(PublicPrefix, teamDir, name), nil
}

// extension returns the lower-cased extension of the cleaned original file
// name, .jpg when it has none.
func extension(filename string) (string, error) {
	base := path.Base(path.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	ext := strings.ToLower(path.Ext(base))
	if ext == "" {
		return defaultExtension, nil
	}
	if !allowedExtensions[ext] {
		return "", invalid("Unsupported image extension %q", ext)
	}
	return ext, nil
}

func invalid(format string, args ...interface{}) error {
	return &service.ValidationError{Message: fmt.Sprintf(format, args...)}
}
