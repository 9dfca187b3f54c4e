package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yokitheyo/declutter/internal/model"
)

// NormalizePath converts a client supplied path to the canonical internal
// form: backslashes become forward slashes, a Windows drive letter is
// upper-cased and the result is cleaned. Relative paths are rejected.
func NormalizePath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", fmt.Errorf("%w: empty path", model.ErrInvalidInput)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: path contains NUL byte", model.ErrInvalidInput)
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if len(p) >= 2 && p[1] == ':' {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	p = filepath.Clean(filepath.FromSlash(p))
	if !filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: path must be absolute: %s", model.ErrInvalidInput, raw)
	}
	return p, nil
}

// WirePath is the representation used in responses.
func WirePath(p string) string {
	return filepath.ToSlash(p)
}

// ValidateFilename rejects names that would escape the target directory.
func ValidateFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", model.ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", model.ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: name contains NUL byte", model.ErrInvalidName)
	}
	return nil
}
