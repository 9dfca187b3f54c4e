package cleanup

import (
	"fmt"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/yokitheyo/declutter/internal/model"
)

// NormalizeExtension trims ext and prepends the "." separator when missing.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return "", fmt.Errorf("%w: file extension is required", model.ErrInvalidInput)
	}
	if strings.ContainsAny(ext, `/\`) || strings.ContainsRune(ext, 0) {
		return "", fmt.Errorf("%w: invalid file extension %q", model.ErrInvalidInput, ext)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext, nil
}

// matcher is the single predicate shared by scan and execute.
type matcher struct {
	ext           string
	cutoff        int64
	caseSensitive bool
	protected     []string
}

func newMatcher(f model.CleanupFilter, caseSensitive bool, protected []string) (matcher, error) {
	ext, err := NormalizeExtension(f.Extension)
	if err != nil {
		return matcher{}, err
	}
	if !caseSensitive {
		ext = strings.ToLower(ext)
	}
	return matcher{
		ext:           ext,
		cutoff:        f.Cutoff,
		caseSensitive: caseSensitive,
		protected:     protected,
	}, nil
}

func (m matcher) nameMatches(name string) bool {
	if !m.caseSensitive {
		name = strings.ToLower(name)
	}
	return strings.HasSuffix(name, m.ext)
}

func (m matcher) isProtected(name string) bool {
	for _, pattern := range m.protected {
		if wildcard.Match(pattern, name) {
			return true
		}
	}
	return false
}

func (m matcher) olderThanCutoff(modUnix int64) bool {
	return modUnix < m.cutoff
}
