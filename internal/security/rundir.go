// Package security guards the file names and directories a sweep writes to.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape is returned when a path resolves outside its base directory.
var ErrPathEscape = errors.New("security: path escapes base directory")

// maxNameLen bounds names derived from run IDs.
const maxNameLen = 128

// SanitizeFilename maps an arbitrary identifier to a single path element.
// Runs of characters other than ASCII letters, digits, '.', '_' and '-'
// become one underscore; leading and trailing dots and underscores are
// trimmed. An empty result becomes "unknown".
func SanitizeFilename(s string) string {
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range s {
		if b.Len() >= maxNameLen {
			break
		}
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-'
		if !ok {
			if !pendingUnderscore {
				b.WriteByte('_')
				pendingUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		pendingUnderscore = false
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}

// WithinDir reports an ErrPathEscape error if path, once cleaned and made
// absolute, is not base or a descendant of base. Symlinks are resolved for
// whichever prefix of each path already exists.
func WithinDir(path, base string) error {
	absPath, err := canonical(path)
	if err != nil {
		return err
	}
	absBase, err := canonical(base)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathEscape, path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s is outside %s", ErrPathEscape, path, base)
	}
	return nil
}

// canonical returns the absolute form of p with symlinks resolved in its
// longest existing ancestor.
func canonical(p string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	existing, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}

// RunDir returns the directory for run runID inside outputDir. The run ID
// is sanitized to one path element and the result is checked to stay
// inside outputDir.
func RunDir(outputDir, runID string) (string, error) {
	dir := filepath.Join(outputDir, SanitizeFilename(runID))
	if err := WithinDir(dir, outputDir); err != nil {
		return "", err
	}
	return dir, nil
}
