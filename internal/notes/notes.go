// Package notes is the file-system side of vocablink: it finds notes on
// disk, reads them, and writes back the linked text atomically while
// holding a per-note lock.
package notes

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotNote is returned for paths that are directories or do not carry a
// note extension.
var ErrNotNote = errors.New("not a note")

// Discover walks root and returns every file whose extension is in exts,
// skipping paths that match an exclude glob. Results are sorted.
func Discover(root string, exts, excludes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot stat notes root %s: %w", root, err)
	}
	if !info.IsDir() {
		if !HasExt(root, exts) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotNote)
		}
		return []string{root}, nil
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if MatchesExclude(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !HasExt(path, exts) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan notes: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// HasExt reports whether path ends in one of exts (case-insensitive).
func HasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// MatchesExclude reports whether relPath matches any of the given glob
// patterns, tried against both the full relative path and its basename.
func MatchesExclude(relPath string, patterns []string) bool {
	name := filepath.Base(relPath)
	for _, pattern := range patterns {
		// Directory patterns like ".obsidian/" match the directory itself.
		pattern = strings.TrimSuffix(pattern, "/")
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.ToSlash(relPath)); matched {
			return true
		}
	}
	return false
}

// Fingerprint returns the hex MD5 of text.
func Fingerprint(text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(text)))
}
