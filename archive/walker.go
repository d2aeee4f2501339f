// Package archive builds Walk abstraction on top of "archive/zip". Jahia
// site exports are zip archives with one "export_<lang>.xml" per language
// next to site files.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"
)

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument is the path passed to Walk. If an error is returned, processing
// stops.
type WalkFunc func(archive string, file *zip.File) error

// Match selects archive entries (by slash separated name) to be visited.
type Match func(name string) bool

// Prefix matches entries under given path inside archive, empty prefix
// matches everything.
func Prefix(prefix string) Match {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// All matches entries selected by every one of matches.
func All(matches ...Match) Match {
	return func(name string) bool {
		for _, m := range matches {
			if !m(name) {
				return false
			}
		}
		return true
	}
}

// Walk calls walkFn for every file in the archive selected by match, in
// archive order. Archives with absolute entry names or names containing ".."
// are refused (Zip Slip).
func Walk(archive string, match Match, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}
