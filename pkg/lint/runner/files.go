package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// skipDir reports whether a directory is never descended into.
func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && name[0] == '.')
}

// Collect expands paths into the sorted, de-duplicated list of lintable
// files. Files named explicitly are kept even if their extension is not in
// the include list; directories are filtered.
func (r *Runner) Collect(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if !r.excluded(root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && (skipDir(d.Name()) || r.excluded(p)) {
					return filepath.SkipDir
				}
				return nil
			}
			if r.included(p) && !r.excluded(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// included reports whether p has a lintable extension.
func (r *Runner) included(p string) bool {
	exts := r.Extensions
	if len(exts) == 0 {
		exts = syntax.SupportedExtensions()
	}
	name := strings.ToLower(filepath.Base(p))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// excluded matches p against the exclude patterns. A pattern without a
// slash matches any path component; one with a slash matches the whole
// slash-separated path or a prefix directory of it.
func (r *Runner) excluded(p string) bool {
	if len(r.Exclude) == 0 {
		return false
	}
	rel := filepath.ToSlash(filepath.Clean(p))
	parts := strings.Split(rel, "/")
	for _, pattern := range r.Exclude {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if pattern == "" {
			continue
		}
		if !strings.Contains(pattern, "/") {
			for _, part := range parts {
				if ok, _ := path.Match(pattern, part); ok {
					return true
				}
			}
			continue
		}
		for i := len(parts); i > 0; i-- {
			if ok, _ := path.Match(pattern, strings.Join(parts[:i], "/")); ok {
				return true
			}
		}
	}
	return false
}
