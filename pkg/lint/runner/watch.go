package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long Watch waits for further events before linting.
const watchDebounce = 100 * time.Millisecond

// watchSet tracks what a Watch call is interested in.
type watchSet struct {
	files map[string]bool // files named explicitly
	dirs  map[string]bool // directories watched recursively
}

// Watch lints paths once, then re-lints changed files until ctx is done.
// onReport is called from the watching goroutine with the initial report
// and with one report per batch of changes.
func (r *Runner) Watch(ctx context.Context, paths []string, onReport func(*Report)) error {
	report, err := r.Run(ctx, paths)
	if err != nil {
		return err
	}
	onReport(report)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	set := &watchSet{files: map[string]bool{}, dirs: map[string]bool{}}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			if err := r.watchDir(watcher, set, p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			continue
		}
		set.files[filepath.Clean(p)] = true
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	return r.watchLoop(ctx, watcher, set, onReport)
}

// watchDir recursively adds a directory to the watcher.
func (r *Runner) watchDir(watcher *fsnotify.Watcher, set *watchSet, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && (skipDir(d.Name()) || r.excluded(p)) {
			return filepath.SkipDir
		}
		set.dirs[filepath.Clean(p)] = true
		return watcher.Add(p)
	})
}

// wants reports whether a change to name should trigger a lint.
func (r *Runner) wants(set *watchSet, name string) bool {
	if set.files[name] {
		return true
	}
	return set.dirs[filepath.Dir(name)] && r.included(name) && !r.excluded(name)
}

// watchLoop batches write and create events and lints each batch once no
// event has arrived for watchDebounce.
func (r *Runner) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, set *watchSet, onReport func(*Report)) error {
	log := r.logger()
	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only handle write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)

			if event.Op&fsnotify.Create != 0 && set.dirs[filepath.Dir(name)] {
				if info, err := os.Stat(name); err == nil && info.IsDir() {
					if !skipDir(info.Name()) && !r.excluded(name) {
						if err := r.watchDir(watcher, set, name); err != nil {
							log.Warn("failed to watch directory", "dir", name, "error", err)
						}
					}
					continue
				}
			}

			if !r.wants(set, name) {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(watchDebounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			sort.Strings(files)

			log.Debug("change detected", "files", len(files))
			report, err := r.LintFiles(ctx, files)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			onReport(report)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
