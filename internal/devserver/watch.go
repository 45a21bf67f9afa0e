package devserver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watch calls rebuild after files under paths change, at most once per
// burst of events. Directories are watched recursively, including ones
// created later. Missing paths are skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, paths []string, debounce time.Duration, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	set := watchSet{files: map[string]bool{}}
	for _, root := range paths {
		root = filepath.Clean(root)
		info, statErr := os.Stat(root)
		if statErr != nil {
			log.Debug().Str("path", root).Msg("not found, not watching")
			continue
		}
		if !info.IsDir() {
			// Editors save by renaming a temporary file over the original,
			// which drops a watch on the file itself.
			if err := watcher.Add(filepath.Dir(root)); err != nil {
				log.Warn().Str("path", root).Err(err).Msg("failed to watch")
				continue
			}
			set.files[root] = true
			continue
		}
		set.trees = append(set.trees, root)
		addTree(watcher, root)
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			rebuild()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			if !set.wants(event.Name) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				addTree(watcher, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// watchSet is what Watch reports changes for: everything below trees, and
// the individual files, whose directories are watched for their sake.
type watchSet struct {
	trees []string
	files map[string]bool
}

func (s watchSet) wants(name string) bool {
	name = filepath.Clean(name)
	if s.files[name] {
		return true
	}
	for _, t := range s.trees {
		if t == "." || name == t || strings.HasPrefix(name, t+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func addTree(w *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("error walking")
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				log.Warn().Str("path", path).Err(err).Msg("failed to watch")
			}
		}
		return nil
	})
	if err != nil {
		log.Warn().Str("path", root).Err(err).Msg("error setting up watch")
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
