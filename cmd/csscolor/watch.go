package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"bennypowers.dev/csscolor/internal/check"
	"bennypowers.dev/csscolor/internal/log"
	"github.com/fsnotify/fsnotify"
)

// watcher re-checks files under root that match patterns when they change.
// fsnotify is not recursive, so every directory is added on its own.
type watcher struct {
	root     string
	patterns []string
	onChange func(path string)

	fs *fsnotify.Watcher
}

// watch blocks until ctx is done
func watch(ctx context.Context, root string, patterns []string, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	w := &watcher{root: root, patterns: patterns, onChange: onChange, fs: fsw}
	if err := w.addTree(root); err != nil {
		return err
	}

	log.Info("Watching %s for changes", root)
	return w.loop(ctx)
}

// addTree watches dir and its subdirectories
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && slices.Contains([]string{"node_modules", ".git"}, d.Name()) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watch error: %v", err)
		}
	}
}

// handle reacts to one event. New directories are watched; written or
// created files that match the patterns are re-checked.
func (w *watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) && isDir(event.Name) {
		if err := w.addTree(event.Name); err != nil {
			log.Warn("Failed to watch %s: %v", event.Name, err)
		}
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !check.Matches(w.root, event.Name, w.patterns) {
		return
	}

	log.Debug("File %s changed, re-checking", event.Name)
	w.onChange(event.Name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
