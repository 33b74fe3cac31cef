package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherHandle(t *testing.T) {
	root := t.TempDir()
	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer fsw.Close()

	var changed []string
	w := &watcher{
		root:     root,
		patterns: []string{"**/*.css"},
		onChange: func(path string) { changed = append(changed, path) },
		fs:       fsw,
	}

	css := filepath.Join(root, "a.css")
	w.handle(fsnotify.Event{Name: css, Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: css, Op: fsnotify.Create})
	w.handle(fsnotify.Event{Name: css, Op: fsnotify.Remove})
	w.handle(fsnotify.Event{Name: css, Op: fsnotify.Chmod})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "node_modules", "x.css"), Op: fsnotify.Write})

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	w.handle(fsnotify.Event{Name: sub, Op: fsnotify.Create})

	assert.Equal(t, []string{css, css}, changed)
	assert.Contains(t, fsw.WatchList(), sub)
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a.css")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, root, []string{"*.css"}, func(path string) {
			select {
			case changed <- path:
			default:
			}
		})
	}()

	// the watcher starts asynchronously, so keep writing until it notices
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(10 * time.Second)

	for waiting := true; waiting; {
		select {
		case path := <-changed:
			assert.Equal(t, target, path)
			waiting = false
		case <-ticker.C:
			require.NoError(t, os.WriteFile(target, []byte("a { color: red; }"), 0o644))
		case <-deadline:
			t.Fatal("timed out waiting for a change notification")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}
