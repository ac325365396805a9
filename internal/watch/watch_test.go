package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func eventFor(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}

func TestWatcher_TriggersAfterDebounce(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("x"), 0o644))

	w, err := New(root, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggered := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() {
			select {
			case triggered <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watch loop a moment to start before mutating the tree.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("changed"), 0o644))

	select {
	case <-triggered:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not trigger after content change")
	}

	cancel()
	<-done
}

func TestWatcher_IgnoresHiddenAndTempFiles(t *testing.T) {
	w := &Watcher{}

	require.False(t, w.relevant(eventFor(".hidden.md")))
	require.False(t, w.relevant(eventFor("page.md~")))
	require.False(t, w.relevant(eventFor(".page.md.swp")))
	require.True(t, w.relevant(eventFor("page.md")))
}

func TestWatcher_NewSubdirectoryIsPickedUp(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, 30*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggers := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() { triggers <- struct{}{} })
	}()

	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(root, "guides")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// Wait for the directory-create burst to flush.
	select {
	case <-triggers:
	case <-time.After(5 * time.Second):
		t.Fatal("no trigger for directory creation")
	}

	require.NoError(t, os.WriteFile(filepath.Join(sub, "new.md"), []byte("x"), 0o644))
	select {
	case <-triggers:
	case <-time.After(5 * time.Second):
		t.Fatal("no trigger for file inside new directory")
	}

	cancel()
	<-done
}
