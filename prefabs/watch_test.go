package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsControllerWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "controller.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed:\n  max_base: 4\n"), 0o644))

	select {
	case got := <-w.Changes():
		assert.Equal(t, Change{Path: path, Kind: ChangeController}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change for controller.yaml")
	}
}

func TestWatcherWatchesCourses(t *testing.T) {
	dir := t.TempDir()
	courses := filepath.Join(dir, "courses")
	require.NoError(t, os.Mkdir(courses, 0o755))
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(courses, "gap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: gap\n"), 0o644))

	select {
	case got := <-w.Changes():
		assert.Equal(t, ChangeCourse, got.Kind)
		assert.Equal(t, path, got.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change for courses/gap.yaml")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Changes()
	assert.False(t, ok)
	_, ok = <-w.Errors()
	assert.False(t, ok)
}

func TestWatcherDebounce(t *testing.T) {
	w := &Watcher{seen: make(map[string]time.Time)}
	ev := fsnotify.Event{Name: "prefabs/controller.yaml", Op: fsnotify.Write}
	now := time.Now()

	_, ok := w.accept(ev, now)
	assert.True(t, ok)
	_, ok = w.accept(ev, now.Add(debounce/2))
	assert.False(t, ok)
	_, ok = w.accept(ev, now.Add(2*debounce))
	assert.True(t, ok)

	_, ok = w.accept(fsnotify.Event{Name: "prefabs/other.yaml", Op: fsnotify.Chmod}, now)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{path: "prefabs/controller.yaml", kind: ChangeController, ok: true},
		{path: "prefabs/controller_fast.yml", kind: ChangeController, ok: true},
		{path: "prefabs/courses/wall.yaml", kind: ChangeCourse, ok: true},
		{path: "prefabs/scripts/vault.tengo", kind: ChangeScript, ok: true},
		{path: "prefabs/controller.tengo", kind: ChangeScript, ok: true},
		{path: "prefabs/readme.yaml"},
		{path: "prefabs/notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := Classify(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
