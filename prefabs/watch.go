package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeat events for one file that arrive within this window.
const debounce = 100 * time.Millisecond

// ChangeKind says which kind of prefab a changed file holds.
type ChangeKind int

const (
	ChangeController ChangeKind = iota + 1
	ChangeCourse
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeController:
		return "controller"
	case ChangeCourse:
		return "course"
	case ChangeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one prefab file rewritten on disk.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports prefab files that changed under a prefab root, including
// its courses/ and scripts/ subdirectories. Both channels are closed once
// the watcher stops.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan Change
	errs    chan error
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	seen map[string]time.Time
}

func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	for _, sub := range []string{"courses", "scripts"} {
		dir := filepath.Join(root, sub)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		changes: make(chan Change, 16),
		errs:    make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		seen:    make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Changes() <-chan Change { return w.changes }

// Errors carries watcher failures. Errors arriving while one is pending are
// dropped.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.changes)
		close(w.errs)
		close(w.done)
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := w.accept(ev, time.Now())
			if !ok {
				continue
			}
			select {
			case w.changes <- change:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}

// accept filters raw events down to debounced prefab rewrites.
func (w *Watcher) accept(ev fsnotify.Event, now time.Time) (Change, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return Change{}, false
	}
	kind, ok := Classify(ev.Name)
	if !ok {
		return Change{}, false
	}
	if t, ok := w.seen[ev.Name]; ok && now.Sub(t) < debounce {
		return Change{}, false
	}
	w.seen[ev.Name] = now
	return Change{Path: ev.Name, Kind: kind}, true
}

// Classify maps a prefab path to its kind. Controller specs are YAML files
// whose name starts with "controller"; courses are YAML files in a courses
// directory; scripts are tengo files.
func Classify(path string) (ChangeKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".tengo":
		return ChangeScript, true
	case ext != ".yaml" && ext != ".yml":
		return 0, false
	case filepath.Base(filepath.Dir(path)) == "courses":
		return ChangeCourse, true
	case strings.HasPrefix(filepath.Base(path), "controller"):
		return ChangeController, true
	}
	return 0, false
}
