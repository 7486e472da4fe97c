package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed prefab files by their cleaned name, e.g.
// "pokeball.yaml" or "scripts/breathe.tengo".
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll returns every change queued since the last call without blocking.
func (w *Watcher) Poll() ([]string, []error) {
	if w == nil {
		return nil, nil
	}
	var names []string
	var errs []error
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return names, errs
			}
			names = append(names, name)
		case err, ok := <-w.Errors:
			if !ok {
				return names, errs
			}
			errs = append(errs, err)
		default:
			return names, errs
		}
	}
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, ok := prefabName(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// prefabName maps a filesystem path to the name Load or LoadScript accepts.
func prefabName(p string) (string, bool) {
	base := filepath.Base(p)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return base, true
	case ".tengo":
		return "scripts/" + base, true
	}
	return "", false
}
