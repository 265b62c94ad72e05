package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"countdown/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the settings file whenever it changes on disk.
type Watcher struct {
	path     string
	onChange func(preferences.Settings)
	debounce debounced

	fsWatcher *fsnotify.Watcher
}

// NewWatcher watches the directory holding configPath, so that editors which
// replace the file on save are seen as well. onChange runs on the watcher's
// goroutine; callers hand the settings over to their UI loop themselves.
func NewWatcher(configPath string, delay time.Duration, onChange func(preferences.Settings)) (*Watcher, error) {
	if delay < 10*time.Millisecond {
		delay = defaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(configPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch settings directory: %w", err)
	}

	return &Watcher{
		path:      filepath.Clean(configPath),
		onChange:  onChange,
		debounce:  debounce(delay),
		fsWatcher: fsWatcher,
	}, nil
}

// Start blocks until ctx is cancelled or the watcher is closed.
func (watcher *Watcher) Start(ctx context.Context) {
	defer watcher.fsWatcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.fsWatcher.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)
		case err, ok := <-watcher.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher: %v", err)
		}
	}
}

func (watcher *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != watcher.path {
		return
	}
	switch {
	case event.Op.Has(fsnotify.Create):
	case event.Op.Has(fsnotify.Write):
	case event.Op.Has(fsnotify.Rename):
	default:
		return
	}

	watcher.debounce(func() {
		settings, err := LoadSettings(watcher.path)
		if err != nil {
			log.Printf("settings watcher: reload %s: %v", watcher.path, err)
			return
		}
		log.Printf("settings watcher: reloaded %s", watcher.path)
		if watcher.onChange != nil {
			watcher.onChange(settings)
		}
	})
}

// debounced is a debounced function call.
type debounced func(func())

// debounce returns a function that runs the last callback it was given once
// it has not been called again for after.
func debounce(after time.Duration) debounced {
	d := &debouncer{after: after}
	return func(f func()) {
		d.add(f)
	}
}

type debouncer struct {
	mx    sync.Mutex
	after time.Duration
	timer *time.Timer
}

func (d *debouncer) add(f func()) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.after, f)
}
