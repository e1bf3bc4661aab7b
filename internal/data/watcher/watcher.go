package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

// Event is a change to an export file or a newly created folder
type Event struct {
	Path      string
	Operation string
}

// Watcher reports changes under an inbox directory. Only .json files and new
// directories produce events, so the CSV files written by a conversion run
// never trigger another run.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
	once    sync.Once
}

// New watches baseDir and every directory below it
func New(baseDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}

	if err := w.addTree(baseDir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.processEvents()
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			util.LogDebugf("Skip unwatchable path: %s - %v", p, err)
			return nil
		}
		if info.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			select {
			case w.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				util.LogWarnf("Failed to watch new folder %s: %v", event.Name, err)
			}
			return true
		}
	}
	return strings.EqualFold(filepath.Ext(event.Name), constants.JSONExt)
}

// Events returns the filtered event stream; it is closed by Close
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run calls fn after every burst of events once quiet has passed without a
// new one. Errors from fn are logged and watching continues. Run returns when
// ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, quiet time.Duration, fn func() error) error {
	var timer *time.Timer
	var fire <-chan time.Time
	pending := 0

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.events:
			if !ok {
				return nil
			}
			pending++
			util.LogDebugf("Change detected: %s (%s)", event.Path, event.Operation)
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(quiet)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			util.LogInfof("Re-running conversion after %d changes", pending)
			pending = 0
			if err := fn(); err != nil {
				util.LogErrorf("Conversion failed: %v", err)
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
