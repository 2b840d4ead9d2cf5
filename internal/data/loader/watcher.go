package loader

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/overlayfx/go-chat-overlay/internal/core/model"
	"github.com/overlayfx/go-chat-overlay/internal/util"
)

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a transcript file whenever it changes on disk and hands the
// result to a callback. A failed reload delivers an empty timeline.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching path until ctx is cancelled or Close is called.
// The apply callback runs on the watcher goroutine.
func Watch(ctx context.Context, path string, apply func(model.Timeline)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory so atomic save-and-rename is seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go w.processEvents(ctx, apply)

	return w, nil
}

func (w *Watcher) processEvents(ctx context.Context, apply func(model.Timeline)) {
	defer close(w.done)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			w.reload(apply)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Transcript watch error: " + err.Error())

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) reload(apply func(model.Timeline)) {
	timeline, err := Load(w.path)
	if err != nil {
		util.LogWarnf("Transcript reload failed, clearing timeline: %v", err)
		apply(nil)
		return
	}
	util.LogInfof("Transcript reloaded: %d entries", len(timeline))
	apply(timeline)
}

// Close stops the watcher and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
