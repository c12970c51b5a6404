// Package watch notifies the UI when another process changes the
// repository. jj records every operation as a file under
// .jj/repo/op_heads/heads, so watching that directory catches external
// mutations without polling.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 200 * time.Millisecond

// Watcher coalesces filesystem bursts into single notifications. One
// jj operation touches several files; the UI wants one reload.
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan struct{}
}

// New watches the operation heads of the repository rooted at root.
func New(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{fw: fw, events: make(chan struct{}, 1)}, nil
}

// Events delivers at most one pending notification at a time.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Run pumps filesystem events until ctx ends. Call in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceWindow)
			fire = timer.C
		case <-fire:
			timer, fire = nil, nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("repository watcher error", "error", err)
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) Close() error { return w.fw.Close() }
