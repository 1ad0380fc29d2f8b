package datasource

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a table file whenever it changes on disk.
type Watcher struct {
	path     string
	format   Format
	debounce time.Duration
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period between the last event and a reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithFormat overrides the format inferred from the file extension.
func WithFormat(f Format) WatchOption {
	return func(w *Watcher) {
		w.format = f
	}
}

// NewWatcher creates a Watcher for path.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.DataSourceError("watch", err)
	}
	if fi, err := system.DefaultFS().Stat(abs); err == nil && fi.IsDir() {
		return nil, errors.DataSourceError("watch", fmt.Errorf("%s is a directory", abs))
	}
	w := &Watcher{path: abs, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	if w.format == "" {
		f, err := FormatOf(abs)
		if err != nil {
			return nil, errors.DataSourceError("watch", err)
		}
		w.format = f
	}
	return w, nil
}

// Run blocks until ctx ends or the underlying watch fails. The parent
// directory is watched so atomic replace-on-save is seen as a change.
// Files that fail to decode are skipped with a warning; the previous data
// stays current.
func (w *Watcher) Run(ctx context.Context, out chan<- live.Update) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w.fail(ctx, out, err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return w.fail(ctx, out, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err))
	}
	logging.Debug("watching table file", "path", w.path, "format", w.format)

	var last *table.Data
	if d, err := LoadAs(w.path, w.format); err == nil {
		last = &d
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return w.fail(ctx, out, err)

		case <-timer.C:
			d, err := LoadAs(w.path, w.format)
			if err != nil {
				logging.Warn("skipping unreadable table file", "path", w.path, "error", err)
				continue
			}
			if last != nil && reflect.DeepEqual(*last, d) {
				continue
			}
			last = &d
			send(ctx, out, live.Update{Data: d})
		}
	}
}

// Stream runs the watcher in a goroutine. The channel is closed when it
// stops.
func (w *Watcher) Stream(ctx context.Context) <-chan live.Update {
	out := make(chan live.Update)
	go func() {
		defer close(out)
		_ = w.Run(ctx, out)
	}()
	return out
}

func (w *Watcher) fail(ctx context.Context, out chan<- live.Update, err error) error {
	err = errors.DataSourceError("watch", err)
	send(ctx, out, live.Update{Err: err})
	return err
}
