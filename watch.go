package supctl

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WatchEvent reports an out-of-band change to a configuration artifact
type WatchEvent struct {
	// Path is the affected file
	Path string
	// Same reports whether the snapshot still matches the configuration
	// after the change
	Same bool
	// Err is set when watching itself failed
	Err error
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// DefaultWatchDebounce coalesces rapid sequences of file events into one
// notification
const DefaultWatchDebounce = 25 * time.Millisecond

// WatchConfig monitors the native config file and the snapshot of cfg for
// changes made by other processes, emitting an event per (debounced)
// change with the Same predicate re-evaluated. It lets a long-lived caller
// notice when the on-disk state diverges from its desired configuration
// between invocations of the lifecycle operations.
func WatchConfig(ctx context.Context, cfg *Config) (<-chan WatchEvent, WatchCleanupFunc, error) {
	dir := filepath.Dir(cfg.ConfigPath())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpWatch, Path: dir, Err: err}
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: OpWatch, Path: dir, Err: err}
	}

	watched := map[string]bool{
		filepath.Base(cfg.ConfigPath()):   true,
		filepath.Base(cfg.SnapshotPath()): true,
	}

	ch := make(chan WatchEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	var mu sync.Mutex
	var debouncer *time.Timer

	emit := func(path string) {
		if sctx.IsStopping() {
			return
		}
		select {
		case ch <- WatchEvent{Path: path, Same: Same(cfg)}:
		case <-sctx.Stopping():
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !watched[filepath.Base(event.Name)] {
					continue
				}

				path := event.Name
				mu.Lock()
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(DefaultWatchDebounce, func() { emit(path) })
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- WatchEvent{Err: &OpError{Op: OpWatch, Path: dir, Err: err}}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
