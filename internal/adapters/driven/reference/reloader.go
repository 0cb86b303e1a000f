package reference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 250 * time.Millisecond

// SnapshotSetter receives freshly loaded snapshots
type SnapshotSetter interface {
	SetReference(ref *domain.ReferenceSnapshot)
}

// Reloader watches the reference directory and swaps in a new snapshot
// after any reference file is created, written, renamed or removed.
// A failed load keeps the previous snapshot.
type Reloader struct {
	source   driven.ReferenceSource
	target   SnapshotSetter
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

// NewReloader creates a reloader for dir
func NewReloader(source driven.ReferenceSource, target SnapshotSetter, dir string, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		source:   source,
		target:   target,
		dir:      dir,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// Run watches until ctx is done. It returns an error only if the watch
// cannot be set up.
func (r *Reloader) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}
	r.logger.Info("watching reference material", "dir", r.dir)

	timer := time.NewTimer(r.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsReferenceFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.logger.Debug("reference file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(r.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("reference watcher error", "error", err)

		case <-timer.C:
			r.reload(ctx)
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	snap, err := r.source.Load(ctx)
	if err != nil {
		r.logger.Error("reference reload failed, keeping previous material", "error", err)
		return
	}
	r.target.SetReference(snap)
	r.logger.Info("reference material reloaded")
}
