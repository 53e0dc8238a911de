package watcher

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Refresher refreshes the projects touched by batches of file events.
type Refresher struct {
	workspace ports.Workspace
	logger    ports.Logger
	window    time.Duration
}

// NewRefresher creates a Refresher debouncing events over window.
func NewRefresher(workspace ports.Workspace, logger ports.Logger, window time.Duration) *Refresher {
	return &Refresher{workspace: workspace, logger: logger, window: window}
}

// Run consumes events until the sequence ends, then handles what is still pending.
func (r *Refresher) Run(ctx context.Context, events iter.Seq[ports.WatchEvent]) {
	d := NewDebouncer(r.window, func(paths []string) {
		r.Refresh(ctx, paths)
	})
	for event := range events {
		d.Add(event.Path)
	}
	d.Flush()
}

// Refresh refreshes every project containing one of paths, once per project.
// Paths outside every project are ignored.
func (r *Refresher) Refresh(ctx context.Context, paths []string) {
	touched := make(map[string]*domain.Project)
	for _, path := range paths {
		project, err := r.workspace.ResolveModule(path)
		if err != nil {
			continue
		}
		touched[project.Name] = project
	}

	names := make([]string, 0, len(touched))
	for name := range touched {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		project := touched[name]
		var res domain.RefreshResult
		err := r.workspace.Atomic(ctx, func(ctx context.Context) error {
			var err error
			res, err = r.workspace.Refresh(ctx, project, domain.DepthInfinite)
			return err
		})
		if err != nil {
			r.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrRefreshFailed.Error()), "project", name))
			continue
		}
		if res.Total() > 0 {
			r.logger.Info(fmt.Sprintf("refreshed %s: %d added, %d changed, %d removed", name, res.Added, res.Changed, res.Removed))
		}
	}
}
