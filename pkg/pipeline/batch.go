package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wdm0006/custodian/pkg/frame"
)

// RunMany runs the named cleaners and returns the cleaned datasets of the
// ones that succeeded. A failing cleaner is logged and excluded, never
// raised: one broken cleaner must not sink the batch. Sequential runs
// preserve input order; parallel runs use a bounded worker pool and make
// no ordering promise.
func (r *Runner) RunMany(ctx context.Context, names []string, parallel bool, opts Options) map[string]*frame.Frame {
	results := make(map[string]*frame.Frame, len(names))

	if !parallel {
		for _, name := range names {
			res, err := r.Run(ctx, name, opts)
			if err != nil {
				r.log.Errorw("cleaner run failed", "cleaner", name, "error", err)
				continue
			}
			results[name] = res.Frame
		}
		return results
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Workers)
	for _, name := range names {
		name := name
		g.Go(func() error {
			res, err := r.Run(ctx, name, opts)
			if err != nil {
				r.log.Errorw("cleaner run failed", "cleaner", name, "error", err)
				return nil
			}
			mu.Lock()
			results[name] = res.Frame
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
