package journal

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// BackfillRequest describes a range of instants to record
type BackfillRequest struct {
	From    time.Time
	To      time.Time     // inclusive
	Step    time.Duration // spacing between instants
	Workers int           // concurrent recordings
}

// maxBackfill bounds a single backfill run
const maxBackfill = 100_000

// Backfill records every instant From, From+Step, ... up to To.
// The first failure cancels the remaining work. It returns how many
// reports were recorded.
func (r *Recorder) Backfill(ctx context.Context, req BackfillRequest) (int, error) {
	if req.Step <= 0 {
		return 0, fmt.Errorf("backfill step must be positive, got %s", req.Step)
	}
	if req.To.Before(req.From) {
		return 0, fmt.Errorf("backfill range is empty: %s > %s", req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
	}
	if n := req.To.Sub(req.From) / req.Step; n >= maxBackfill {
		return 0, fmt.Errorf("backfill of %d instants exceeds limit %d", n+1, maxBackfill)
	}
	if req.Workers <= 0 {
		req.Workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Workers)

	var recorded atomic.Int64
	for at := req.From; !at.After(req.To); at = at.Add(req.Step) {
		if gctx.Err() != nil {
			break
		}
		at := at
		g.Go(func() error {
			if _, err := r.Record(gctx, at); err != nil {
				return fmt.Errorf("record %s: %w", at.Format(time.RFC3339), err)
			}
			recorded.Add(1)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	r.logger.WithFields(map[string]interface{}{
		"from":     req.From.Format(time.RFC3339),
		"to":       req.To.Format(time.RFC3339),
		"recorded": recorded.Load(),
	}).Info("Backfill finished")
	return int(recorded.Load()), err
}
