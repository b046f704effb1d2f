package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/idgen"
)

// Runner recomputes analysis in the background as snapshots arrive. Submit is
// last-write-wins: a newer snapshot cancels an in-flight pass. Partial results
// are never published; the most recent valid Result stays available until a
// newer pass completes.
type Runner struct {
	opts    Options
	logger  *slog.Logger
	results chan *Result

	mu       sync.Mutex
	pending  *Snapshot
	inflight context.CancelFunc
	last     *Result

	wake   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a stopped runner. Results of completed passes are
// delivered on Results; slow consumers only ever see the newest result.
func NewRunner(opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		opts:    opts,
		logger:  logger,
		results: make(chan *Result, 1),
		wake:    make(chan struct{}, 1),
	}
}

// Results delivers completed analysis passes. The channel has capacity one;
// an unread result is replaced when a newer pass finishes.
func (r *Runner) Results() <-chan *Result { return r.results }

// Last returns the most recent valid result, or nil before the first
// completed pass.
func (r *Runner) Last() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Submit queues a snapshot for recomputation, replacing any queued snapshot
// and cancelling the in-flight pass.
func (r *Runner) Submit(snap Snapshot) {
	r.mu.Lock()
	r.pending = &snap
	if r.inflight != nil {
		r.inflight()
	}
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Start begins the background recompute loop.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.loop(ctx)
	}()
}

// Stop cancels any in-flight pass and waits for the loop to exit.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
		}

		for {
			r.mu.Lock()
			snap := r.pending
			r.pending = nil
			if snap == nil {
				r.mu.Unlock()
				break
			}
			runCtx, runCancel := context.WithCancel(ctx)
			r.inflight = runCancel
			r.mu.Unlock()

			r.runOnce(runCtx, *snap)

			r.mu.Lock()
			r.inflight = nil
			r.mu.Unlock()
			runCancel()
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, snap Snapshot) {
	runID, err := idgen.NewRunID()
	if err != nil {
		runID = "run-unknown"
	}
	log := r.logger.With("run", runID)
	log.Info("recompute started", "issues", len(snap.Issues), "edges", len(snap.Edges))

	res, err := Compute(ctx, snap, r.opts)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		log.Info("recompute cancelled")
		return
	default:
		// Cycle detected: keep the previous valid result.
		if inv, ok := err.(*graph.ErrGraphInvalid); ok {
			log.Warn("snapshot rejected", "err", inv)
			return
		}
		log.Error("recompute failed", "err", err)
		return
	}

	res.RunID = runID
	if skipped := res.Report.Skipped(); skipped > 0 {
		log.Warn("edges skipped", "skipped", skipped, "soft", res.Report.Soft)
	}
	log.Info("recompute finished",
		"nodes", res.Graph.Len(),
		"critical", len(res.CPM.CriticalPath),
		"total_duration", res.CPM.TotalDuration,
		"elapsed", res.Elapsed)

	r.mu.Lock()
	r.last = res
	r.mu.Unlock()

	// Replace an unread result rather than blocking the loop.
	for {
		select {
		case r.results <- res:
			return
		default:
			select {
			case <-r.results:
			default:
			}
		}
	}
}
