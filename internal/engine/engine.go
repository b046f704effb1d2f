// Package engine orchestrates dependency analysis over a snapshot of tracker
// data: graph construction, cycle detection, layout, critical path analysis,
// and schedule projection. Compute is a pure function of its inputs; Runner
// layers a cancellable background recompute loop on top for watch mode.
package engine

import (
	"context"
	"time"

	"github.com/davidcforbes/beads-tui/internal/cpm"
	"github.com/davidcforbes/beads-tui/internal/gantt"
	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/layout"
	"github.com/davidcforbes/beads-tui/internal/model"
)

// Snapshot is one consistent read of the tracker: all issues plus all raw
// dependency edges. Snapshots are immutable once handed to the engine.
type Snapshot struct {
	Issues []*model.Issue
	Edges  []model.RawEdge
}

// Options control the analysis pass.
type Options struct {
	// DefaultDuration is assigned to open issues without an estimate.
	// Values <= 0 fall back to one unit.
	DefaultDuration float64

	// ProjectStart anchors the projected schedule. The zero value means
	// midnight today in local time.
	ProjectStart time.Time

	// Calendar maps effort units onto wall-clock time. Nil means
	// CalendarDays with 8 units per day.
	Calendar gantt.Calendar
}

func (o Options) withDefaults() Options {
	if o.DefaultDuration <= 0 {
		o.DefaultDuration = 1
	}
	if o.ProjectStart.IsZero() {
		now := time.Now()
		o.ProjectStart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if o.Calendar == nil {
		o.Calendar = gantt.CalendarDays{UnitsPerDay: 8}
	}
	return o
}

// Result is the full output of one analysis pass.
type Result struct {
	RunID    string
	Graph    *graph.Graph
	Report   graph.Report
	Layout   map[string]layout.Position
	CPM      *cpm.Result
	Schedule map[string]gantt.Span
	Elapsed  time.Duration
}

// Compute runs one full analysis pass over the snapshot. If the hard
// dependency graph contains a cycle it returns *graph.ErrGraphInvalid and no
// derived data. Cancellation via ctx is checked between stages.
func Compute(ctx context.Context, snap Snapshot, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	started := time.Now()

	g, report := graph.Build(snap.Issues, snap.Edges)
	if cycle := g.DetectCycle(); cycle != nil {
		return nil, &graph.ErrGraphInvalid{Cycle: cycle}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pos := layout.Compute(g)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	durations := cpm.Durations(snap.Issues, opts.DefaultDuration)
	analysis := cpm.Analyze(g, durations)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anchors := make(map[string]model.Anchor)
	for _, is := range snap.Issues {
		if a, ok := model.AnchorFor(is); ok {
			anchors[is.ID] = a
		}
	}
	spans := gantt.Schedule(g, analysis, opts.ProjectStart, anchors, opts.Calendar)

	return &Result{
		Graph:    g,
		Report:   report,
		Layout:   pos,
		CPM:      analysis,
		Schedule: spans,
		Elapsed:  time.Since(started),
	}, nil
}
