// Package gantt derives a concrete calendar schedule from the critical-path
// forward pass: a start and end date per issue, honoring dependency order and
// anchoring on recorded dates where work has actually started or finished.
package gantt

import (
	"time"

	"github.com/davidcforbes/beads-tui/internal/cpm"
	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/model"
)

// Span is the scheduled window for one issue.
type Span struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Critical bool      `json:"critical"`
}

// Calendar converts duration units into wall-clock time. The scheduler treats
// it as opaque; the caller picks the rule.
type Calendar interface {
	// Add returns the date reached by working units duration units
	// starting at from.
	Add(from time.Time, units float64) time.Time
}

// CalendarDays spreads UnitsPerDay duration units over every calendar day,
// weekends included.
type CalendarDays struct {
	UnitsPerDay float64
}

func (c CalendarDays) Add(from time.Time, units float64) time.Time {
	return from.Add(time.Duration(units / c.UnitsPerDay * 24 * float64(time.Hour)))
}

// BusinessDays spreads UnitsPerDay duration units over weekdays only;
// weekends are skipped entirely.
type BusinessDays struct {
	UnitsPerDay float64
}

func (c BusinessDays) Add(from time.Time, units float64) time.Time {
	days := units / c.UnitsPerDay
	whole := int(days)
	frac := days - float64(whole)

	d := from
	for i := 0; i < whole; i++ {
		d = d.AddDate(0, 0, 1)
		d = skipWeekend(d)
	}
	if frac > 0 {
		d = d.Add(time.Duration(frac * 24 * float64(time.Hour)))
		d = skipWeekend(d)
	}
	return d
}

func skipWeekend(d time.Time) time.Time {
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Schedule assigns a Span to every node of a cycle-free graph using the
// forward-pass distances in fwd.
//
// Un-anchored issues start at the later of projectStart advanced by their
// earliest-start distance and the end of their slowest blocker, so
// Start(from) >= End(to) holds for every hard edge between un-anchored
// issues by construction. Anchored issues keep their recorded dates
// verbatim (reality wins over the estimate); an in-progress anchor with no
// recorded end is extended by the issue's remaining duration, and
// not-yet-started successors extrapolate forward from anchor ends.
//
// Re-running with identical inputs produces identical output.
func Schedule(g *graph.Graph, fwd *cpm.Result, projectStart time.Time, anchors map[string]model.Anchor, cal Calendar) map[string]Span {
	spans := make(map[string]Span, g.Len())

	for _, n := range g.TopoOrder() {
		id := g.ID(n)
		times := fwd.Nodes[id]
		dur := times.EarliestFinish - times.EarliestStart

		if a, ok := anchors[id]; ok {
			end := a.End
			if end.IsZero() {
				end = cal.Add(a.Start, dur)
			}
			spans[id] = Span{Start: a.Start, End: end, Critical: times.Critical}
			continue
		}

		start := cal.Add(projectStart, times.EarliestStart)
		for _, d := range g.Deps(n) {
			if depEnd := spans[g.ID(d)].End; depEnd.After(start) {
				start = depEnd
			}
		}
		spans[id] = Span{
			Start:    start,
			End:      cal.Add(start, dur),
			Critical: times.Critical,
		}
	}

	return spans
}
