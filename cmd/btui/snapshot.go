package main

import (
	"context"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/gantt"
)

// loadSnapshot reads the full issue set and edge list from bd.
func loadSnapshot(ctx context.Context) (engine.Snapshot, error) {
	issues, edges, err := client.List(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return engine.Snapshot{Issues: issues, Edges: edges}, nil
}

// engineOptions maps the config onto analysis options.
func engineOptions() engine.Options {
	var cal gantt.Calendar
	if cfg.Calendar == "business" {
		cal = gantt.BusinessDays{UnitsPerDay: cfg.HoursPerDay}
	} else {
		cal = gantt.CalendarDays{UnitsPerDay: cfg.HoursPerDay}
	}
	return engine.Options{
		DefaultDuration: cfg.DefaultDuration,
		ProjectStart:    cfg.ProjectStart,
		Calendar:        cal,
	}
}

// computeNow fetches a snapshot and runs one full analysis pass.
func computeNow(ctx context.Context) (*engine.Result, error) {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Compute(ctx, snap, engineOptions())
}
