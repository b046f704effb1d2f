package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/gantt"
	"github.com/davidcforbes/beads-tui/internal/model"
)

func chainResult(t *testing.T) *engine.Result {
	t.Helper()
	snap := engine.Snapshot{
		Issues: []*model.Issue{
			{ID: "a", Status: model.StatusOpen, Estimate: 2},
			{ID: "b", Status: model.StatusOpen, Estimate: 3},
		},
		Edges: []model.RawEdge{
			{From: "b", To: "a", Kind: model.KindBlocks},
		},
	}
	opts := engine.Options{
		DefaultDuration: 1,
		ProjectStart:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Calendar:        gantt.CalendarDays{UnitsPerDay: 1},
	}
	res, err := engine.Compute(context.Background(), snap, opts)
	if err != nil {
		t.Fatalf("Compute() = %v", err)
	}
	return res
}

func TestRenderPertTable_NoEscapesInTable(t *testing.T) {
	res := chainResult(t)

	var buf strings.Builder
	renderPertTable(&buf, res)
	out := buf.String()

	table, _, ok := strings.Cut(out, "\nTotal duration")
	if !ok {
		t.Fatalf("missing total duration line in:\n%s", out)
	}
	// tabwriter counts escape bytes as cell width, so the table itself must
	// stay plain.
	if strings.Contains(table, "\x1b") {
		t.Fatalf("table contains ANSI escapes:\n%s", table)
	}
}

func TestRenderPertTable_RowsAndCritMarks(t *testing.T) {
	res := chainResult(t)

	var buf strings.Builder
	renderPertTable(&buf, res)
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("line 0 = %q, want header", lines[0])
	}
	// Earliest start ordering: a (ES 0) before b (ES 2).
	if !strings.HasPrefix(lines[1], "a") || !strings.HasPrefix(lines[2], "b") {
		t.Fatalf("rows out of order:\n%s", buf.String())
	}
	for _, line := range lines[1:3] {
		if !strings.HasSuffix(strings.TrimRight(line, " "), "*") {
			t.Fatalf("chain row missing critical mark: %q", line)
		}
	}
}
