package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/gantt"
	"github.com/davidcforbes/beads-tui/internal/model"
)

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func computeResult(t *testing.T, snap engine.Snapshot) *engine.Result {
	t.Helper()
	res, err := engine.Compute(context.Background(), snap, engine.Options{
		DefaultDuration: 1,
		ProjectStart:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Calendar:        gantt.CalendarDays{UnitsPerDay: 1},
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	res.RunID = "run-test123456"
	return res
}

func TestExportJSONL_Empty(t *testing.T) {
	res := computeResult(t, engine.Snapshot{})

	var buf bytes.Buffer
	if err := ExportJSONL(res, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// Header plus critical path, no issues.
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.IssueCount != 0 || h.CriticalCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
	if h.RunID != "run-test123456" {
		t.Errorf("RunID = %q", h.RunID)
	}
}

func TestExportJSONL_ChainSchedule(t *testing.T) {
	snap := engine.Snapshot{
		Issues: []*model.Issue{
			{ID: "z-last", Title: "Ship", Status: model.StatusOpen, Estimate: 2},
			{ID: "a-first", Title: "Design", Status: model.StatusOpen, Estimate: 3},
		},
		Edges: []model.RawEdge{{From: "z-last", To: "a-first", Kind: model.KindBlocks}},
	}
	res := computeResult(t, snap)

	var buf bytes.Buffer
	if err := ExportJSONL(res, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 issues + 1 critical path.
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.IssueCount != 2 || h.CriticalCount != 2 || h.TotalDuration != 5 {
		t.Fatalf("unexpected header: %+v", h)
	}

	// Issue records are sorted by ID.
	var recs []struct {
		Type string      `json:"type"`
		Data issueRecord `json:"data"`
	}
	for _, line := range lines[1:3] {
		var r struct {
			Type string      `json:"type"`
			Data issueRecord `json:"data"`
		}
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unmarshal record: %v", err)
		}
		if r.Type != "issue" {
			t.Fatalf("record type = %q, want issue", r.Type)
		}
		recs = append(recs, r)
	}
	if recs[0].Data.ID != "a-first" || recs[1].Data.ID != "z-last" {
		t.Errorf("issue order = %q, %q, want sorted by ID", recs[0].Data.ID, recs[1].Data.ID)
	}
	first := recs[0].Data
	if first.Rank != 0 || !first.Critical || first.Slack != 0 {
		t.Errorf("a-first record = %+v", first)
	}
	if first.EarliestFinish != 3 {
		t.Errorf("a-first EarliestFinish = %v, want 3", first.EarliestFinish)
	}
	if !first.End.After(first.Start) {
		t.Errorf("a-first span [%v, %v] not ordered", first.Start, first.End)
	}

	var cp struct {
		Type string             `json:"type"`
		Data criticalPathRecord `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[3]), &cp); err != nil {
		t.Fatalf("unmarshal critical path: %v", err)
	}
	if cp.Type != "critical_path" {
		t.Fatalf("last record type = %q, want critical_path", cp.Type)
	}
	if len(cp.Data.Path) != 2 || cp.Data.Path[0] != "z-last" || cp.Data.Path[1] != "a-first" {
		t.Errorf("critical path = %v, want [z-last a-first]", cp.Data.Path)
	}
}

func TestExportJSONL_SkippedEdgeCount(t *testing.T) {
	snap := engine.Snapshot{
		Issues: []*model.Issue{{ID: "a", Status: model.StatusOpen, Estimate: 1}},
		Edges: []model.RawEdge{
			{From: "a", To: "a", Kind: model.KindBlocks},
			{From: "a", To: "ghost", Kind: model.KindBlocks},
		},
	}
	res := computeResult(t, snap)

	var buf bytes.Buffer
	if err := ExportJSONL(res, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var h header
	if err := json.Unmarshal([]byte(nonEmptyLines(buf.String())[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.SkippedEdges != 2 {
		t.Errorf("SkippedEdges = %d, want 2", h.SkippedEdges)
	}
}
