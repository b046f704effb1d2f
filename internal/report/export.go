// Package report exports computed schedules as JSONL, to a writer or to an
// S3-compatible bucket for sharing.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/davidcforbes/beads-tui/internal/engine"
)

// Destination is the interface for a report target (S3, file, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version       string    `json:"version"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	RunID         string    `json:"run_id,omitempty"`
	IssueCount    int       `json:"issue_count"`
	SkippedEdges  int       `json:"skipped_edges"`
	CriticalCount int       `json:"critical_count"`
	TotalDuration float64   `json:"total_duration"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// issueRecord is the per-issue payload: tracker fields joined with the
// computed layout, critical path times, and projected dates.
type issueRecord struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Estimate float64 `json:"estimate,omitempty"`

	Rank  int     `json:"rank"`
	Order float64 `json:"order"`

	EarliestStart  float64 `json:"earliest_start"`
	EarliestFinish float64 `json:"earliest_finish"`
	LatestStart    float64 `json:"latest_start"`
	LatestFinish   float64 `json:"latest_finish"`
	Slack          float64 `json:"slack"`
	Critical       bool    `json:"critical"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type criticalPathRecord struct {
	Path []string `json:"path"`
}

// ExportJSONL writes the full analysis result as JSONL to w: a header, one
// issue record per node sorted by ID, and the critical path.
func ExportJSONL(res *engine.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:       "1",
		Type:          "header",
		Timestamp:     time.Now().UTC(),
		RunID:         res.RunID,
		IssueCount:    res.Graph.Len(),
		SkippedEdges:  res.Report.Skipped(),
		CriticalCount: len(res.CPM.CriticalPath),
		TotalDuration: res.CPM.TotalDuration,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	ids := make([]string, 0, res.Graph.Len())
	for i := int32(0); i < int32(res.Graph.Len()); i++ {
		ids = append(ids, res.Graph.ID(i))
	}
	sort.Strings(ids)

	for _, id := range ids {
		idx, _ := res.Graph.Index(id)
		is := res.Graph.Node(idx)
		times := res.CPM.Nodes[id]
		pos := res.Layout[id]
		span := res.Schedule[id]

		rec := issueRecord{
			ID:             id,
			Title:          is.Title,
			Status:         is.Status.String(),
			Estimate:       is.Estimate,
			Rank:           pos.Rank,
			Order:          pos.Order,
			EarliestStart:  times.EarliestStart,
			EarliestFinish: times.EarliestFinish,
			LatestStart:    times.LatestStart,
			LatestFinish:   times.LatestFinish,
			Slack:          times.Slack,
			Critical:       times.Critical,
			Start:          span.Start,
			End:            span.End,
		}
		if err := enc.Encode(record{Type: "issue", Data: rec}); err != nil {
			return fmt.Errorf("encode issue %s: %w", id, err)
		}
	}

	if err := enc.Encode(record{Type: "critical_path", Data: criticalPathRecord{Path: res.CPM.CriticalPath}}); err != nil {
		return fmt.Errorf("encode critical path: %w", err)
	}

	return nil
}
