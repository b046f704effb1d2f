// Package model holds the issue snapshot and dependency edge types consumed
// by the graph, layout, cpm, and gantt packages. Values are built fresh from
// tracker output on every recomputation pass and never mutated afterwards.
package model

import "time"

// Status represents the current state of an issue.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusClosed:
		return true
	}
	return false
}

// Issue is a point-in-time snapshot of a tracker issue, as supplied by the
// bd client. Estimate is in duration units (hours); 0 means no estimate.
type Issue struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Priority  int        `json:"priority"`
	Estimate  float64    `json:"estimate,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`

	Labels []string `json:"labels,omitempty"`
}

// Anchor carries the recorded wall-clock dates of work that has actually
// started or finished, used to ground the schedule in reality.
type Anchor struct {
	Start time.Time
	End   time.Time
}

// AnchorFor returns the scheduling anchor derivable from an issue snapshot,
// or false when the issue has no recorded dates. Closed issues anchor on
// [StartedAt, ClosedAt]; in-progress issues anchor their start only (End is
// zero, the scheduler extends it by the estimate).
func AnchorFor(is *Issue) (Anchor, bool) {
	switch is.Status {
	case StatusClosed:
		if is.ClosedAt == nil {
			return Anchor{}, false
		}
		start := *is.ClosedAt
		if is.StartedAt != nil {
			start = *is.StartedAt
		}
		return Anchor{Start: start, End: *is.ClosedAt}, true
	case StatusInProgress:
		if is.StartedAt == nil {
			return Anchor{}, false
		}
		return Anchor{Start: *is.StartedAt}, true
	}
	return Anchor{}, false
}
