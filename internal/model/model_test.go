package model

import (
	"testing"
	"time"
)

func TestStatus_IsValid(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   bool
	}{
		{StatusOpen, true},
		{StatusInProgress, true},
		{StatusBlocked, true},
		{StatusClosed, true},
		{Status(""), false},
		{Status("deferred"), false},
	} {
		if got := tc.status.IsValid(); got != tc.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestDependencyKind_Hard(t *testing.T) {
	for _, tc := range []struct {
		kind DependencyKind
		want bool
	}{
		{KindBlocks, true},
		{KindRelated, false},
		{KindDiscoveredFrom, false},
	} {
		if got := tc.kind.Hard(); got != tc.want {
			t.Errorf("DependencyKind(%q).Hard() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want DependencyKind
	}{
		{"blocks", KindBlocks},
		{"depends_on", KindBlocks},
		{"depends-on", KindBlocks},
		{"discovered-from", KindDiscoveredFrom},
		{"discovered_from", KindDiscoveredFrom},
		{"related", KindRelated},
		{"parent-child", KindRelated},
		{"", KindRelated},
	} {
		if got := ParseKind(tc.in); got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAnchorFor(t *testing.T) {
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	closed := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)

	t.Run("closed with dates", func(t *testing.T) {
		is := &Issue{ID: "a", Status: StatusClosed, StartedAt: &started, ClosedAt: &closed}
		a, ok := AnchorFor(is)
		if !ok {
			t.Fatal("expected anchor")
		}
		if !a.Start.Equal(started) || !a.End.Equal(closed) {
			t.Errorf("anchor = [%v, %v], want [%v, %v]", a.Start, a.End, started, closed)
		}
	})

	t.Run("closed without close date", func(t *testing.T) {
		is := &Issue{ID: "a", Status: StatusClosed}
		if _, ok := AnchorFor(is); ok {
			t.Error("expected no anchor")
		}
	})

	t.Run("closed without start falls back to close date", func(t *testing.T) {
		is := &Issue{ID: "a", Status: StatusClosed, ClosedAt: &closed}
		a, ok := AnchorFor(is)
		if !ok {
			t.Fatal("expected anchor")
		}
		if !a.Start.Equal(closed) {
			t.Errorf("anchor start = %v, want %v", a.Start, closed)
		}
	})

	t.Run("in progress", func(t *testing.T) {
		is := &Issue{ID: "a", Status: StatusInProgress, StartedAt: &started}
		a, ok := AnchorFor(is)
		if !ok {
			t.Fatal("expected anchor")
		}
		if !a.Start.Equal(started) {
			t.Errorf("anchor start = %v, want %v", a.Start, started)
		}
		if !a.End.IsZero() {
			t.Errorf("anchor end = %v, want zero", a.End)
		}
	})

	t.Run("open has no anchor", func(t *testing.T) {
		is := &Issue{ID: "a", Status: StatusOpen, StartedAt: &started}
		if _, ok := AnchorFor(is); ok {
			t.Error("expected no anchor")
		}
	})
}
