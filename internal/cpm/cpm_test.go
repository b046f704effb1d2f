package cpm

import (
	"math"
	"reflect"
	"testing"

	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/model"
)

func build(t *testing.T, issues []*model.Issue, edges []model.RawEdge) *graph.Graph {
	t.Helper()
	g, _ := graph.Build(issues, edges)
	if cycle := g.DetectCycle(); cycle != nil {
		t.Fatalf("test graph has a cycle: %v", cycle)
	}
	return g
}

func blocks(from, to string) model.RawEdge {
	return model.RawEdge{From: from, To: to, Kind: model.KindBlocks}
}

func open(id string, estimate float64) *model.Issue {
	return &model.Issue{ID: id, Status: model.StatusOpen, Estimate: estimate}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDurations(t *testing.T) {
	issues := []*model.Issue{
		open("estimated", 3),
		open("unestimated", 0),
		{ID: "done", Status: model.StatusClosed, Estimate: 8},
	}
	d := Durations(issues, 1)

	for id, want := range map[string]float64{"estimated": 3, "unestimated": 1, "done": 0} {
		if !approx(d[id], want) {
			t.Errorf("Durations[%s] = %v, want %v", id, d[id], want)
		}
	}
}

func TestAnalyze_Chain(t *testing.T) {
	// a depends on b, b on c. Durations 2, 3, 1.
	issues := []*model.Issue{open("a", 2), open("b", 3), open("c", 1)}
	g := build(t, issues, []model.RawEdge{blocks("a", "b"), blocks("b", "c")})

	res := Analyze(g, Durations(issues, 1))

	if !approx(res.TotalDuration, 6) {
		t.Errorf("TotalDuration = %v, want 6", res.TotalDuration)
	}
	if !reflect.DeepEqual(res.CriticalPath, []string{"a", "b", "c"}) {
		t.Errorf("CriticalPath = %v, want [a b c]", res.CriticalPath)
	}
	for id, want := range map[string][2]float64{
		"c": {0, 1},
		"b": {1, 4},
		"a": {4, 6},
	} {
		got := res.Nodes[id]
		if !approx(got.EarliestStart, want[0]) || !approx(got.EarliestFinish, want[1]) {
			t.Errorf("%s: ES/EF = %v/%v, want %v/%v",
				id, got.EarliestStart, got.EarliestFinish, want[0], want[1])
		}
		if !got.Critical {
			t.Errorf("%s: not critical, want critical", id)
		}
	}
}

func TestAnalyze_Diamond(t *testing.T) {
	// d depends on b and c; b and c depend on a. Durations a=1 b=2 c=5 d=1.
	// The c branch is longer, so the chain runs d, c, a.
	issues := []*model.Issue{open("a", 1), open("b", 2), open("c", 5), open("d", 1)}
	g := build(t, issues, []model.RawEdge{
		blocks("d", "b"),
		blocks("d", "c"),
		blocks("b", "a"),
		blocks("c", "a"),
	})

	res := Analyze(g, Durations(issues, 1))

	if !approx(res.TotalDuration, 7) {
		t.Errorf("TotalDuration = %v, want 7", res.TotalDuration)
	}
	if !reflect.DeepEqual(res.CriticalPath, []string{"d", "c", "a"}) {
		t.Errorf("CriticalPath = %v, want [d c a]", res.CriticalPath)
	}

	b := res.Nodes["b"]
	if b.Critical {
		t.Error("b is critical, want slack")
	}
	if !approx(b.Slack, 3) {
		t.Errorf("Slack(b) = %v, want 3", b.Slack)
	}
}

func TestAnalyze_SingleNode(t *testing.T) {
	issues := []*model.Issue{open("only", 5)}
	g := build(t, issues, nil)

	res := Analyze(g, Durations(issues, 1))

	if !approx(res.TotalDuration, 5) {
		t.Errorf("TotalDuration = %v, want 5", res.TotalDuration)
	}
	if !reflect.DeepEqual(res.CriticalPath, []string{"only"}) {
		t.Errorf("CriticalPath = %v, want [only]", res.CriticalPath)
	}
}

func TestAnalyze_EmptyGraph(t *testing.T) {
	g := build(t, nil, nil)
	res := Analyze(g, nil)

	if res.TotalDuration != 0 {
		t.Errorf("TotalDuration = %v, want 0", res.TotalDuration)
	}
	if len(res.CriticalPath) != 0 {
		t.Errorf("CriticalPath = %v, want empty", res.CriticalPath)
	}
}

func TestAnalyze_ClosedIssuesContributeZero(t *testing.T) {
	// b is closed: a can start immediately and the project takes only a's 2.
	issues := []*model.Issue{
		open("a", 2),
		{ID: "b", Status: model.StatusClosed, Estimate: 10},
	}
	g := build(t, issues, []model.RawEdge{blocks("a", "b")})

	res := Analyze(g, Durations(issues, 1))

	if !approx(res.TotalDuration, 2) {
		t.Errorf("TotalDuration = %v, want 2", res.TotalDuration)
	}
	a := res.Nodes["a"]
	if !approx(a.EarliestStart, 0) {
		t.Errorf("ES(a) = %v, want 0", a.EarliestStart)
	}
	// b still participates in ordering and sits on the chain.
	if !reflect.DeepEqual(res.CriticalPath, []string{"a", "b"}) {
		t.Errorf("CriticalPath = %v, want [a b]", res.CriticalPath)
	}
}

func TestAnalyze_TotalEqualsLongestPath(t *testing.T) {
	// Two independent chains; the longer one sets the total.
	issues := []*model.Issue{
		open("a1", 2), open("a2", 2),
		open("b1", 3), open("b2", 3), open("b3", 3),
	}
	g := build(t, issues, []model.RawEdge{
		blocks("a2", "a1"),
		blocks("b2", "b1"),
		blocks("b3", "b2"),
	})

	res := Analyze(g, Durations(issues, 1))

	if !approx(res.TotalDuration, 9) {
		t.Errorf("TotalDuration = %v, want 9", res.TotalDuration)
	}
	if !reflect.DeepEqual(res.CriticalPath, []string{"b3", "b2", "b1"}) {
		t.Errorf("CriticalPath = %v, want [b3 b2 b1]", res.CriticalPath)
	}
	// The short chain has uniform slack of the difference.
	if !approx(res.Nodes["a1"].Slack, 5) {
		t.Errorf("Slack(a1) = %v, want 5", res.Nodes["a1"].Slack)
	}
}

func TestAnalyze_TieBrokenByID(t *testing.T) {
	// Two chains of identical duration; the chain through the smaller ID
	// wins deterministically.
	issues := []*model.Issue{open("sink", 1), open("left", 4), open("right", 4)}
	g := build(t, issues, []model.RawEdge{
		blocks("sink", "left"),
		blocks("sink", "right"),
	})

	res := Analyze(g, Durations(issues, 1))

	if !reflect.DeepEqual(res.CriticalPath, []string{"sink", "left"}) {
		t.Errorf("CriticalPath = %v, want [sink left]", res.CriticalPath)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	mk := func() *Result {
		issues := []*model.Issue{
			open("a", 1), open("b", 2), open("c", 5), open("d", 1), open("e", 2),
		}
		g := build(t, issues, []model.RawEdge{
			blocks("d", "b"),
			blocks("d", "c"),
			blocks("b", "a"),
			blocks("c", "a"),
			blocks("e", "d"),
		})
		return Analyze(g, Durations(issues, 1))
	}
	first := mk()
	for i := 0; i < 10; i++ {
		if got := mk(); !reflect.DeepEqual(got, first) {
			t.Fatalf("analysis changed across runs")
		}
	}
}
