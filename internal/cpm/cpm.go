// Package cpm performs critical path analysis over a validated dependency
// graph: forward and backward passes in duration units (hours), slack, and
// the zero-slack chain that determines the minimum project duration.
package cpm

import (
	"math"

	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/model"
)

// slackEps absorbs float64 noise when testing slack against zero.
const slackEps = 1e-9

// Times holds the computed schedule distances for one node, all in duration
// units from the project start.
type Times struct {
	EarliestStart  float64
	EarliestFinish float64
	LatestStart    float64
	LatestFinish   float64
	Slack          float64
	Critical       bool
}

// Result is the outcome of one analysis pass.
type Result struct {
	Nodes map[string]Times

	// CriticalPath is the longest duration-weighted chain, listed in
	// depends-on order: the final deliverable first, the issue it
	// ultimately waits on last.
	CriticalPath []string

	// TotalDuration is the minimum achievable project duration given the
	// estimates: the maximum EarliestFinish over all nodes.
	TotalDuration float64
}

// Durations resolves per-issue durations for analysis: the estimate when one
// is set, defaultDur otherwise. Closed issues contribute 0 so completed work
// does not inflate the remaining critical path.
func Durations(issues []*model.Issue, defaultDur float64) map[string]float64 {
	out := make(map[string]float64, len(issues))
	for _, is := range issues {
		switch {
		case is.Status == model.StatusClosed:
			out[is.ID] = 0
		case is.Estimate > 0:
			out[is.ID] = is.Estimate
		default:
			out[is.ID] = defaultDur
		}
	}
	return out
}

// Analyze runs the forward and backward passes over a cycle-free graph.
// Issues missing from durations get 0. An empty graph yields an empty path
// and TotalDuration 0; that is a valid result, not an error. Calling Analyze
// on a graph with a cycle is a programmer error.
func Analyze(g *graph.Graph, durations map[string]float64) *Result {
	order := g.TopoOrder()
	n := g.Len()

	dur := make([]float64, n)
	for i := range dur {
		dur[i] = durations[g.ID(int32(i))]
	}

	es := make([]float64, n)
	ef := make([]float64, n)

	// Forward pass: a node starts when its slowest blocker finishes.
	for _, i := range order {
		start := 0.0
		for _, d := range g.Deps(i) {
			if ef[d] > start {
				start = ef[d]
			}
		}
		es[i] = start
		ef[i] = start + dur[i]
	}

	total := 0.0
	for i := range ef {
		if ef[i] > total {
			total = ef[i]
		}
	}

	// Backward pass: a node must finish before its earliest-starting
	// dependent needs it; sinks may finish as late as the project end.
	ls := make([]float64, n)
	lf := make([]float64, n)
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		finish := total
		for _, d := range g.Dependents(node) {
			if ls[d] < finish {
				finish = ls[d]
			}
		}
		lf[node] = finish
		ls[node] = finish - dur[node]
	}

	res := &Result{
		Nodes:         make(map[string]Times, n),
		TotalDuration: total,
	}
	critical := make([]bool, n)
	for i := range critical {
		slack := ls[i] - es[i]
		critical[i] = math.Abs(slack) < slackEps
		res.Nodes[g.ID(int32(i))] = Times{
			EarliestStart:  es[i],
			EarliestFinish: ef[i],
			LatestStart:    ls[i],
			LatestFinish:   lf[i],
			Slack:          slack,
			Critical:       critical[i],
		}
	}

	res.CriticalPath = criticalChain(g, order, dur, es, ef, critical)
	return res
}

// criticalChain connects the zero-slack nodes into a single chain from a
// source to a sink, following real edges with no waiting gap between them.
// When several chains qualify, the one with the largest cumulative duration
// wins, then the smaller issue ID.
func criticalChain(g *graph.Graph, order []int32, dur, es, ef []float64, critical []bool) []string {
	if g.Len() == 0 {
		return nil
	}

	// bestDur[n] is the best cumulative duration of a tight critical chain
	// starting at n; next[n] the chosen continuation (-1 for chain end).
	bestDur := make([]float64, g.Len())
	next := make([]int32, g.Len())
	for i := range next {
		next[i] = -1
	}

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if !critical[node] {
			continue
		}
		bestDur[node] = dur[node]
		for _, d := range g.Dependents(node) {
			if !critical[d] {
				continue
			}
			// A gap between finish and start means the dependent is
			// held up by a different chain; skip the loose edge.
			if math.Abs(ef[node]-es[d]) >= slackEps {
				continue
			}
			cand := dur[node] + bestDur[d]
			if better(cand, bestDur[node], g, next[node], d) {
				bestDur[node] = cand
				next[node] = d
			}
		}
	}

	// Chain start: a critical node at time zero with the best total. A node
	// whose own blocker is critical and tight belongs mid-chain, not at the
	// start, even when zero durations put it at time zero too.
	start := int32(-1)
	for _, node := range order {
		if !critical[node] || es[node] >= slackEps {
			continue
		}
		midChain := false
		for _, d := range g.Deps(node) {
			if critical[d] && math.Abs(ef[d]-es[node]) < slackEps {
				midChain = true
				break
			}
		}
		if midChain {
			continue
		}
		if start == -1 || better(bestDur[node], bestDur[start], g, start, node) {
			start = node
		}
	}
	if start == -1 {
		return nil
	}

	var chain []int32
	for n := start; n != -1; n = next[n] {
		chain = append(chain, n)
	}

	// Report in depends-on order: last executed first.
	ids := make([]string, len(chain))
	for i, n := range chain {
		ids[len(chain)-1-i] = g.ID(n)
	}
	return ids
}

// better reports whether a candidate continuation (durB via node b) beats the
// incumbent (durA via node a): larger cumulative duration first, then the
// smaller issue ID.
func better(durB, durA float64, g *graph.Graph, a, b int32) bool {
	if durB > durA+slackEps {
		return true
	}
	if durB < durA-slackEps {
		return false
	}
	if a == -1 {
		return true
	}
	return g.ID(b) < g.ID(a)
}
