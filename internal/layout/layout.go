// Package layout assigns every node of a validated dependency graph a rank
// (topological depth) and an order within its rank. The tree view indents by
// rank; the graph view places each rank in a band and sorts the band by
// order. Two passes: longest-path ranking, then barycenter ordering.
package layout

import (
	"sort"

	"github.com/davidcforbes/beads-tui/internal/graph"
)

// Position locates one node in the layered layout.
type Position struct {
	// Rank is the length of the longest dependency chain leading into the
	// node: 0 for nodes that depend on nothing. For every hard edge
	// from -> to, Rank(from) > Rank(to).
	Rank int
	// Order is the barycenter of the node's dependencies' order values.
	// Positions within a rank are sorted by (Order, issue ID).
	Order float64
}

// Compute lays out a cycle-free graph. Calling it on a graph that still
// contains a cycle is a programmer error; the caller must have seen
// DetectCycle return nil first.
func Compute(g *graph.Graph) map[string]Position {
	order := g.TopoOrder()
	pos := make(map[string]Position, g.Len())

	// Longest-path ranking. Topological order guarantees every dependency
	// is ranked before its dependents, so one sweep suffices. Using the
	// longest rather than shortest path keeps a node below every chain it
	// waits on, even indirect ones.
	rank := make([]int, g.Len())
	for _, n := range order {
		r := 0
		for _, d := range g.Deps(n) {
			if rank[d]+1 > r {
				r = rank[d] + 1
			}
		}
		rank[n] = r
	}

	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	byRank := make([][]int32, maxRank+1)
	for i := range rank {
		byRank[rank[i]] = append(byRank[rank[i]], int32(i))
	}

	// Barycenter ordering, one ascending sweep. Rank 0 is ordered by issue
	// ID; above that, a node's order value is the mean of its dependencies'
	// final positions, ties broken by ID. Not optimal for crossings, but
	// stable and deterministic, which is what the renderers need.
	finalOrder := make([]float64, g.Len())
	for r, nodes := range byRank {
		bary := make([]float64, len(nodes))
		if r == 0 {
			for i := range nodes {
				bary[i] = float64(i) // nodes are already in ID order
			}
		} else {
			for i, n := range nodes {
				deps := g.Deps(n)
				sum := 0.0
				for _, d := range deps {
					sum += finalOrder[d]
				}
				bary[i] = sum / float64(len(deps))
			}
		}

		idx := make([]int, len(nodes))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			if bary[idx[a]] != bary[idx[b]] {
				return bary[idx[a]] < bary[idx[b]]
			}
			return g.ID(nodes[idx[a]]) < g.ID(nodes[idx[b]])
		})

		for slot, i := range idx {
			n := nodes[i]
			finalOrder[n] = float64(slot)
			pos[g.ID(n)] = Position{Rank: r, Order: bary[i]}
		}
	}

	return pos
}
