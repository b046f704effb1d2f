// Package graph builds the validated hard-dependency DAG that the layout,
// cpm, and gantt packages consume. Nodes live in a dense arena indexed by
// small integer handles; edges are integer pairs, so the representation has
// no pointer cycles and is cheap to rebuild on every snapshot.
package graph

import (
	"sort"
	"strings"

	"github.com/davidcforbes/beads-tui/internal/model"
)

// Graph is the immutable dependency graph for one computation pass. It holds
// only hard (blocks) edges. A Graph is never handed to downstream consumers
// until DetectCycle has returned nil for it.
type Graph struct {
	nodes []*model.Issue
	index map[string]int32

	deps       [][]int32 // node -> nodes it depends on (its blockers)
	dependents [][]int32 // node -> nodes that depend on it
}

// Report counts the raw edges the builder dropped. Nothing in here is fatal:
// the views render partial graphs for stale or missing references.
type Report struct {
	SelfLoops   int
	UnknownRefs int
	Duplicates  int
	Soft        int
}

// Skipped returns the number of malformed hard edges dropped during the
// build: self-loops plus references to unknown issue IDs. Deduplicated and
// soft edges are tracked separately and are not malformed.
func (r Report) Skipped() int {
	return r.SelfLoops + r.UnknownRefs
}

// Build constructs a Graph from issue snapshots and raw dependency records.
// Soft (related / discovered-from) edges, self-loops, edges naming unknown
// issues, and duplicates are dropped and counted; Build never fails.
func Build(issues []*model.Issue, edges []model.RawEdge) (*Graph, Report) {
	nodes := make([]*model.Issue, len(issues))
	copy(nodes, issues)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	g := &Graph{
		nodes:      nodes,
		index:      make(map[string]int32, len(nodes)),
		deps:       make([][]int32, len(nodes)),
		dependents: make([][]int32, len(nodes)),
	}
	for i, is := range nodes {
		g.index[is.ID] = int32(i)
	}

	var rep Report
	seen := make(map[[2]int32]bool, len(edges))
	for _, e := range edges {
		if !e.Kind.Hard() {
			rep.Soft++
			continue
		}
		if e.From == e.To {
			rep.SelfLoops++
			continue
		}
		from, okFrom := g.index[e.From]
		to, okTo := g.index[e.To]
		if !okFrom || !okTo {
			rep.UnknownRefs++
			continue
		}
		key := [2]int32{from, to}
		if seen[key] {
			rep.Duplicates++
			continue
		}
		seen[key] = true
		// e.From depends on e.To: To is a blocker of From.
		g.deps[from] = append(g.deps[from], to)
		g.dependents[to] = append(g.dependents[to], from)
	}

	// Node indices follow ID order, so sorting by index keeps traversal
	// deterministic across runs.
	for i := range g.deps {
		sortIndices(g.deps[i])
		sortIndices(g.dependents[i])
	}

	return g, rep
}

func sortIndices(s []int32) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the issue snapshot at index i.
func (g *Graph) Node(i int32) *model.Issue {
	return g.nodes[i]
}

// Index returns the arena index for an issue ID.
func (g *Graph) Index(id string) (int32, bool) {
	i, ok := g.index[id]
	return i, ok
}

// ID returns the issue ID at index i.
func (g *Graph) ID(i int32) string {
	return g.nodes[i].ID
}

// Deps returns the indices of the nodes i depends on (its blockers).
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Deps(i int32) []int32 {
	return g.deps[i]
}

// Dependents returns the indices of the nodes that depend on i.
func (g *Graph) Dependents(i int32) []int32 {
	return g.dependents[i]
}

// Roots returns the indices of nodes that depend on nothing, in ID order.
// These are the nodes that can start immediately.
func (g *Graph) Roots() []int32 {
	var roots []int32
	for i := range g.nodes {
		if len(g.deps[i]) == 0 {
			roots = append(roots, int32(i))
		}
	}
	return roots
}

// Leaves returns the indices of nodes nothing depends on, in ID order.
func (g *Graph) Leaves() []int32 {
	var leaves []int32
	for i := range g.nodes {
		if len(g.dependents[i]) == 0 {
			leaves = append(leaves, int32(i))
		}
	}
	return leaves
}

// TopoOrder returns all nodes in execution order: every node appears after
// the nodes it depends on. Kahn's algorithm with a sorted ready queue, so the
// order is identical across runs. Returns nil if the graph has a cycle.
func (g *Graph) TopoOrder() []int32 {
	indeg := make([]int, len(g.nodes))
	for i := range g.nodes {
		indeg[i] = len(g.deps[i])
	}

	var queue []int32
	for i := range g.nodes {
		if indeg[i] == 0 {
			queue = append(queue, int32(i))
		}
	}

	order := make([]int32, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		var ready []int32
		for _, d := range g.dependents[n] {
			indeg[d]--
			if indeg[d] == 0 {
				ready = append(ready, d)
			}
		}
		sortIndices(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(g.nodes) {
		return nil
	}
	return order
}

// ErrGraphInvalid reports a hard-dependency cycle. It is fatal to layout and
// scheduling for the offending snapshot only; the caller is expected to
// branch on it and surface the chain to the user.
type ErrGraphInvalid struct {
	Cycle []string
}

func (e *ErrGraphInvalid) Error() string {
	return "dependency cycle: " + strings.Join(e.Cycle, " -> ")
}
