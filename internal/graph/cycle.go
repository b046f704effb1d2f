package graph

// DFS colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the recursion stack
	black        // fully explored
)

// DetectCycle returns the first hard-dependency cycle found as a closed walk
// of issue IDs ([X, Y, ..., X]), or nil if the graph is acyclic. Traversal
// follows the depends-on direction and visits nodes in ID order, so repeated
// runs over identical input report the identical cycle. Runs in O(V+E).
//
// A nil result is the gate for every downstream computation: layout and
// scheduling must not be invoked until DetectCycle has returned nil.
func (g *Graph) DetectCycle() []string {
	color := make([]int, len(g.nodes))
	parent := make([]int32, len(g.nodes))
	for i := range parent {
		parent[i] = -1
	}

	var dfs func(n int32) []int32
	dfs = func(n int32) []int32 {
		color[n] = gray
		for _, next := range g.deps[n] {
			switch color[next] {
			case gray:
				// Back edge: walk parents from n back to next to
				// recover the closed walk [next ... n next].
				cycle := []int32{next, n}
				for cur := n; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				// Reverse into depends-on order.
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			case white:
				parent[next] = n
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[n] = black
		return nil
	}

	for i := range g.nodes {
		if color[i] != white {
			continue
		}
		if cycle := dfs(int32(i)); cycle != nil {
			ids := make([]string, len(cycle))
			for j, n := range cycle {
				ids[j] = g.nodes[n].ID
			}
			return ids
		}
	}
	return nil
}
