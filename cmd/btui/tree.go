package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var treeCmd = &cobra.Command{
	Use:   "tree <issue-id>",
	Short: "Show an issue's dependencies as an ASCII tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")

		res, err := computeNow(cmd.Context())
		if err != nil {
			return err
		}
		g := res.Graph

		root, ok := g.Index(args[0])
		if !ok {
			return fmt.Errorf("issue %s not found", args[0])
		}

		fmt.Println(issueLine(res, root))
		printDepTree(res, root, "", depth-1)
		return nil
	},
}

// issueLine renders one node: id [status] title, critical nodes in red.
func issueLine(res *engine.Result, i int32) string {
	is := res.Graph.Node(i)
	id := is.ID
	if res.CPM.Nodes[id].Critical {
		id = ui.RenderCritical(id)
	}
	status := ui.RenderStatus(is.Status.String(), is.Status.String())
	return fmt.Sprintf("%s [%s] %s", id, status, is.Title)
}

func printDepTree(res *engine.Result, node int32, prefix string, remainingDepth int) {
	deps := res.Graph.Deps(node)
	for i, dep := range deps {
		isLast := i == len(deps)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		fmt.Printf("%s%s%s\n", prefix, ui.RenderMuted(connector), issueLine(res, dep))

		if remainingDepth != 0 && len(res.Graph.Deps(dep)) > 0 {
			printDepTree(res, dep, childPrefix, remainingDepth-1)
		}
	}
}

func init() {
	treeCmd.Flags().Int("depth", 3, "maximum recursion depth (-1 for unlimited)")
}
