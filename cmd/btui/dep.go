package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/graph"
	"github.com/davidcforbes/beads-tui/internal/model"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage dependencies with cycle protection",
}

var depAddCmd = &cobra.Command{
	Use:   "add <issue-id> <depends-on-id>",
	Short: "Add a dependency, refusing edges that would create a cycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, dependsOnID := args[0], args[1]

		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		// Trial-build with the candidate edge before touching the tracker.
		candidate := model.RawEdge{From: issueID, To: dependsOnID, Kind: model.KindBlocks}
		g, _ := graph.Build(snap.Issues, append(snap.Edges, candidate))
		if _, ok := g.Index(issueID); !ok {
			return fmt.Errorf("issue %s not found", issueID)
		}
		if _, ok := g.Index(dependsOnID); !ok {
			return fmt.Errorf("issue %s not found", dependsOnID)
		}
		if cycle := g.DetectCycle(); cycle != nil {
			cmd.SilenceUsage = true
			return fmt.Errorf("refusing edge %s -> %s: would create cycle %s",
				issueID, dependsOnID, strings.Join(cycle, " -> "))
		}

		if err := client.AddDependency(cmd.Context(), issueID, dependsOnID); err != nil {
			return err
		}
		fmt.Printf("%s now depends on %s\n", issueID, dependsOnID)
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <issue-id> <depends-on-id>",
	Short: "Remove a dependency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RemoveDependency(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Removed dependency")
		return nil
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
}
