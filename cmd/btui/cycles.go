package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/graph"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Check the dependency graph for cycles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		g, rep := graph.Build(snap.Issues, snap.Edges)
		cycle := g.DetectCycle()

		if jsonOutput {
			out := struct {
				Cycle        []string `json:"cycle,omitempty"`
				SkippedEdges int      `json:"skipped_edges"`
			}{Cycle: cycle, SkippedEdges: rep.Skipped()}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			if cycle != nil {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &graph.ErrGraphInvalid{Cycle: cycle}
			}
			return nil
		}

		if cycle == nil {
			fmt.Printf("No cycles found (%d issues, %d skipped edges).\n", g.Len(), rep.Skipped())
			return nil
		}
		fmt.Printf("Dependency cycle: %s\n", strings.Join(cycle, " -> "))
		cmd.SilenceUsage = true
		return fmt.Errorf("the graph cannot be scheduled until the cycle is broken")
	},
}
