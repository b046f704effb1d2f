package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the dependency graph layered by rank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := computeNow(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(res.Layout, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printLayers(res)
		return nil
	},
}

// printLayers lists each rank with its nodes in layout order. Rank 0 holds
// the issues nothing depends on being done first.
func printLayers(res *engine.Result) {
	ranks := rankedIDs(res)
	for rank, ids := range ranks {
		fmt.Printf("%s\n", ui.RenderAccent(fmt.Sprintf("rank %d", rank)))
		for _, id := range ids {
			idx, _ := res.Graph.Index(id)
			deps := res.Graph.Deps(idx)
			line := "  " + issueLine(res, idx)
			if len(deps) > 0 {
				names := make([]string, len(deps))
				for i, d := range deps {
					names[i] = res.Graph.ID(d)
				}
				line += ui.RenderMuted("  <- " + strings.Join(names, ", "))
			}
			fmt.Println(line)
		}
	}
	if res.Report.Skipped() > 0 {
		fmt.Println(ui.RenderMuted(fmt.Sprintf("(%d malformed edges skipped)", res.Report.Skipped())))
	}
}

// rankedIDs groups node IDs by rank, each rank sorted by layout order.
func rankedIDs(res *engine.Result) [][]string {
	maxRank := -1
	for _, p := range res.Layout {
		if p.Rank > maxRank {
			maxRank = p.Rank
		}
	}
	ranks := make([][]string, maxRank+1)
	for id, p := range res.Layout {
		ranks[p.Rank] = append(ranks[p.Rank], id)
	}
	for rank := range ranks {
		sort.Slice(ranks[rank], func(i, j int) bool {
			a, b := ranks[rank][i], ranks[rank][j]
			if res.Layout[a].Order != res.Layout[b].Order {
				return res.Layout[a].Order < res.Layout[b].Order
			}
			return a < b
		})
	}
	return ranks
}
