package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var pertCmd = &cobra.Command{
	Use:   "pert",
	Short: "Show critical path analysis (ES/EF/LS/LF/slack per issue)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := computeNow(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(res.CPM, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		renderPertTable(os.Stdout, res)
		return nil
	},
}

// renderPertTable writes the per-issue timing table and the critical path
// summary. Color stays out of the tabwriter: it counts escape bytes as cell
// width, so colored cells would break the alignment.
func renderPertTable(out io.Writer, res *engine.Result) {
	ids := make([]string, 0, len(res.CPM.Nodes))
	for id := range res.CPM.Nodes {
		ids = append(ids, id)
	}
	// Earliest start first, ties by ID.
	sort.Slice(ids, func(i, j int) bool {
		a, b := res.CPM.Nodes[ids[i]], res.CPM.Nodes[ids[j]]
		if a.EarliestStart != b.EarliestStart {
			return a.EarliestStart < b.EarliestStart
		}
		return ids[i] < ids[j]
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tES\tEF\tLS\tLF\tSLACK\tCRIT")
	for _, id := range ids {
		n := res.CPM.Nodes[id]
		crit := ""
		if n.Critical {
			crit = "*"
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%s\n",
			id, n.EarliestStart, n.EarliestFinish, n.LatestStart, n.LatestFinish, n.Slack, crit)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal duration: %g\n", res.CPM.TotalDuration)
	if len(res.CPM.CriticalPath) > 0 {
		fmt.Fprintf(out, "Critical path:  %s\n", ui.RenderCritical(strings.Join(res.CPM.CriticalPath, " -> ")))
	}
}
