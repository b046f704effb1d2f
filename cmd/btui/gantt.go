package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Show the projected schedule as a Gantt chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		res, err := computeNow(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(res.Schedule, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printGantt(res, width)
		return nil
	},
}

func printGantt(res *engine.Result, width int) {
	if len(res.Schedule) == 0 {
		fmt.Println("Nothing to schedule.")
		return
	}

	ids := make([]string, 0, len(res.Schedule))
	var min, max time.Time
	for id, span := range res.Schedule {
		ids = append(ids, id)
		if min.IsZero() || span.Start.Before(min) {
			min = span.Start
		}
		if span.End.After(max) {
			max = span.End
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := res.Schedule[ids[i]], res.Schedule[ids[j]]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return ids[i] < ids[j]
	})

	total := max.Sub(min)
	if total <= 0 {
		total = time.Hour
	}
	idWidth := 0
	for _, id := range ids {
		if len(id) > idWidth {
			idWidth = len(id)
		}
	}

	fmt.Printf("%-*s  %s .. %s\n", idWidth, "", min.Format("2006-01-02"), max.Format("2006-01-02"))
	for _, id := range ids {
		span := res.Schedule[id]
		from := int(float64(width) * float64(span.Start.Sub(min)) / float64(total))
		to := int(float64(width) * float64(span.End.Sub(min)) / float64(total))
		if to <= from {
			to = from + 1
		}
		if to > width {
			to = width
		}

		bar := strings.Repeat("█", to-from)
		if span.Critical {
			bar = ui.RenderCritical(bar)
		} else {
			bar = ui.RenderStatus(res.Graph.Node(mustIndex(res, id)).Status.String(), bar)
		}
		fmt.Printf("%-*s  %s%s  %s\n",
			idWidth, id,
			strings.Repeat(" ", from), bar,
			ui.RenderMuted(span.Start.Format("01-02")+" .. "+span.End.Format("01-02")))
	}
}

func mustIndex(res *engine.Result, id string) int32 {
	i, _ := res.Graph.Index(id)
	return i
}

func init() {
	ganttCmd.Flags().Int("width", 60, "chart width in columns")
}
