package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/engine"
	"github.com/davidcforbes/beads-tui/internal/events"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute the schedule continuously as the tracker changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")
		if interval <= 0 {
			interval = cfg.PollInterval
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if once {
			return watchOnce(ctx)
		}

		runner := engine.NewRunner(engineOptions(), slog.Default())
		runner.Start()
		defer runner.Stop()

		submit := func() {
			snap, err := loadSnapshot(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("snapshot failed", "err", err)
				}
				return
			}
			runner.Submit(snap)
		}
		submit()

		// reconnectCh receives a signal when the NATS client reconnects after
		// a disconnect, so we can immediately re-query for missed events.
		reconnectCh := make(chan struct{}, 1)
		polling := cfg.NATSURL == ""

		var sub events.Subscriber
		if polling {
			sub = &events.NoopSubscriber{}
		} else {
			var err error
			sub, err = events.NewNATSSubscriber(cfg.NATSURL,
				nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
					slog.Warn("nats disconnected", "err", err)
				}),
				nats.ReconnectHandler(func(_ *nats.Conn) {
					slog.Info("nats reconnected")
					select {
					case reconnectCh <- struct{}{}:
					default:
					}
				}),
			)
			if err != nil {
				return fmt.Errorf("connecting to NATS: %w", err)
			}
		}
		defer sub.Close()

		eventCh, cancel, err := sub.Subscribe(events.TopicAll)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		return watchLoop(ctx, runner, eventCh, reconnectCh, interval, polling, submit)
	},
}

// watchOnce runs a single synchronous pass. Errors (tracker unreachable,
// dependency cycle) return immediately instead of waiting on a background
// result that will never come.
func watchOnce(ctx context.Context) error {
	res, err := computeNow(ctx)
	if err != nil {
		return err
	}
	printWatchSummary(res)
	return nil
}

// watchLoop drives recomputation: debounced on tracker events when NATS is
// configured, on a fixed interval when polling (the noop subscriber never
// delivers, so only the ticker fires).
func watchLoop(ctx context.Context, runner *engine.Runner, eventCh <-chan []byte, reconnectCh <-chan struct{}, interval time.Duration, polling bool, submit func()) error {
	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	var tick <-chan time.Time
	if polling {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-runner.Results():
			printWatchSummary(res)
		case _, ok := <-eventCh:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			submit()
		case <-tick:
			submit()
		}
	}
}

func printWatchSummary(res *engine.Result) {
	ts := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %d issues, total duration %g", ts, res.Graph.Len(), res.CPM.TotalDuration)
	if res.Report.Skipped() > 0 {
		line += fmt.Sprintf(", %d edges skipped", res.Report.Skipped())
	}
	fmt.Println(ui.RenderMuted(line))
	if len(res.CPM.CriticalPath) > 0 {
		fmt.Printf("  critical: %s\n", ui.RenderCritical(strings.Join(res.CPM.CriticalPath, " -> ")))
	}
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "polling interval (default from config)")
	watchCmd.Flags().Bool("once", false, "exit after the first computation")
}
