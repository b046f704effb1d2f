package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/bd"
	"github.com/davidcforbes/beads-tui/internal/config"
	"github.com/davidcforbes/beads-tui/internal/ui"
)

var (
	bdBinFlag   string
	dbPathFlag  string
	jsonOutput  bool
	noColorFlag bool
	verbose     bool

	cfg    *config.Config
	client *bd.Client
)

var rootCmd = &cobra.Command{
	Use:   "btui",
	Short: "Dependency graph and schedule analysis for the bd issue tracker",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if bdBinFlag != "" {
			cfg.BdBin = bdBinFlag
		}
		if dbPathFlag != "" {
			cfg.DbPath = dbPathFlag
		}
		client = bd.NewClient(cfg.BdBin, cfg.DbPath)

		if noColorFlag || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bdBinFlag, "bd", "", "path to the bd binary")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to the bd database")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(cyclesCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(pertCmd)
	rootCmd.AddCommand(ganttCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
