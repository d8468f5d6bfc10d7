package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neupim-sim/neupim-sim/counts"
)

var (
	logLevel   string // Log verbosity level
	tracePath  string // YAML trace of instrumentation calls to replay
	outputPath string // Destination of the JSON report
	chartsPath string // Optional destination of the HTML histogram charts
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "neupim-sim",
	Short: "Operation counting and busy/idle instrumentation for the NeuPIM simulator",
}

// replayCmd replays a recorded instrumentation trace and exports the report
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a YAML instrumentation trace and export the counts report",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		trace, err := counts.LoadTrace(tracePath)
		if err != nil {
			return err
		}

		ctx := counts.NewContext()
		if err := trace.Apply(ctx); err != nil {
			return err
		}
		logrus.Infof("Replayed %d trace steps; %d loads, %d stores, %d computes in flight",
			len(trace.Steps), ctx.Loads(), ctx.Stores(), ctx.Computes())

		if err := ctx.Export(outputPath); err != nil {
			return err
		}
		if chartsPath != "" {
			if err := counts.WriteCharts(ctx.Snapshot(), chartsPath); err != nil {
				return err
			}
			logrus.Infof("Histogram charts written to %s", chartsPath)
		}
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	replayCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	replayCmd.Flags().StringVar(&tracePath, "trace", "", "Path to the YAML trace file")
	replayCmd.Flags().StringVar(&outputPath, "output", counts.DefaultReportFile, "Path of the JSON report to write")
	replayCmd.Flags().StringVar(&chartsPath, "charts", "", "Optional path of an HTML page with histogram charts")
	if err := replayCmd.MarkFlagRequired("trace"); err != nil {
		logrus.Fatalf("failed to mark trace flag required: %v", err)
	}

	rootCmd.AddCommand(replayCmd)
}
