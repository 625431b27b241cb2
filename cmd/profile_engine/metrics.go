package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/metrics"
	"github.com/szmyty/profile/internal/pipeline"
)

var metricsCmd = &cobra.Command{
	Use:   "record-metrics <workflow>",
	Short: "Record a workflow run in the metrics store",
	Long: `Records one run of a named workflow: total and consecutive counts, last
success and failure timestamps, an exponential moving average of run time,
and accumulated API call counts. The status page renders this store.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordMetrics,
}

var (
	metricsSuccess  bool
	metricsRuntime  float64
	metricsError    string
	metricsGenerate bool
)

func init() {
	metricsCmd.Flags().BoolVar(&metricsSuccess, "success", false, "Record the run as successful")
	metricsCmd.Flags().Float64Var(&metricsRuntime, "runtime", 0, "Run time in seconds")
	metricsCmd.Flags().StringVar(&metricsError, "error", "", "Error message for a failed run")
	metricsCmd.Flags().BoolVar(&metricsGenerate, "render-status", false, "Regenerate the status page after recording")

	rootCmd.AddCommand(metricsCmd)
}

func runRecordMetrics(_ *cobra.Command, args []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}

	opts := metrics.RunOptions{ErrorMessage: metricsError}
	if metricsRuntime > 0 {
		opts.RunTimeSeconds = &metricsRuntime
	}

	recorder := metrics.NewRecorder(cfg.MetricsDir, log)
	m, err := recorder.RecordRun(args[0], metricsSuccess, opts)
	if err != nil {
		return fmt.Errorf("failed to record workflow run: %w", err)
	}

	fmt.Printf("Recorded %s run for %s: %d total, %d consecutive failure(s), status %s\n",
		outcomeWord(metricsSuccess), args[0], m.TotalRuns, m.ConsecutiveFailures, m.Status())

	if metricsGenerate {
		runner, err := pipeline.NewRunner(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}
		if result := runner.GenerateOne("status", "", "", true); result.Err != nil {
			return result.Err
		}
		fmt.Println("Regenerated status page")
	}
	return nil
}

func outcomeWord(success bool) string {
	if success {
		return "successful"
	}
	return "failed"
}
