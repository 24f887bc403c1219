package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spigell/talentcrew/internal/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print recruitment metrics and the funnel of every job",
	Run: func(cmd *cobra.Command, _ []string) {
		printMetrics(cmd)
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

type metricsReport struct {
	Summary metrics.Summary     `json:"summary"`
	Jobs    []metrics.JobReport `json:"jobs"`
}

func printMetrics(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	env, err := newEnv(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing environment", zap.Error(err))
	}
	defer env.Close()

	reporter := env.reporter()

	summary, err := reporter.Summary(ctx)
	if err != nil {
		logger.Fatal("reading metrics", zap.Error(err))
	}
	reports, err := reporter.Jobs(ctx)
	if err != nil {
		logger.Fatal("reading job reports", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "json":
		pretty, err := json.MarshalIndent(metricsReport{Summary: summary, Jobs: reports}, "", "  ")
		if err != nil {
			logger.Fatal("encoding metrics", zap.Error(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), summary.Text())
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), metrics.HiringStatus(reports))
	default:
		logger.Fatal("unknown output format", zap.String("output", output))
	}
}
