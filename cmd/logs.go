package cmd

import (
	"context"
	"fmt"

	"github.com/spigell/talentcrew/internal/activity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the most recent agent activity, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		printLogs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntP("limit", "n", activity.DefaultLimit, "number of entries to print")
}

func printLogs(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	env, err := newEnv(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing environment", zap.Error(err))
	}
	defer env.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := env.activity.Recent(ctx, limit)
	if err != nil {
		logger.Fatal("reading activity log", zap.Error(err))
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e)
	}
}
