package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List candidates, optionally filtered by stage and job",
	Run: func(cmd *cobra.Command, _ []string) {
		listCandidates(cmd)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().StringP("stage", "s", "", "only candidates in this stage")
	candidatesCmd.Flags().String("job", "", "only candidates for this job title")
	candidatesCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func listCandidates(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	var filter store.Filter

	if raw, _ := cmd.Flags().GetString("stage"); raw != "" {
		stage, err := candidate.ParseStage(raw)
		if err != nil {
			logger.Fatal("parsing stage", zap.Error(err))
		}
		filter.Stage = string(stage)
	}
	filter.JobTitle, _ = cmd.Flags().GetString("job")
	filter.JobTitle = strings.TrimSpace(filter.JobTitle)

	env, err := newEnv(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing environment", zap.Error(err))
	}
	defer env.Close()

	cs, err := env.reporter().Candidates(ctx, filter)
	if err != nil {
		logger.Fatal("reading candidates", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "json":
		pretty, err := json.MarshalIndent(cs, "", "  ")
		if err != nil {
			logger.Fatal("encoding candidates", zap.Error(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	case "text":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tJOB\tSTAGE\tSCORE\tINTERVIEW")
		for _, c := range cs {
			score := "-"
			if c.MatchScore != nil {
				score = fmt.Sprintf("%.2f", *c.MatchScore)
			}
			interview := "-"
			if c.InterviewTime != nil {
				interview = c.InterviewTime.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.JobTitle, c.Stage, score, interview)
		}
		w.Flush()
	default:
		logger.Fatal("unknown output format", zap.String("output", output))
	}

	logger.Debug("listed candidates", zap.Int("count", len(cs)))
}
