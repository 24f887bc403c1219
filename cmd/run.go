package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spigell/talentcrew/internal/agents"
	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/runlock"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recruitment pipeline for a job",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("job", "", "job title to recruit for (required)")
	runCmd.Flags().String("description-file", "", "file with the job description. Default is the catalog entry for the job.")
	runCmd.Flags().IntP("count", "c", 0, "number of candidates to source. Default is sourcing.count from the config.")
	runCmd.Flags().StringP("stage", "s", "", "run only the named agent (sourcing, screening, engagement or scheduling)")
	runCmd.Flags().StringSlice("disable", nil, "agents to skip")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before starting")

	runCmd.MarkFlagRequired("job")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setup()

	logger.Info("starting the talentcrew", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	lock, err := runlock.Acquire(config.LockFile)
	if err != nil {
		logger.Fatal("acquiring run lock", zap.Error(err))
	}
	defer lock.Release()

	env, err := newEnv(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing environment", zap.Error(err))
	}
	defer env.Close()

	job, err := resolveJob(env, cmd)
	if err != nil {
		logger.Fatal("resolving job", zap.Error(err))
	}

	count, _ := cmd.Flags().GetInt("count")
	pipeline := env.pipeline(count)

	disabled, _ := cmd.Flags().GetStringSlice("disable")
	for _, name := range disabled {
		if !pipeline.DisableByName(name, "disabled by flag") {
			logger.Fatal("unknown agent", zap.String("name", name))
		}
	}

	if err := pipeline.Validate(); err != nil {
		logger.Fatal("validating pipeline", zap.Error(err))
	}

	for _, s := range pipeline.Describe() {
		logger.Info("agent", zap.String("name", s.Name), zap.Bool("enabled", s.Enabled), zap.Any("details", s.Details))
	}

	stage, _ := cmd.Flags().GetString("stage")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if !autoApprove {
		if err := confirm(job, stage); err != nil {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	logger.Info("starting the pipeline", zap.String("job_title", job.Title), zap.String("stage", stage))

	var results []agents.Result
	if stage != "" {
		res, err := pipeline.RunStage(ctx, stage, job)
		if err != nil {
			logger.Fatal("running stage", zap.Error(err))
		}
		results = append(results, res)
	} else {
		results, err = pipeline.Run(ctx, job)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("running pipeline", zap.Error(err))
		}
		if errors.Is(err, context.Canceled) {
			logger.Warn("pipeline interrupted", zap.Int("completed_stages", len(results)))
		}
	}

	failed := 0
	for _, res := range results {
		if !res.Success {
			failed++
		}
	}

	summary, err := env.reporter().Summary(ctx)
	if err != nil {
		logger.Fatal("reading metrics", zap.Error(err))
	}

	logger.Info("pipeline finished",
		zap.Int("stages", len(results)),
		zap.Int("failed_stages", failed),
		zap.Int("sourced", summary.Sourced),
		zap.Int("screened", summary.Screened),
		zap.Int("engaged", summary.Engaged),
		zap.Int("scheduled", summary.Scheduled),
	)
}

// resolveJob takes the title from the flags and the description from the file flag,
// falling back to the catalog.
func resolveJob(env *environment, cmd *cobra.Command) (candidate.Job, error) {
	title, _ := cmd.Flags().GetString("job")
	title = strings.TrimSpace(title)
	if title == "" {
		return candidate.Job{}, errors.New("job title is required")
	}

	job := env.catalog.Resolve(title)

	file, _ := cmd.Flags().GetString("description-file")
	if file = strings.TrimSpace(file); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return candidate.Job{}, fmt.Errorf("reading job description: %w", err)
		}
		job.Description = string(data)
	}

	return job, nil
}

func confirm(job candidate.Job, stage string) error {
	what := "the full pipeline"
	if stage != "" {
		what = "the " + stage + " agent"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Run %s for %q", what, job.Title),
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err
}
