package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/runlock"
	"github.com/spigell/talentcrew/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty store with sample candidates by running the pipeline for catalog jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		seed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringSlice("job", nil, "catalog jobs to seed. Default is every job in the catalog.")
	seedCmd.Flags().IntP("count", "c", 0, "candidates to source per job")
	seedCmd.Flags().BoolP("force", "f", false, "seed even if the store already has candidates")
}

func seed(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setup()

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

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		existing, err := env.db.Get(ctx, store.Filter{})
		if err != nil {
			logger.Fatal("reading store", zap.Error(err))
		}
		if len(existing) > 0 {
			logger.Info("skipping seeding", zap.String("reason", "store already has candidates"), zap.Int("count", len(existing)))
			return
		}
	}

	titles, _ := cmd.Flags().GetStringSlice("job")
	var selected []candidate.Job
	if len(titles) == 0 {
		selected = env.catalog.Jobs
	} else {
		for _, title := range titles {
			job, ok := env.catalog.Find(title)
			if !ok {
				logger.Fatal("job is not in the catalog", zap.String("job_title", title), zap.Strings("catalog", env.catalog.Titles()))
			}
			selected = append(selected, job)
		}
	}

	count, _ := cmd.Flags().GetInt("count")
	for _, job := range selected {
		results, err := env.pipeline(count).Run(ctx, job)
		if err != nil {
			logger.Fatal("seeding job", zap.String("job_title", job.Title), zap.Error(err))
		}
		logger.Info("seeded job", zap.String("job_title", job.Title), zap.Int("stages", len(results)))
	}

	summary, err := env.reporter().Summary(ctx)
	if err != nil {
		logger.Fatal("reading metrics", zap.Error(err))
	}
	logger.Info("seeding finished", zap.Int("jobs", len(selected)), zap.Int("candidates", summary.Sourced+summary.Screened+summary.Engaged+summary.Scheduled))
}
