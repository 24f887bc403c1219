package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/talentcrew/internal/activity"
	"github.com/spigell/talentcrew/internal/agents"
	"github.com/spigell/talentcrew/internal/ai"
	"github.com/spigell/talentcrew/internal/ai/gemini"
	"github.com/spigell/talentcrew/internal/jobs"
	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/metrics"
	"github.com/spigell/talentcrew/internal/random"
	"github.com/spigell/talentcrew/internal/secrets"
	"github.com/spigell/talentcrew/internal/store"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// environment is what every command works against: the store, its activity log and the optional
// text generator.
type environment struct {
	config   *Config
	logger   *zap.Logger
	db       *store.DB
	activity *activity.SQL
	writer   *ai.Writer
	catalog  *jobs.Catalog
}

// setup builds the logger and loads the config. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		l.Fatal("config is required")
	}

	return l, config
}

func newEnv(ctx context.Context, config *Config, l *zap.Logger) (*environment, error) {
	catalog, err := jobs.Load(config.CatalogFile)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, config.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	l.Debug("store opened",
		zap.String("driver", db.Dialect().Name()),
		zap.String("path", config.Store.Path),
	)

	return &environment{
		config:   config,
		logger:   l,
		db:       db,
		activity: activity.NewSQL(db),
		writer:   newWriter(ctx, config.AI, l),
		catalog:  catalog,
	}, nil
}

func (e *environment) Close() {
	if err := e.db.Close(); err != nil {
		e.logger.Warn("closing store", zap.Error(err))
	}
}

func (e *environment) reporter() *metrics.Reporter {
	return metrics.NewReporter(e.db)
}

func (e *environment) pipeline(count int) *agents.Pipeline {
	deps := agents.Deps{
		Store:    e.db,
		Activity: e.activity,
		Logger:   e.logger,
		Writer:   e.writer,
	}

	cfg := agents.Config{
		SourcingCount:    agents.DefaultSourcingCount,
		Threshold:        agents.DefaultThreshold,
		AnnotateRejected: true,
	}

	if p := e.config.Pipeline; p != nil {
		deps.Delay = p.Delay
		deps.Random = random.New(p.Seed)
	}
	if s := e.config.Sourcing; s != nil {
		if s.Count > 0 {
			cfg.SourcingCount = s.Count
		}
		cfg.Sources = s.Sources
	}
	if s := e.config.Screening; s != nil {
		cfg.Threshold = s.Threshold
		cfg.AnnotateRejected = s.AnnotateRejected
	}
	if count > 0 {
		cfg.SourcingCount = count
	}

	return agents.New(deps, cfg)
}

// newWriter returns a writer backed by the configured provider, or one that reports
// the generator as unavailable when AI is disabled or cannot be set up.
func newWriter(ctx context.Context, cfg *AIConfig, l *zap.Logger) *ai.Writer {
	disabled := ai.NewWriter(nil, "", l, 0)
	if cfg == nil || !cfg.Enabled {
		return disabled
	}

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		l.Warn("skipping AI writer", zap.Error(err))
		return disabled
	}

	return ai.NewWriter(generator, gemini.ProviderName, l, cfg.Gemini.MaxLogLength)
}

func newGenerator(ctx context.Context, cfg *AIConfig) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.ProviderName {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:    "gemini api key",
		Value:   cfg.Gemini.APIKey,
		File:    cfg.Gemini.APIKeyFile,
		Keyring: cfg.Gemini.KeyringAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or run 'talentcrew secret set-gemini-key')", err)
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.RequestsPerMinute)
}
