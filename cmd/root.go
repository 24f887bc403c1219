package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spigell/talentcrew/internal/agents"
	"github.com/spigell/talentcrew/internal/runlock"
	"github.com/spigell/talentcrew/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "talentcrew"
	envPrefix = "TALENTCREW"

	defaultStorePath      = "talentcrew.db"
	defaultKeyringAccount = "gemini-api-key"
	defaultRequestsPerMin = 10
)

type Config struct {
	Store       store.Config     `mapstructure:"store"`
	Screening   *ScreeningConfig `mapstructure:"screening"`
	Sourcing    *SourcingConfig  `mapstructure:"sourcing"`
	Pipeline    *PipelineConfig  `mapstructure:"pipeline"`
	CatalogFile string           `mapstructure:"catalog-file"`
	LockFile    string           `mapstructure:"lock-file"`
	AI          *AIConfig        `mapstructure:"ai"`
}

type ScreeningConfig struct {
	Threshold        float64 `mapstructure:"threshold"`
	AnnotateRejected bool    `mapstructure:"annotate-rejected"`
}

type SourcingConfig struct {
	Count   int      `mapstructure:"count"`
	Sources []string `mapstructure:"sources"`
}

type PipelineConfig struct {
	Delay time.Duration `mapstructure:"delay"`
	Seed  uint64        `mapstructure:"seed"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey            string `mapstructure:"api-key" json:"-"`
	APIKeyFile        string `mapstructure:"api-key-file"`
	KeyringAccount    string `mapstructure:"keyring-account"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requests-per-minute"`
	MaxLogLength      int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentcrew runs a simulated recruitment pipeline: sourcing, screening, engagement and scheduling",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentcrew.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("store.driver", store.DriverSQLite)
	viper.SetDefault("store.path", defaultStorePath)
	viper.SetDefault("store.dsn", "")

	viper.SetDefault("screening.threshold", agents.DefaultThreshold)
	viper.SetDefault("screening.annotate-rejected", true)

	viper.SetDefault("sourcing.count", agents.DefaultSourcingCount)
	viper.SetDefault("sourcing.sources", agents.DefaultSources)

	viper.SetDefault("pipeline.delay", time.Duration(0))
	viper.SetDefault("pipeline.seed", 0)

	viper.SetDefault("catalog-file", "")
	viper.SetDefault("lock-file", runlock.DefaultFile)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.keyring-account", defaultKeyringAccount)
	viper.SetDefault("ai.gemini.model", "")
	viper.SetDefault("ai.gemini.requests-per-minute", defaultRequestsPerMin)
	viper.SetDefault("ai.gemini.max-log-length", 0)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config the defaults are enough to work with.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
