// Package config handles configuration loading for meddebate.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for meddebate.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Debate    DebateConfig    `mapstructure:"debate"`
	Search    SearchConfig    `mapstructure:"search"`
	Output    OutputConfig    `mapstructure:"output"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AWSConfig holds AWS Bedrock settings.
type AWSConfig struct {
	// Bedrock routes oracle calls through AWS Bedrock instead of the
	// direct API.
	Bedrock bool `mapstructure:"bedrock"`
	// Region is the AWS region for Bedrock.
	Region string `mapstructure:"region"`
	// Profile is the optional AWS profile name.
	Profile string `mapstructure:"profile"`
}

// DebateConfig holds deliberation parameters.
type DebateConfig struct {
	// MaxRounds is the hard ceiling on debate rounds.
	MaxRounds int `mapstructure:"max_rounds"`
	// StagnationThreshold is the consecutive unchanged rounds before the
	// referee intervenes.
	StagnationThreshold int `mapstructure:"stagnation_threshold"`
	// Workers caps concurrent oracle calls within a stage.
	Workers int `mapstructure:"workers"`
	// CallTimeout bounds a single oracle call.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

// SearchConfig holds web search settings.
type SearchConfig struct {
	// Enabled allows debate voices to issue web searches.
	Enabled bool `mapstructure:"enabled"`
}

// OutputConfig holds transcript persistence settings.
type OutputConfig struct {
	// TranscriptDB is the SQLite path for session transcripts. Empty
	// disables persistence.
	TranscriptDB string `mapstructure:"transcript_db"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, MEDDEBATE_*)
// 2. Project config (.meddebate.yaml in current directory or a parent)
// 3. User config (~/.config/meddebate/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("MEDDEBATE")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("aws.bedrock", cfg.AWS.Bedrock)
	v.Set("aws.region", cfg.AWS.Region)
	v.Set("aws.profile", cfg.AWS.Profile)
	v.Set("debate.max_rounds", cfg.Debate.MaxRounds)
	v.Set("debate.stagnation_threshold", cfg.Debate.StagnationThreshold)
	v.Set("debate.workers", cfg.Debate.Workers)
	v.Set("debate.call_timeout", cfg.Debate.CallTimeout.String())
	v.Set("search.enabled", cfg.Search.Enabled)
	v.Set("output.transcript_db", cfg.Output.TranscriptDB)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it
// exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")

	v.SetDefault("aws.bedrock", false)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")

	v.SetDefault("debate.max_rounds", 100)
	v.SetDefault("debate.stagnation_threshold", 10)
	v.SetDefault("debate.workers", 3)
	v.SetDefault("debate.call_timeout", "90s")

	v.SetDefault("search.enabled", true)

	v.SetDefault("output.transcript_db", "")
}

// getUserConfigDir returns the XDG config directory for meddebate.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "meddebate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "meddebate")
	}
	return filepath.Join(home, ".config", "meddebate")
}

// findProjectConfig searches for .meddebate.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".meddebate.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Debate: DebateConfig{
			MaxRounds:           100,
			StagnationThreshold: 10,
			Workers:             3,
			CallTimeout:         90 * time.Second,
		},
		Search: SearchConfig{
			Enabled: true,
		},
	}
}
