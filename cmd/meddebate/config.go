package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smhong/meddebate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify meddebate configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/meddebate/config.yaml
Project-specific overrides can be placed in .meddebate.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("aws.bedrock: %t\n", cfg.AWS.Bedrock)
	fmt.Printf("aws.region: %s\n", cfg.AWS.Region)
	fmt.Printf("aws.profile: %s\n", cfg.AWS.Profile)
	fmt.Printf("debate.max_rounds: %d\n", cfg.Debate.MaxRounds)
	fmt.Printf("debate.stagnation_threshold: %d\n", cfg.Debate.StagnationThreshold)
	fmt.Printf("debate.workers: %d\n", cfg.Debate.Workers)
	fmt.Printf("debate.call_timeout: %s\n", cfg.Debate.CallTimeout)
	fmt.Printf("search.enabled: %t\n", cfg.Search.Enabled)
	fmt.Printf("output.transcript_db: %s\n", cfg.Output.TranscriptDB)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "aws.bedrock":
		return strconv.FormatBool(cfg.AWS.Bedrock), nil
	case "aws.region":
		return cfg.AWS.Region, nil
	case "aws.profile":
		return cfg.AWS.Profile, nil
	case "debate.max_rounds":
		return strconv.Itoa(cfg.Debate.MaxRounds), nil
	case "debate.stagnation_threshold":
		return strconv.Itoa(cfg.Debate.StagnationThreshold), nil
	case "debate.workers":
		return strconv.Itoa(cfg.Debate.Workers), nil
	case "debate.call_timeout":
		return cfg.Debate.CallTimeout.String(), nil
	case "search.enabled":
		return strconv.FormatBool(cfg.Search.Enabled), nil
	case "output.transcript_db":
		return cfg.Output.TranscriptDB, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "aws.bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for aws.bedrock: %w", err)
		}
		cfg.AWS.Bedrock = b
	case "aws.region":
		cfg.AWS.Region = value
	case "aws.profile":
		cfg.AWS.Profile = value
	case "debate.max_rounds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_rounds: %w", err)
		}
		cfg.Debate.MaxRounds = n
	case "debate.stagnation_threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for stagnation_threshold: %w", err)
		}
		cfg.Debate.StagnationThreshold = n
	case "debate.workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for workers: %w", err)
		}
		cfg.Debate.Workers = n
	case "debate.call_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for call_timeout: %w", err)
		}
		cfg.Debate.CallTimeout = d
	case "search.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for search.enabled: %w", err)
		}
		cfg.Search.Enabled = b
	case "output.transcript_db":
		cfg.Output.TranscriptDB = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
