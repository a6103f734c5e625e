package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meddebate",
	Short: "Referee-mediated multi-specialist diagnosis engine",
	Long: `Meddebate runs a structured diagnostic deliberation between
specialist voices, with a referee that checks evidence, steers the
debate, and declares consensus.

A session starts with a short patient intake dialogue, selects the
relevant specialties, forms overlapping specialist pairs, and debates
in rounds until the referee declares consensus, breaks a stagnated
debate, or the round ceiling is reached.

This system is designed for research purposes and is not a substitute
for professional medical diagnosis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
