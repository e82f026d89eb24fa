package cmd

import (
	"fmt"

	"github.com/abhisek/voltscope/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "voltscope",
	Short:        "Energy transition dashboard for the terminal",
	Long:         "Voltscope charts how regional electricity generation shifts from fossil fuels to clean sources, with AI-written insights and stories on demand.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit database (overrides VOLTSCOPE_DB env var)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Fixture noise seed (overrides VOLTSCOPE_SEED; 0 seeds from the clock)")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the persistent flags on
// top. Flags win over env vars only when set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VOLTSCOPE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	p, err := cfg.ResolveDBPath()
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	return p, nil
}
