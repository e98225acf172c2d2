package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcafoundry/lcicore/internal/config"
	"github.com/lcafoundry/lcicore/internal/logging"
)

var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "lcicore",
	Short: "Partition an inventory archive and solve its life-cycle inventory",
	Long: `lcicore loads a life-cycle inventory archive, partitions its
technosphere into background and foreground, and solves or characterizes
the result for one or more reference product flows.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		if err := s.BindFlags(cmd); err != nil {
			return err
		}
		settings = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("strategy", "first", "termination resolution strategy (cutoff, mix, first, last)")
	rootCmd.PersistentFlags().String("quantity", "default", "allocation quantity applied to multi-output processes")
	rootCmd.PersistentFlags().Float64("threshold", 1e-8, "LCI solver relative convergence threshold")
	rootCmd.PersistentFlags().Int("max-iterations", 100, "LCI solver iteration budget")
	rootCmd.PersistentFlags().Int("recursion-budget", 18000, "traversal recursion depth cap")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger() (logging.Logger, error) {
	return logging.New(settings.LogLevel())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
