package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/on-the-ground/memoexpr/optimizer"
	"github.com/on-the-ground/memoexpr/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [scenario ...]",
	Short: "Run built-in scenarios.",
	Long: `Run the named scenarios, or all of them, once naively and once through the
optimizer, and print values, call counts and timings.`,
	Run: func(cmd *cobra.Command, args []string) {
		strategy, err := optimizer.ParseStrategy(GetString(cmd, "strategy"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		delay, err := time.ParseDuration(GetString(cmd, "delay"))
		if err != nil {
			fmt.Printf("invalid delay: %v\n", err)
			os.Exit(2)
		}

		logger := newLogger(GetFlag(cmd, "verbose"))
		defer func() { _ = logger.Sync() }()

		cfg := optimizer.NewConfig(strategy, GetInt(cmd, "buffer"), GetInt(cmd, "workers"), logger)

		selected, err := selectScenarios(scenario.All(delay), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		if failures := runScenarios(selected, cfg, logger); failures > 0 {
			os.Exit(4)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in scenarios.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range scenario.All(0) {
			fmt.Println(s.Name())
		}
	},
}

func selectScenarios(all []scenario.Scenario, names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]scenario.Scenario, len(all))
	for _, s := range all {
		byName[s.Name()] = s
	}
	selected := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

func runScenarios(scenarios []scenario.Scenario, cfg optimizer.Config, logger *zap.Logger) int {
	failures := 0
	for _, s := range scenarios {
		report, err := s.Run(cfg)
		if err != nil {
			logger.Error("scenario failed", zap.String("scenario", s.Name()), zap.Error(err))
			failures++
			continue
		}
		fmt.Println(report)
		if !report.Match() {
			logger.Error("optimized result differs",
				zap.String("scenario", s.Name()),
				zap.String("naive", report.Naive),
				zap.String("optimized", report.Optimized),
			)
			failures++
		}
	}
	return failures
}

func init() {
	runCmd.Flags().String("strategy", "eager", "forcing strategy: eager, lazy or concurrent")
	runCmd.Flags().Int("workers", 1, "number of workers for concurrent forcing")
	runCmd.Flags().Int("buffer", 1, "per-worker queue size for concurrent forcing")
	runCmd.Flags().String("delay", "100ms", "latency added to each call in timed scenarios")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}
