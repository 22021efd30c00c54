package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	demorun "github.com/rzbill/relay/internal/cmd/demo"
	cfgpkg "github.com/rzbill/relay/internal/config"
	"github.com/rzbill/relay/internal/runtime"
	logpkg "github.com/rzbill/relay/pkg/log"
)

// loadConfig builds the effective configuration: file, then RELAY_* env,
// then the command's flags.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	cfgpkg.FromEnv(&cfg)

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	if cmd.Flags().Changed("queue-size") {
		cfg.Queue.Capacity, _ = cmd.Flags().GetInt("queue-size")
	}
	return cfg, nil
}

func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Config file (JSON or YAML)")
	cmd.Flags().String("log-level", os.Getenv("RELAY_LOG_LEVEL"), "Log level: debug|info|warn|error")
	cmd.Flags().String("log-format", os.Getenv("RELAY_LOG_FORMAT"), "Log format: text|json (default text)")
	cmd.Flags().Int("queue-size", 0, "Bridge queue capacity (0 = unbounded)")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay bridge CLI",
		Long:  "Relay funnels values from producer goroutines to a single consumer. This CLI runs the demo workloads and inspects the resolution journal.",
	}

	demoCmd := &cobra.Command{Use: "demo", Short: "Demo workloads"}

	evenOddCmd := &cobra.Command{
		Use:   "evenodd",
		Short: "Run the even/odd generator demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("producers") {
				cfg.EvenOdd.Producers, _ = cmd.Flags().GetInt("producers")
			}
			if cmd.Flags().Changed("iterations") {
				cfg.EvenOdd.Iterations, _ = cmd.Flags().GetInt("iterations")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := demorun.RunEvenOdd(ctx, demorun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("evenodd demo: %w", err)
			}
			return nil
		},
	}
	addSharedFlags(evenOddCmd)
	evenOddCmd.Flags().Int("producers", 0, "Number of producer goroutines")
	evenOddCmd.Flags().Int("iterations", 0, "Values emitted per producer")
	demoCmd.AddCommand(evenOddCmd)

	primesCmd := &cobra.Command{
		Use:   "primes",
		Short: "Run the prime round-trip demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("report-every") {
				cfg.Primes.ReportEvery, _ = cmd.Flags().GetInt("report-every")
			}
			if cmd.Flags().Changed("accept") {
				cfg.Primes.Accept, _ = cmd.Flags().GetString("accept")
			}
			if cmd.Flags().Changed("decision-delay-ms") {
				cfg.Primes.DecisionDelayMs, _ = cmd.Flags().GetInt("decision-delay-ms")
			}
			if cmd.Flags().Changed("journal-dir") {
				cfg.Primes.JournalDir, _ = cmd.Flags().GetString("journal-dir")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := demorun.RunPrimes(ctx, demorun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("primes demo: %w", err)
			}
			return nil
		},
	}
	addSharedFlags(primesCmd)
	primesCmd.Flags().Int("report-every", 0, "Report every Nth prime")
	primesCmd.Flags().String("accept", "", "CEL accept expression over {value, index, now_ms}")
	primesCmd.Flags().Int("decision-delay-ms", 0, "Delay before each accept decision")
	primesCmd.Flags().String("journal-dir", "", "Journal directory (\"none\" disables)")
	demoCmd.AddCommand(primesCmd)
	rootCmd.AddCommand(demoCmd)

	journalCmd := &cobra.Command{Use: "journal", Short: "Resolution journal operations"}
	journalListCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded resolutions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			limit, _ := cmd.Flags().GetInt("limit")
			if dataDir == "" {
				dataDir = cfgpkg.DefaultDataDir()
			}
			rt, err := runtime.Open(runtime.Options{
				DataDir: filepath.Join(dataDir, "store"),
				Config:  cfgpkg.Default(),
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			entries, err := rt.Journal("primes", 0).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  value=%d  result=%v  resolved_at=%s\n",
					e.Token, e.Value, e.Result,
					time.UnixMilli(e.ResolvedAtMs).UTC().Format(time.RFC3339),
				)
			}
			if len(entries) == 0 {
				fmt.Println("journal is empty")
			}
			return nil
		},
	}
	journalListCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	journalListCmd.Flags().Int("limit", 20, "Maximum entries to print")
	journalCmd.AddCommand(journalListCmd)
	rootCmd.AddCommand(journalCmd)

	if err := rootCmd.Execute(); err != nil {
		logger := logpkg.NewLogger(
			logpkg.WithFormatter(&logpkg.TextFormatter{}),
			logpkg.WithOutput(logpkg.NewConsoleOutput()),
		)
		logger.Error("command failed", logpkg.Err(err))
		os.Exit(1)
	}
}
