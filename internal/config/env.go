package config

import (
	"os"
	"strconv"
)

// FromEnv overlays RELAY_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("RELAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RELAY_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("RELAY_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.Capacity = n
		}
	}
	if v := os.Getenv("RELAY_EVENODD_PRODUCERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EvenOdd.Producers = n
		}
	}
	if v := os.Getenv("RELAY_EVENODD_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EvenOdd.Iterations = n
		}
	}
	if v := os.Getenv("RELAY_PRIMES_REPORT_EVERY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Primes.ReportEvery = n
		}
	}
	if v := os.Getenv("RELAY_PRIMES_ACCEPT"); v != "" {
		cfg.Primes.Accept = v
	}
	if v := os.Getenv("RELAY_PRIMES_DECISION_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Primes.DecisionDelayMs = n
		}
	}
	if v := os.Getenv("RELAY_PRIMES_JOURNAL_DIR"); v != "" {
		cfg.Primes.JournalDir = v
	}
	if v := os.Getenv("RELAY_PRIMES_JOURNAL_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Primes.JournalMax = n
		}
	}
}
