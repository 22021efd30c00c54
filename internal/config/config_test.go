package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path must return defaults")
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	body := []byte("log:\n  level: debug\nqueue:\n  capacity: 5\nprimes:\n  reportEvery: 50\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Queue.Capacity != 5 || cfg.Primes.ReportEvery != 50 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep defaults.
	if cfg.EvenOdd.Producers != Default().EvenOdd.Producers {
		t.Fatalf("default lost: %+v", cfg.EvenOdd)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.json")
	body := []byte(`{"evenOdd": {"producers": 4, "iterations": 10}}`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EvenOdd.Producers != 4 || cfg.EvenOdd.Iterations != 10 {
		t.Fatalf("json overrides not applied: %+v", cfg.EvenOdd)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("queue: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed config must error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Queue.Capacity = -1 },
		func(c *Config) { c.EvenOdd.Producers = 0 },
		func(c *Config) { c.EvenOdd.Iterations = 0 },
		func(c *Config) { c.Primes.ReportEvery = 0 },
		func(c *Config) { c.Primes.DecisionDelayMs = -1 },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: invalid config accepted", i)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RELAY_LOG_LEVEL", "debug")
	t.Setenv("RELAY_QUEUE_CAPACITY", "7")
	t.Setenv("RELAY_PRIMES_ACCEPT", "index < 3")
	t.Setenv("RELAY_EVENODD_PRODUCERS", "not-a-number")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.Log.Level != "debug" || cfg.Queue.Capacity != 7 || cfg.Primes.Accept != "index < 3" {
		t.Fatalf("env overlay not applied: %+v", cfg)
	}
	if cfg.EvenOdd.Producers != Default().EvenOdd.Producers {
		t.Fatalf("unparsable env value must be ignored")
	}
}
