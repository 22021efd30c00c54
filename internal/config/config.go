package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	logpkg "github.com/rzbill/relay/pkg/log"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Log     logpkg.Config `json:"log" yaml:"log"`
	Queue   QueueConfig   `json:"queue" yaml:"queue"`
	EvenOdd EvenOddConfig `json:"evenOdd" yaml:"evenOdd"`
	Primes  PrimesConfig  `json:"primes" yaml:"primes"`
}

// QueueConfig tunes the bridge shared by the demos.
type QueueConfig struct {
	// Capacity bounds the pending-item queue. 0 = unbounded.
	Capacity int `json:"capacity" yaml:"capacity"`
}

// EvenOddConfig tunes the even/odd generator demo.
type EvenOddConfig struct {
	Producers  int `json:"producers" yaml:"producers"`
	Iterations int `json:"iterations" yaml:"iterations"`
}

// PrimesConfig tunes the prime round-trip demo.
type PrimesConfig struct {
	// ReportEvery reports every Nth prime found.
	ReportEvery int `json:"reportEvery" yaml:"reportEvery"`
	// Accept is a CEL expression over {value, index, now_ms} deciding each
	// reported prime. A false evaluation halts the producer.
	Accept string `json:"accept" yaml:"accept"`
	// DecisionDelayMs delays each accept decision, standing in for the
	// asynchronous environment that registers results.
	DecisionDelayMs int `json:"decisionDelayMs" yaml:"decisionDelayMs"`
	// JournalDir is where the resolution journal lives. Empty uses the
	// default data directory. "none" disables the journal.
	JournalDir string `json:"journalDir" yaml:"journalDir"`
	// JournalMax caps journal retention.
	JournalMax int `json:"journalMax" yaml:"journalMax"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Log: logpkg.Config{Level: "info", Format: "text"},
		Queue: QueueConfig{
			Capacity: 20,
		},
		EvenOdd: EvenOddConfig{
			Producers:  2,
			Iterations: 100,
		},
		Primes: PrimesConfig{
			ReportEvery:     1000,
			Accept:          "value < 1000000 && index < 10",
			DecisionDelayMs: 1,
			JournalMax:      1000,
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension), overlaid
// on defaults. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := yamlCompatibleJSON(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// yamlCompatibleJSON parses JSON through the YAML decoder, which accepts any
// valid JSON document and honors the same field names via the yaml tags.
func yamlCompatibleJSON(b []byte, cfg *Config) error {
	return yaml.Unmarshal(b, cfg)
}

// Validate rejects configurations the demos cannot run with.
func (c Config) Validate() error {
	if c.Queue.Capacity < 0 {
		return fmt.Errorf("config: queue.capacity must be >= 0")
	}
	if c.EvenOdd.Producers < 1 {
		return fmt.Errorf("config: evenOdd.producers must be >= 1")
	}
	if c.EvenOdd.Iterations < 1 {
		return fmt.Errorf("config: evenOdd.iterations must be >= 1")
	}
	if c.Primes.ReportEvery < 1 {
		return fmt.Errorf("config: primes.reportEvery must be >= 1")
	}
	if c.Primes.DecisionDelayMs < 0 {
		return fmt.Errorf("config: primes.decisionDelayMs must be >= 0")
	}
	return nil
}
