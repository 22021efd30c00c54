package log

import "fmt"

// Config declaratively describes a logger.
type Config struct {
	// Level is one of debug|info|warn|error|fatal. Defaults to info.
	Level string `json:"level" yaml:"level"`
	// Format is text|json. Defaults to text.
	Format string `json:"format" yaml:"format"`
	// Output is console|null, or a file path. Defaults to console.
	Output string `json:"output" yaml:"output"`
}

// ApplyConfig builds a Logger from cfg. A nil cfg yields the default logger.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		return NewLogger(), nil
	}

	opts := make([]LoggerOption, 0, 3)

	if cfg.Level != "" {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLevel(level))
	}

	switch cfg.Format {
	case "", "text":
		opts = append(opts, WithFormatter(&TextFormatter{}))
	case "json":
		opts = append(opts, WithFormatter(&JSONFormatter{}))
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}

	switch cfg.Output {
	case "", "console":
		opts = append(opts, WithOutput(NewConsoleOutput()))
	case "null":
		opts = append(opts, WithOutput(NullOutput{}))
	default:
		out, err := NewFileOutput(cfg.Output)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOutput(out))
	}

	return NewLogger(opts...), nil
}
