// Package config holds Relay's declarative configuration: defaults, file
// loading (JSON or YAML by extension), RELAY_* environment overlays, and
// validation. Flag handling stays in the CLI layer; this package only knows
// about the resulting values.
package config
