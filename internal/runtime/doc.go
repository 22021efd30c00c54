// Package runtime wires the process-wide resources the demos share: the
// storage engine behind the resolution journal and the loaded configuration.
package runtime
