// Package demorun exposes the shared Run entrypoints used by the CLI to start
// the demo workloads, handling signal-aware lifecycle, logger construction,
// and storage wiring.
package demorun
