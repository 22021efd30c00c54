// Package demo contains the two runnable workloads that exercise the bridge:
// an even/odd generator fanning several producers into one consumer, and a
// prime reporter that round-trips each reported value through an asynchronous
// accept decision.
package demo
