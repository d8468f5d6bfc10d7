// Package counts is the instrumentation layer of the simulator: it tracks
// how many load/store/compute operations are in flight, derives busy and
// idle intervals per operation class from that stream of counter updates,
// accumulates duration histograms, and keeps a chronological event log of
// status changes and run-stage transitions.
//
// # Reading Guide
//
//   - status.go: operation classes, run stages, and the busy/idle status value
//   - histogram.go: duration -> occurrence histograms
//   - event.go: the append-only event log entries
//   - context.go: the Context owning all per-run state and its update logic
//   - report.go: JSON snapshot export of a Context
//   - trace.go: YAML trace replay driving a Context from a file
//   - charts.go: HTML bar-chart rendering of the histograms
//
// A Context is driven by exactly one caller at a time (the simulator's
// main loop); none of its operations are safe for concurrent use.
package counts
