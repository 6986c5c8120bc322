// Package scheduler runs the signal cycle on a fixed interval.
//
// The scheduler:
//   - Runs one cycle immediately on start, then on every tick
//   - Bounds each cycle with a timeout
//   - Logs and skips failed cycles instead of stopping
package scheduler
