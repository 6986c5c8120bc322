// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Pipeline throughput (markets processed, signals per class)
//   - Snapshot store write volume and failures
//   - Malformed-record skip counts
//   - Run duration
package metrics
