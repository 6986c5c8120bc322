// Package history reads and writes the daily signal artifact: one JSON file
// per run date under the history directory, named signals_YYYY-MM-DD.json.
//
// The artifact is the backtest engine's primary input, so the format is
// stable: run id, run timestamp, stats, and the full ordered signal sequence.
package history
