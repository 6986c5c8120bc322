// Package report renders classified signals and backtest results as
// human-readable text. Presentation only: renderers never mutate their
// inputs and sort copies when they reorder for display.
package report
