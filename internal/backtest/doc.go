// Package backtest replays stored signal runs against recorded equity prices
// to evaluate whether large probability moves preceded favorable moves in
// the mapped tickers.
//
// Evaluation is read-only: it never mutates signals or snapshots. Each
// Major/Notable signal with tickers is scored over a forward window measured
// in trading days (NYSE calendar by default). Missing price data excludes
// the affected (signal, ticker) pair and is counted in the report rather
// than failing it.
package backtest
