// Package registry implements the category registry: the ordered mapping
// from keyword sets to categories and their associated equity tickers.
//
// The registry is built once from configuration at process start and is
// read-only afterwards. Resolution walks categories in configuration order
// and returns the first whose keywords match, so results are deterministic
// across calls and process restarts.
package registry
