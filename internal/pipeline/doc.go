// Package pipeline orchestrates one signal-generation pass: for each fetched
// market it looks up the prior snapshot, computes and classifies the
// probability delta, resolves the category, emits a Signal, and persists the
// new snapshot.
//
// Each run is a sequential pass. Output order matches input order, and a
// market's delta depends only on its own stored history. Storage failures on
// individual markets do not stop the pass; they are joined and surfaced once
// the whole input has been processed.
package pipeline
