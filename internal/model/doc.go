// Package model defines shared data types used across the signal generator.
//
// Conventions:
//   - Probabilities: float64 fractions in [0, 1]
//   - Deltas: signed fractions (current - prior), nil when no prior exists
//   - Timestamps: time.Time in UTC
//   - IDs: string market ids as issued by the source API
package model
