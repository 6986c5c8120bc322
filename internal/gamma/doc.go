// Package gamma provides the market fetch collaborator: a client for the
// Polymarket Gamma REST API.
//
// Endpoint: https://gamma-api.polymarket.com
//
// The pipeline itself is transport-agnostic; this package turns raw Gamma
// market listings into model.Market observations, skipping records it cannot
// parse and reporting how many were dropped.
package gamma
