// Package config handles YAML configuration loading with environment
// variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable
// interpolation. The watchlist section defines the category registry; its
// order is significant (first matching category wins) and an empty watchlist
// is a fatal startup error.
package config
