package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL          = "https://gamma-api.polymarket.com"
	DefaultAPITimeout       = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultFetchLimit       = 300
	DefaultStorageDriver    = "sqlite"
	DefaultSQLitePath       = "data/markets.db"
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultMajorThreshold   = 0.05
	DefaultNotableThreshold = 0.02
	DefaultMinVolume24h     = 10000
	DefaultHistoryDir       = "data/history"
	DefaultForwardDays      = 1
	DefaultCalendar         = "xnys"
	DefaultMetricsPort      = 9090
	DefaultMetricsPath      = "/metrics"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.FetchLimit == 0 {
		c.API.FetchLimit = DefaultFetchLimit
	}

	// Storage defaults
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultStorageDriver
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = DefaultSQLitePath
	}
	applyDBDefaults(&c.Storage.Postgres)

	// Signal defaults
	if c.Signals.MajorThreshold == 0 {
		c.Signals.MajorThreshold = DefaultMajorThreshold
	}
	if c.Signals.NotableThreshold == 0 {
		c.Signals.NotableThreshold = DefaultNotableThreshold
	}
	if c.Signals.MinVolume24h == nil {
		v := float64(DefaultMinVolume24h)
		c.Signals.MinVolume24h = &v
	}

	// History defaults
	if c.History.Dir == "" {
		c.History.Dir = DefaultHistoryDir
	}

	// Backtest defaults
	if c.Backtest.ForwardDays == 0 {
		c.Backtest.ForwardDays = DefaultForwardDays
	}
	if c.Backtest.Calendar == "" {
		c.Backtest.Calendar = DefaultCalendar
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
