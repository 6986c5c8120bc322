package config

import (
	"time"

	"github.com/tzhao/polysignal/internal/model"
)

// Config is the root configuration for a signal generator instance.
type Config struct {
	Instance  InstanceConfig   `yaml:"instance"`
	API       APIConfig        `yaml:"api"`
	Storage   StorageConfig    `yaml:"storage"`
	Signals   SignalsConfig    `yaml:"signals"`
	Watchlist []CategoryConfig `yaml:"watchlist"`
	History   HistoryConfig    `yaml:"history"`
	Backtest  BacktestConfig   `yaml:"backtest"`
	Metrics   MetricsConfig    `yaml:"metrics"`
}

// InstanceConfig identifies this instance in logs and history artifacts.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds Gamma API settings for the market fetch.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	FetchLimit int           `yaml:"fetch_limit"` // Max markets per fetch
	ActiveOnly bool          `yaml:"active_only"`
}

// StorageConfig selects and configures the snapshot store backend.
type StorageConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver   string       `yaml:"driver"`
	Postgres DBConfig     `yaml:"postgres"`
	SQLite   SQLiteConfig `yaml:"sqlite"`
}

// DBConfig holds a PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SQLiteConfig holds the local file-backed store.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// SignalsConfig holds delta classification and output filtering settings.
type SignalsConfig struct {
	// MajorThreshold is the |delta| above which a change is Major.
	MajorThreshold float64 `yaml:"major_threshold"`

	// NotableThreshold is the |delta| at or above which a change is Notable.
	NotableThreshold float64 `yaml:"notable_threshold"`

	// MinVolume24h excludes low-volume markets from the output signal list.
	// They are still persisted so deltas stay continuous once volume recovers.
	// A pointer so an explicit 0 (filter disabled) survives defaulting.
	MinVolume24h *float64 `yaml:"min_volume_24h"`
}

// CategoryConfig defines one watchlist category. Order in the YAML list is
// the match order.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Tickers  []string `yaml:"tickers"`

	// Polarity: +1 if a probability increase is bullish for the tickers,
	// -1 if bearish. Required; the backtest cannot infer direction.
	Polarity int `yaml:"polarity"`
}

// HistoryConfig holds the daily signal artifact location.
type HistoryConfig struct {
	Dir string `yaml:"dir"`
}

// BacktestConfig holds signal evaluation settings.
type BacktestConfig struct {
	// ForwardDays is the evaluation window in trading days after a signal.
	ForwardDays int `yaml:"forward_days"`

	// Calendar is the trading calendar MIC code (ISO 10383), e.g. "xnys".
	Calendar string `yaml:"calendar"`
}

// MetricsConfig holds Prometheus metrics and health endpoint settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// Categories converts the watchlist into model categories, preserving order.
func (c *Config) Categories() []model.Category {
	cats := make([]model.Category, len(c.Watchlist))
	for i, w := range c.Watchlist {
		cats[i] = model.Category{
			Name:     w.Name,
			Keywords: w.Keywords,
			Tickers:  w.Tickers,
			Polarity: w.Polarity,
		}
	}
	return cats
}
