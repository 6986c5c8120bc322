package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// An invalid or empty watchlist is fatal: a run with no categories would
// silently leave every market uncategorized.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	switch c.Storage.Driver {
	case "postgres":
		if err := c.Storage.Postgres.validate("storage.postgres"); err != nil {
			return err
		}
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required")
		}
	default:
		return fmt.Errorf("storage.driver must be postgres or sqlite, got %q", c.Storage.Driver)
	}

	if c.Signals.MajorThreshold <= 0 || c.Signals.MajorThreshold > 1 {
		return fmt.Errorf("signals.major_threshold must be in (0, 1], got %v", c.Signals.MajorThreshold)
	}
	if c.Signals.NotableThreshold <= 0 || c.Signals.NotableThreshold > 1 {
		return fmt.Errorf("signals.notable_threshold must be in (0, 1], got %v", c.Signals.NotableThreshold)
	}
	if c.Signals.NotableThreshold > c.Signals.MajorThreshold {
		return fmt.Errorf("signals.notable_threshold (%v) cannot exceed major_threshold (%v)",
			c.Signals.NotableThreshold, c.Signals.MajorThreshold)
	}
	if c.Signals.MinVolume24h != nil && *c.Signals.MinVolume24h < 0 {
		return fmt.Errorf("signals.min_volume_24h must be >= 0, got %v", *c.Signals.MinVolume24h)
	}

	if len(c.Watchlist) == 0 {
		return errors.New("watchlist must define at least one category")
	}
	for i, cat := range c.Watchlist {
		if cat.Name == "" {
			return fmt.Errorf("watchlist[%d].name is required", i)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("watchlist[%d] (%s): keywords are required", i, cat.Name)
		}
		if cat.Polarity != 1 && cat.Polarity != -1 {
			return fmt.Errorf("watchlist[%d] (%s): polarity must be 1 or -1, got %d", i, cat.Name, cat.Polarity)
		}
	}

	if c.Backtest.ForwardDays < 1 {
		return fmt.Errorf("backtest.forward_days must be >= 1, got %d", c.Backtest.ForwardDays)
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
