package model

import "time"

// MagnitudeClass buckets a probability change by absolute size.
type MagnitudeClass string

const (
	// ClassMajor marks changes with |delta| above the major threshold (default 0.05).
	ClassMajor MagnitudeClass = "major"

	// ClassNotable marks changes with |delta| in [notable, major] (defaults [0.02, 0.05]).
	ClassNotable MagnitudeClass = "notable"

	// ClassStable marks changes below the notable threshold, and all
	// first-ever observations (no prior to measure against).
	ClassStable MagnitudeClass = "stable"
)

// Market is one observation of a prediction market. Immutable once observed;
// the snapshot store persists these rows keyed by (ID, ObservedAt).
type Market struct {
	ID          string    `json:"id"`          // Stable identifier from the source API
	Title       string    `json:"title"`       // Market question text
	Probability float64   `json:"probability"` // YES probability, fraction in [0,1]
	Volume      float64   `json:"volume"`      // 24h volume in USD
	ObservedAt  time.Time `json:"observed_at"` // Observation time (UTC)
}

// Category groups markets by topic and names the equity tickers the topic
// moves. Categories come from configuration and are matched in load order.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"` // Case-insensitive substrings matched against titles
	Tickers  []string `json:"tickers"`  // Ordered; first entries are the most exposed names

	// Polarity maps probability direction to equity direction for backtest
	// scoring: +1 means a probability increase is bullish for the tickers,
	// -1 means it is bearish. Domain knowledge, supplied in config.
	Polarity int `json:"polarity"`
}

// Signal is the derived, reportable unit for one market observation: its
// latest delta, magnitude class, and ticker impact.
type Signal struct {
	MarketID string `json:"market_id"`
	Title    string `json:"title"`

	// Category is the resolved category name, empty when no keyword matched.
	// Uncategorized signals always carry an empty ticker list.
	Category string   `json:"category,omitempty"`
	Tickers  []string `json:"tickers,omitempty"`

	// Prior and Delta are nil on a market's first-ever observation.
	Prior   *float64 `json:"prior_probability,omitempty"`
	Current float64  `json:"current_probability"`
	Delta   *float64 `json:"delta,omitempty"`

	Class      MagnitudeClass `json:"magnitude_class"`
	Volume     float64        `json:"volume"`
	ObservedAt time.Time      `json:"observed_at"`
}

// AbsDelta returns |Delta|, or 0 when no prior exists.
func (s Signal) AbsDelta() float64 {
	if s.Delta == nil {
		return 0
	}
	if *s.Delta < 0 {
		return -*s.Delta
	}
	return *s.Delta
}
