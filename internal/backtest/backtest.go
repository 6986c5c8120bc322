package backtest

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tzhao/polysignal/internal/model"
)

// PricePoint is one recorded price observation for a ticker.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Outcomes maps tickers to their recorded price series. Supplied externally;
// the backtest never fetches prices itself.
type Outcomes map[string][]PricePoint

// Config holds evaluation settings.
type Config struct {
	// ForwardDays is the evaluation window in trading days after a signal.
	ForwardDays int

	// Polarity maps category name to +1 (probability up is bullish for the
	// tickers) or -1 (bearish). Signals in categories missing here are
	// excluded; direction is domain knowledge, never guessed.
	Polarity map[string]int

	Calendar *TradingCalendar
}

// Pair is one evaluated (signal, ticker) combination.
type Pair struct {
	MarketID string               `json:"market_id"`
	Ticker   string               `json:"ticker"`
	Category string               `json:"category"`
	Class    model.MagnitudeClass `json:"class"`
	Delta    float64              `json:"delta"`
	Return   float64              `json:"return"` // Realized fractional return over the window
	Hit      bool                 `json:"hit"`    // Return sign matched the expected direction
}

// Bucket aggregates pairs per category or magnitude class.
type Bucket struct {
	Pairs      int     `json:"pairs"`
	Hits       int     `json:"hits"`
	HitRate    float64 `json:"hit_rate"`
	MeanReturn float64 `json:"mean_return"`
}

// Report is the read-only analytical artifact the backtest produces.
type Report struct {
	GeneratedAt time.Time                        `json:"generated_at"`
	ForwardDays int                              `json:"forward_days"`
	Evaluated   int                              `json:"evaluated"` // Scored pairs
	Excluded    int                              `json:"excluded"`  // Pairs lacking price or polarity data
	ByCategory  map[string]*Bucket               `json:"by_category"`
	ByClass     map[model.MagnitudeClass]*Bucket `json:"by_class"`
	Pairs       []Pair                           `json:"pairs"`
}

// Evaluate scores Major and Notable signals against recorded price outcomes.
// Categories are evaluated concurrently; aggregation is commutative so the
// merge order does not matter.
func Evaluate(ctx context.Context, signals []model.Signal, outcomes Outcomes, cfg Config) (*Report, error) {
	series := normalize(outcomes)

	byCategory := make(map[string][]model.Signal)
	for _, sig := range signals {
		if sig.Class == model.ClassStable || sig.Delta == nil || len(sig.Tickers) == 0 {
			continue
		}
		byCategory[sig.Category] = append(byCategory[sig.Category], sig)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	pairsByCategory := make([][]Pair, len(names))
	excludedByCategory := make([]int, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pairsByCategory[i], excludedByCategory[i] = evaluateCategory(name, byCategory[name], series, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		ForwardDays: cfg.ForwardDays,
		ByCategory:  make(map[string]*Bucket),
		ByClass:     make(map[model.MagnitudeClass]*Bucket),
	}

	for i := range names {
		report.Excluded += excludedByCategory[i]
		for _, pair := range pairsByCategory[i] {
			report.Pairs = append(report.Pairs, pair)
			report.Evaluated++
			bucketFor(report.ByCategory, pair.Category).add(pair)
			bucketFor(report.ByClass, pair.Class).add(pair)
		}
	}

	for _, b := range report.ByCategory {
		b.finalize()
	}
	for _, b := range report.ByClass {
		b.finalize()
	}

	return report, nil
}

func evaluateCategory(name string, signals []model.Signal, series Outcomes, cfg Config) (pairs []Pair, excluded int) {
	polarity, ok := cfg.Polarity[name]
	if !ok {
		// No configured direction for this category; every pair in it is an
		// exclusion, not a guess.
		for _, sig := range signals {
			excluded += len(sig.Tickers)
		}
		return nil, excluded
	}

	for _, sig := range signals {
		windowEnd := cfg.Calendar.WindowEnd(sig.ObservedAt, cfg.ForwardDays)

		for _, ticker := range sig.Tickers {
			points := series[ticker]

			entry, okEntry := priceAt(points, sig.ObservedAt)
			exit, okExit := priceAt(points, windowEnd)
			if !okEntry || !okExit || !entry.Time.Before(exit.Time) || entry.Price == 0 {
				excluded++
				continue
			}

			ret := (exit.Price - entry.Price) / entry.Price

			// Expected equity direction: probability delta sign times the
			// category polarity.
			expectUp := (*sig.Delta > 0) == (polarity > 0)

			pairs = append(pairs, Pair{
				MarketID: sig.MarketID,
				Ticker:   ticker,
				Category: name,
				Class:    sig.Class,
				Delta:    *sig.Delta,
				Return:   ret,
				Hit:      (ret > 0) == expectUp && ret != 0,
			})
		}
	}

	return pairs, excluded
}

// priceAt returns the first recorded price at or after t.
func priceAt(points []PricePoint, t time.Time) (PricePoint, bool) {
	i := sort.Search(len(points), func(i int) bool {
		return !points[i].Time.Before(t)
	})
	if i == len(points) {
		return PricePoint{}, false
	}
	return points[i], true
}

// normalize sorts each price series by time without mutating the caller's
// slices.
func normalize(outcomes Outcomes) Outcomes {
	sorted := make(Outcomes, len(outcomes))
	for ticker, points := range outcomes {
		cp := make([]PricePoint, len(points))
		copy(cp, points)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Time.Before(cp[j].Time) })
		sorted[ticker] = cp
	}
	return sorted
}

func bucketFor[K comparable](m map[K]*Bucket, key K) *Bucket {
	b, ok := m[key]
	if !ok {
		b = &Bucket{}
		m[key] = b
	}
	return b
}

func (b *Bucket) add(p Pair) {
	b.Pairs++
	if p.Hit {
		b.Hits++
	}
	// MeanReturn accumulates the sum until finalize.
	b.MeanReturn += p.Return
}

func (b *Bucket) finalize() {
	if b.Pairs == 0 {
		return
	}
	b.HitRate = float64(b.Hits) / float64(b.Pairs)
	b.MeanReturn /= float64(b.Pairs)
}
