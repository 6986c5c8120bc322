package backtest

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tzhao/polysignal/internal/model"
)

func f(v float64) *float64 { return &v }

// Tuesday during a regular NYSE week.
var tue = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func prices(day0, day1 float64) []PricePoint {
	return []PricePoint{
		{Time: tue, Price: day0},
		{Time: tue.Add(26 * time.Hour), Price: day1}, // Wednesday close-ish
	}
}

func testConfig() Config {
	return Config{
		ForwardDays: 1,
		Polarity: map[string]int{
			"Fed Policy":     1,
			"Crypto/Bitcoin": 1,
		},
		Calendar: NewCalendar("xnys"),
	}
}

func TestEvaluate(t *testing.T) {
	signals := []model.Signal{
		{
			MarketID: "fed-1", Title: "Fed to cut rates in March?",
			Category: "Fed Policy", Tickers: []string{"QQQ", "TLT"},
			Delta: f(0.073), Class: model.ClassMajor, ObservedAt: tue,
		},
		{
			MarketID: "btc-1", Title: "Bitcoin ETF approval delayed?",
			Category: "Crypto/Bitcoin", Tickers: []string{"COIN"},
			Delta: f(-0.035), Class: model.ClassNotable, ObservedAt: tue,
		},
	}

	outcomes := Outcomes{
		"QQQ":  prices(100, 102), // +2%: matches bullish expectation → hit
		"TLT":  prices(50, 49),   // -2%: against bullish expectation → miss
		"COIN": prices(200, 190), // -5%: matches bearish expectation → hit
	}

	report, err := Evaluate(context.Background(), signals, outcomes, testConfig())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.Evaluated != 3 {
		t.Fatalf("Evaluated = %d, want 3", report.Evaluated)
	}
	if report.Excluded != 0 {
		t.Errorf("Excluded = %d, want 0", report.Excluded)
	}

	fed := report.ByCategory["Fed Policy"]
	if fed == nil || fed.Pairs != 2 {
		t.Fatalf("Fed Policy bucket = %+v, want 2 pairs", fed)
	}
	if fed.Hits != 1 || fed.HitRate != 0.5 {
		t.Errorf("Fed Policy hits = %d, hit rate = %v, want 1 and 0.5", fed.Hits, fed.HitRate)
	}
	if math.Abs(fed.MeanReturn-0.0) > 1e-9 { // (+0.02 + -0.02) / 2
		t.Errorf("Fed Policy mean return = %v, want 0", fed.MeanReturn)
	}

	crypto := report.ByCategory["Crypto/Bitcoin"]
	if crypto == nil || crypto.Pairs != 1 || crypto.Hits != 1 {
		t.Fatalf("Crypto bucket = %+v, want 1 pair, 1 hit", crypto)
	}

	major := report.ByClass[model.ClassMajor]
	if major == nil || major.Pairs != 2 {
		t.Errorf("major class bucket = %+v, want 2 pairs", major)
	}
	notable := report.ByClass[model.ClassNotable]
	if notable == nil || notable.Pairs != 1 {
		t.Errorf("notable class bucket = %+v, want 1 pair", notable)
	}
}

// Stable signals, signals without deltas, and signals without tickers never
// reach evaluation.
func TestEvaluate_FiltersUnscorableSignals(t *testing.T) {
	signals := []model.Signal{
		{MarketID: "a", Category: "Fed Policy", Tickers: []string{"QQQ"}, Delta: f(0.01), Class: model.ClassStable, ObservedAt: tue},
		{MarketID: "b", Category: "Fed Policy", Tickers: []string{"QQQ"}, Class: model.ClassStable, ObservedAt: tue},
		{MarketID: "c", Title: "uncategorized mover", Delta: f(0.10), Class: model.ClassMajor, ObservedAt: tue},
	}

	report, err := Evaluate(context.Background(), signals, Outcomes{"QQQ": prices(100, 101)}, testConfig())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if report.Evaluated != 0 || report.Excluded != 0 {
		t.Errorf("Evaluated = %d, Excluded = %d, want 0 and 0", report.Evaluated, report.Excluded)
	}
}

// Missing price data excludes pairs without failing the report.
func TestEvaluate_MissingDataExcludesPair(t *testing.T) {
	signals := []model.Signal{
		{
			MarketID: "fed-1", Category: "Fed Policy", Tickers: []string{"QQQ", "NODATA"},
			Delta: f(0.073), Class: model.ClassMajor, ObservedAt: tue,
		},
	}

	report, err := Evaluate(context.Background(), signals, Outcomes{"QQQ": prices(100, 103)}, testConfig())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.Evaluated != 1 {
		t.Errorf("Evaluated = %d, want 1", report.Evaluated)
	}
	if report.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", report.Excluded)
	}
}

// Categories with no configured polarity are excluded wholesale, not guessed.
func TestEvaluate_MissingPolarityExcludes(t *testing.T) {
	signals := []model.Signal{
		{
			MarketID: "oil-1", Category: "Energy", Tickers: []string{"XLE", "USO"},
			Delta: f(0.08), Class: model.ClassMajor, ObservedAt: tue,
		},
	}

	report, err := Evaluate(context.Background(), signals, Outcomes{"XLE": prices(80, 85)}, testConfig())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.Evaluated != 0 {
		t.Errorf("Evaluated = %d, want 0", report.Evaluated)
	}
	if report.Excluded != 2 {
		t.Errorf("Excluded = %d, want 2", report.Excluded)
	}
}

func TestWindowEnd_SkipsWeekend(t *testing.T) {
	cal := NewCalendar("xnys")

	// Friday 2024-03-08; the next trading day is Monday 2024-03-11.
	friday := time.Date(2024, 3, 8, 18, 0, 0, 0, time.UTC)
	end := cal.WindowEnd(friday, 1)

	if end.Weekday() != time.Monday {
		t.Errorf("WindowEnd(Friday, 1) = %v (%v), want Monday", end, end.Weekday())
	}
	if !end.After(friday) {
		t.Errorf("WindowEnd = %v, want after signal time %v", end, friday)
	}
}

func TestWindowEnd_MultiDay(t *testing.T) {
	cal := NewCalendar("xnys")

	// Tuesday + 3 trading days lands on Friday the same week.
	end := cal.WindowEnd(tue, 3)
	if end.Weekday() != time.Friday {
		t.Errorf("WindowEnd(Tuesday, 3) = %v (%v), want Friday", end, end.Weekday())
	}
}
