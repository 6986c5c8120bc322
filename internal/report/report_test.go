package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/tzhao/polysignal/internal/backtest"
	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/pipeline"
)

func f(v float64) *float64 { return &v }

func TestRenderDaily(t *testing.T) {
	day := time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)

	signals := []model.Signal{
		{
			MarketID: "fed-1", Title: "Fed to cut rates in March?",
			Category: "Fed Policy", Tickers: []string{"QQQ", "TLT", "XLF", "ARKK"},
			Current: 0.652, Delta: f(0.073), Class: model.ClassMajor, ObservedAt: day,
		},
		{
			MarketID: "btc-1", Title: "Bitcoin ETF approval delayed?",
			Category: "Crypto/Bitcoin", Tickers: []string{"COIN"},
			Current: 0.320, Delta: f(-0.035), Class: model.ClassNotable, ObservedAt: day,
		},
		{
			MarketID: "quiet-1", Title: "Quiet market",
			Current: 0.50, Delta: f(0.001), Class: model.ClassStable, ObservedAt: day,
		},
	}
	stats := pipeline.Stats{Tracked: 3, Major: 1, Notable: 1, Stable: 1, Skipped: 2}

	out := RenderDaily(day, signals, stats)

	for _, want := range []string{
		"2026-08-26",
		"Fed to cut rates in March?",
		"65.2% (+7.3%)",
		"QQQ, TLT, XLF, ARKK",
		"Bitcoin ETF approval delayed?",
		"32.0% (-3.5%)",
		"tracked: 3 | major: 1 | notable: 1",
		"skipped records: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "Quiet market") {
		t.Error("stable signals must not be listed as movers")
	}
}

func TestRenderDaily_NoMovers(t *testing.T) {
	out := RenderDaily(time.Now(), nil, pipeline.Stats{})
	if !strings.Contains(out, "Major changes: none") {
		t.Errorf("report missing empty-majors line\n%s", out)
	}
}

// Movers are listed largest |delta| first, input order untouched.
func TestRenderDaily_SortsMoversByMagnitude(t *testing.T) {
	day := time.Now().UTC()
	signals := []model.Signal{
		{MarketID: "a", Title: "small major", Current: 0.5, Delta: f(0.06), Class: model.ClassMajor, ObservedAt: day},
		{MarketID: "b", Title: "big major", Current: 0.5, Delta: f(-0.20), Class: model.ClassMajor, ObservedAt: day},
	}

	out := RenderDaily(day, signals, pipeline.Stats{Tracked: 2, Major: 2})

	if strings.Index(out, "big major") > strings.Index(out, "small major") {
		t.Errorf("movers not sorted by |delta|:\n%s", out)
	}
	if signals[0].MarketID != "a" {
		t.Error("renderer mutated the input slice order")
	}
}

// Long non-ASCII titles must be cut on a rune boundary; a byte-index slice
// would split a multibyte character and emit invalid UTF-8.
func TestTruncate_RuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 80)

	got := truncate(long, 60)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if want := strings.Repeat("é", 60) + "..."; got != want {
		t.Errorf("truncate = %q, want %q", got, want)
	}

	if got := truncate("short title", 60); got != "short title" {
		t.Errorf("truncate shortened a string within the limit: %q", got)
	}

	// Multibyte strings short in runes but long in bytes stay whole.
	wide := strings.Repeat("市", 50)
	if got := truncate(wide, 60); got != wide {
		t.Errorf("truncate cut a 50-rune title at limit 60: %q", got)
	}
}

func TestRenderBacktest(t *testing.T) {
	rep := &backtest.Report{
		ForwardDays: 1,
		Evaluated:   3,
		Excluded:    1,
		ByClass: map[model.MagnitudeClass]*backtest.Bucket{
			model.ClassMajor: {Pairs: 2, Hits: 1, HitRate: 0.5, MeanReturn: 0.012},
		},
		ByCategory: map[string]*backtest.Bucket{
			"Fed Policy": {Pairs: 2, Hits: 1, HitRate: 0.5, MeanReturn: 0.012},
		},
	}

	out := RenderBacktest(rep)

	for _, want := range []string{
		"+1 trading day",
		"pairs evaluated: 3",
		"excluded (missing data): 1",
		"major: 50.0% hit rate (2 pairs)",
		"Fed Policy: 50.0% hit rate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("backtest report missing %q\n%s", want, out)
		}
	}
}
