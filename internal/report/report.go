package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tzhao/polysignal/internal/backtest"
	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/pipeline"
)

const topMovers = 5

// RenderDaily formats one signal run as the daily report.
func RenderDaily(generatedAt time.Time, signals []model.Signal, stats pipeline.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎰 Prediction Market Signals | %s\n\n", generatedAt.UTC().Format("2006-01-02"))

	major := topByDelta(signals, model.ClassMajor)
	notable := topByDelta(signals, model.ClassNotable)

	if len(major) > 0 {
		b.WriteString("🔴 Major changes (>5% probability move)\n")
		for _, s := range major {
			arrow := "📈"
			if *s.Delta < 0 {
				arrow = "📉"
			}
			fmt.Fprintf(&b, "%s %s\n", arrow, truncate(s.Title, 60))
			fmt.Fprintf(&b, "   probability: %.1f%% (%+.1f%%)\n", s.Current*100, *s.Delta*100)
			if len(s.Tickers) > 0 {
				fmt.Fprintf(&b, "   tickers: %s\n", strings.Join(cap5(s.Tickers), ", "))
			}
		}
		b.WriteString("\n")
	} else {
		b.WriteString("🔴 Major changes: none\n\n")
	}

	if len(notable) > 0 {
		b.WriteString("🟡 Notable changes (2-5% move)\n")
		for _, s := range notable {
			tickers := "n/a"
			if len(s.Tickers) > 0 {
				tickers = strings.Join(cap5(s.Tickers), ", ")
			}
			fmt.Fprintf(&b, "• %s\n", truncate(s.Title, 50))
			fmt.Fprintf(&b, "  %.1f%% (%+.1f%%) | tickers: %s\n", s.Current*100, *s.Delta*100, tickers)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "📊 tracked: %d | major: %d | notable: %d", stats.Tracked, stats.Major, stats.Notable)
	if stats.Skipped > 0 {
		fmt.Fprintf(&b, " | skipped records: %d", stats.Skipped)
	}
	if stats.StorageErrors > 0 {
		fmt.Fprintf(&b, " | storage errors: %d", stats.StorageErrors)
	}
	b.WriteString("\n")

	return b.String()
}

// RenderBacktest formats a backtest report.
func RenderBacktest(rep *backtest.Report) string {
	var b strings.Builder

	b.WriteString("📊 Signal Backtest Report\n\n")
	fmt.Fprintf(&b, "window: +%d trading day(s) | pairs evaluated: %d | excluded (missing data): %d\n\n",
		rep.ForwardDays, rep.Evaluated, rep.Excluded)

	if len(rep.ByClass) > 0 {
		b.WriteString("By magnitude class\n")
		for _, class := range []model.MagnitudeClass{model.ClassMajor, model.ClassNotable} {
			if bucket, ok := rep.ByClass[class]; ok {
				fmt.Fprintf(&b, "• %s: %.1f%% hit rate (%d pairs), mean return %+.2f%%\n",
					class, bucket.HitRate*100, bucket.Pairs, bucket.MeanReturn*100)
			}
		}
		b.WriteString("\n")
	}

	if len(rep.ByCategory) > 0 {
		b.WriteString("By category\n")
		names := make([]string, 0, len(rep.ByCategory))
		for name := range rep.ByCategory {
			names = append(names, name)
		}
		// Busiest categories first.
		sort.Slice(names, func(i, j int) bool {
			bi, bj := rep.ByCategory[names[i]], rep.ByCategory[names[j]]
			if bi.Pairs != bj.Pairs {
				return bi.Pairs > bj.Pairs
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			bucket := rep.ByCategory[name]
			fmt.Fprintf(&b, "• %s: %.1f%% hit rate (%d pairs), mean return %+.2f%%\n",
				name, bucket.HitRate*100, bucket.Pairs, bucket.MeanReturn*100)
		}
	}

	return b.String()
}

// topByDelta returns up to topMovers signals of the class, largest |delta|
// first, without reordering the caller's slice.
func topByDelta(signals []model.Signal, class model.MagnitudeClass) []model.Signal {
	var filtered []model.Signal
	for _, s := range signals {
		if s.Class == class && s.Delta != nil {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AbsDelta() > filtered[j].AbsDelta()
	})
	if len(filtered) > topMovers {
		filtered = filtered[:topMovers]
	}
	return filtered
}

// truncate shortens s to n runes. Titles are not ASCII-only, so cutting by
// byte index could split a multibyte rune and emit invalid UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func cap5(tickers []string) []string {
	if len(tickers) > 5 {
		return tickers[:5]
	}
	return tickers
}
