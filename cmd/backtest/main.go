package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tzhao/polysignal/internal/backtest"
	"github.com/tzhao/polysignal/internal/config"
	"github.com/tzhao/polysignal/internal/history"
	"github.com/tzhao/polysignal/internal/model"
	"github.com/tzhao/polysignal/internal/report"
	"github.com/tzhao/polysignal/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/signalgen.local.yaml", "path to config file")
	pricesPath := flag.String("prices", "", "path to price outcomes JSON (ticker -> [{time, price}])")
	historyDir := flag.String("history", "", "history directory override")
	runs := flag.Int("runs", 30, "number of most recent history runs to evaluate")
	days := flag.Int("days", 0, "forward window in trading days (0 = config value)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting backtest",
		"version", version.Version,
		"config", *configPath,
	)

	if *pricesPath == "" {
		logger.Error("missing required -prices flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dir := cfg.History.Dir
	if *historyDir != "" {
		dir = *historyDir
	}

	forward := cfg.Backtest.ForwardDays
	if *days > 0 {
		forward = *days
	}

	loaded, err := history.LoadLast(dir, *runs)
	if err != nil {
		logger.Error("failed to load history", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(loaded) == 0 {
		logger.Error("no history runs found", "dir", dir)
		os.Exit(1)
	}

	var signals []model.Signal
	for _, run := range loaded {
		signals = append(signals, run.Signals...)
	}
	logger.Info("history loaded", "runs", len(loaded), "signals", len(signals))

	outcomes, err := backtest.LoadOutcomes(*pricesPath)
	if err != nil {
		logger.Error("failed to load price outcomes", "error", err)
		os.Exit(1)
	}

	polarity := make(map[string]int, len(cfg.Watchlist))
	for _, cat := range cfg.Categories() {
		polarity[cat.Name] = cat.Polarity
	}

	rep, err := backtest.Evaluate(context.Background(), signals, outcomes, backtest.Config{
		ForwardDays: forward,
		Polarity:    polarity,
		Calendar:    backtest.NewCalendar(cfg.Backtest.Calendar),
	})
	if err != nil {
		logger.Error("backtest failed", "error", err)
		os.Exit(1)
	}

	logger.Info("backtest complete",
		"evaluated", rep.Evaluated,
		"excluded", rep.Excluded,
	)

	fmt.Print(report.RenderBacktest(rep))
}
