package gamma

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/tzhao/polysignal/internal/model"
)

// Convert turns raw Gamma listings into market observations stamped with
// observedAt. Records missing an id or a parseable YES price are dropped;
// the skip count feeds the run report.
func Convert(raw []RawMarket, observedAt time.Time, logger *slog.Logger) (markets []model.Market, skipped int) {
	if logger == nil {
		logger = slog.Default()
	}

	markets = make([]model.Market, 0, len(raw))

	for _, r := range raw {
		m, err := convertOne(r, observedAt)
		if err != nil {
			skipped++
			logger.Warn("skipping unparseable market listing", "id", r.ID, "err", err)
			continue
		}
		markets = append(markets, m)
	}

	return markets, skipped
}

func convertOne(r RawMarket, observedAt time.Time) (model.Market, error) {
	if r.ID == "" {
		return model.Market{}, errMissingID
	}

	prices, err := r.ParseOutcomePrices()
	if err != nil {
		return model.Market{}, err
	}
	if len(prices) == 0 {
		return model.Market{}, errNoPrices
	}

	yes, err := strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return model.Market{}, err
	}
	if yes < 0 || yes > 1 {
		return model.Market{}, errPriceRange
	}

	return model.Market{
		ID:          r.ID,
		Title:       r.Question,
		Probability: yes,
		Volume:      r.Volume24hr,
		ObservedAt:  observedAt.UTC(),
	}, nil
}
