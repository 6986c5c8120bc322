package backtest

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadOutcomes reads a recorded price-outcome file: a JSON object mapping
// ticker to a list of {time, price} points. Price data comes from an
// external source (broker export, vendor download); the backtest never
// fetches it.
func LoadOutcomes(path string) (Outcomes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outcomes file: %w", err)
	}

	var outcomes Outcomes
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return nil, fmt.Errorf("parse outcomes file: %w", err)
	}

	return outcomes, nil
}
