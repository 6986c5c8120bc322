package gamma

import "encoding/json"

// RawMarket is a market listing as returned by the Gamma API.
type RawMarket struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Slug       string  `json:"slug"`
	Active     bool    `json:"active"`
	Closed     bool    `json:"closed"`
	Volume24hr float64 `json:"volume24hr"`

	// OutcomePrices is a JSON array encoded as a string, e.g. "[\"0.652\", \"0.348\"]".
	// The first element is the YES price.
	OutcomePrices string `json:"outcomePrices"`
}

// ParseOutcomePrices parses the OutcomePrices JSON string into a slice of
// price strings.
func (m *RawMarket) ParseOutcomePrices() ([]string, error) {
	if m.OutcomePrices == "" {
		return nil, nil
	}
	var prices []string
	if err := json.Unmarshal([]byte(m.OutcomePrices), &prices); err != nil {
		return nil, err
	}
	return prices, nil
}
