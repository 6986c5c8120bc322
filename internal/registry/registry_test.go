package registry

import (
	"testing"

	"github.com/tzhao/polysignal/internal/model"
)

func testCategories() []model.Category {
	return []model.Category{
		{
			Name:     "Fed Policy",
			Keywords: []string{"fed", "fomc", "rate cut"},
			Tickers:  []string{"QQQ", "TLT", "XLF", "ARKK"},
			Polarity: 1,
		},
		{
			Name:     "Crypto/Bitcoin",
			Keywords: []string{"bitcoin", "btc", "crypto etf"},
			Tickers:  []string{"COIN", "MSTR", "IBIT"},
			Polarity: 1,
		},
		{
			Name:     "Elections",
			Keywords: []string{"election", "president"},
			Tickers:  []string{"DJT"},
			Polarity: 1,
		},
	}
}

func TestResolve(t *testing.T) {
	r, err := New(testCategories())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name  string
		title string
		want  string // Category name, "" for no match
	}{
		{"keyword match", "Fed to cut rates in March?", "Fed Policy"},
		{"case insensitive", "FOMC decision surprises markets", "Fed Policy"},
		{"second category", "Bitcoin ETF approval delayed?", "Crypto/Bitcoin"},
		{"mixed case keyword", "Will the PRESIDENT sign the bill?", "Elections"},
		{"no match", "Champions League winner 2027?", ""},
		{"empty title", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := r.Resolve(tt.title)
			if tt.want == "" {
				if cat != nil {
					t.Fatalf("Resolve(%q) = %v, want nil", tt.title, cat.Name)
				}
				return
			}
			if cat == nil {
				t.Fatalf("Resolve(%q) = nil, want %q", tt.title, tt.want)
			}
			if cat.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.title, cat.Name, tt.want)
			}
		})
	}
}

// A title matching multiple categories resolves to the first in configured
// order, every time.
func TestResolve_FirstMatchWins(t *testing.T) {
	r, err := New(testCategories())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// "fed" (category 1) and "bitcoin" (category 2) both match.
	title := "Will the Fed comment on Bitcoin reserves?"

	for i := 0; i < 100; i++ {
		cat := r.Resolve(title)
		if cat == nil || cat.Name != "Fed Policy" {
			t.Fatalf("iteration %d: Resolve = %v, want Fed Policy", i, cat)
		}
	}
}

func TestResolve_ReturnsTickersInOrder(t *testing.T) {
	r, err := New(testCategories())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cat := r.Resolve("Fed to cut rates in March?")
	if cat == nil {
		t.Fatal("Resolve returned nil")
	}

	want := []string{"QQQ", "TLT", "XLF", "ARKK"}
	if len(cat.Tickers) != len(want) {
		t.Fatalf("Tickers = %v, want %v", cat.Tickers, want)
	}
	for i, ticker := range want {
		if cat.Tickers[i] != ticker {
			t.Errorf("Tickers[%d] = %q, want %q", i, cat.Tickers[i], ticker)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		categories []model.Category
	}{
		{"empty registry", nil},
		{"nameless category", []model.Category{{Keywords: []string{"x"}}}},
		{"duplicate names", []model.Category{
			{Name: "A", Keywords: []string{"x"}},
			{Name: "A", Keywords: []string{"y"}},
		}},
		{"no keywords", []model.Category{{Name: "A"}}},
		{"blank keyword", []model.Category{{Name: "A", Keywords: []string{"  "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.categories); err == nil {
				t.Error("New() error = nil, want validation error")
			}
		})
	}
}
