package gamma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("path = %s, want /markets", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "300" {
			t.Errorf("limit = %s, want 300", got)
		}
		if got := r.URL.Query().Get("active"); got != "true" {
			t.Errorf("active = %s, want true", got)
		}
		if got := r.URL.Query().Get("closed"); got != "false" {
			t.Errorf("closed = %s, want false", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":            "512329",
				"question":      "Fed to cut rates in March?",
				"volume24hr":    52000.5,
				"outcomePrices": `["0.652", "0.348"]`,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTimeout(5*time.Second))

	markets, err := client.FetchMarkets(context.Background(), 300, true)
	if err != nil {
		t.Fatalf("FetchMarkets failed: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("len(markets) = %d, want 1", len(markets))
	}

	m := markets[0]
	if m.ID != "512329" {
		t.Errorf("ID = %q, want 512329", m.ID)
	}
	if m.Question != "Fed to cut rates in March?" {
		t.Errorf("Question = %q", m.Question)
	}

	prices, err := m.ParseOutcomePrices()
	if err != nil {
		t.Fatalf("ParseOutcomePrices failed: %v", err)
	}
	if len(prices) != 2 || prices[0] != "0.652" {
		t.Errorf("prices = %v, want [0.652 0.348]", prices)
	}
}

func TestFetchMarkets_RetriesOn503(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetries(3, time.Millisecond))

	if _, err := client.FetchMarkets(context.Background(), 10, false); err != nil {
		t.Fatalf("FetchMarkets failed after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestFetchMarkets_NoRetryOn404(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetries(3, time.Millisecond))

	_, err := client.FetchMarkets(context.Background(), 10, false)
	if err == nil {
		t.Fatal("FetchMarkets error = nil, want APIError")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (404 is not retryable)", got)
	}
}
