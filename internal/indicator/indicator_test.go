package indicator

import (
	"math"
	"testing"

	"github.com/yourorg/trading-dashboard/internal/model"
)

func barsFromCloses(closes ...float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5)

	tests := []struct {
		name     string
		period   int
		endIndex int
		want     float64
	}{
		{"not ready", 3, 1, 0},
		{"first valid index", 3, 2, 2},
		{"mid series", 3, 3, 3},
		{"end of series", 3, 4, 4},
		{"full window", 5, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(bars, tt.period, tt.endIndex)
			if !almostEqual(got, tt.want) {
				t.Errorf("SMA(period=%d, endIndex=%d) = %v, want %v", tt.period, tt.endIndex, got, tt.want)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5)

	// Seed is the SMA at index 2 (= 2), multiplier is 2/(3+1) = 0.5:
	// index 3: (4-2)*0.5+2 = 3, index 4: (5-3)*0.5+3 = 4.
	tests := []struct {
		name     string
		endIndex int
		want     float64
	}{
		{"not ready", 1, 0},
		{"seed index equals SMA", 2, 2},
		{"one step", 3, 3},
		{"two steps", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EMA(bars, 3, tt.endIndex)
			if !almostEqual(got, tt.want) {
				t.Errorf("EMA(period=3, endIndex=%d) = %v, want %v", tt.endIndex, got, tt.want)
			}
		})
	}
}

func TestRSI(t *testing.T) {
	t.Run("neutral during warm-up", func(t *testing.T) {
		bars := barsFromCloses(10, 11, 12)
		if got := RSI(bars, 3, 2); got != 50 {
			t.Errorf("RSI during warm-up = %v, want 50", got)
		}
	})

	t.Run("mixed gains and losses", func(t *testing.T) {
		// Deltas over the window: +1, +1, -1 -> avgGain=2/3, avgLoss=1/3,
		// RS=2, RSI = 100 - 100/3.
		bars := barsFromCloses(10, 11, 12, 11)
		want := 100 - 100.0/3.0
		if got := RSI(bars, 3, 3); !almostEqual(got, want) {
			t.Errorf("RSI = %v, want %v", got, want)
		}
	})

	t.Run("all gains returns 100", func(t *testing.T) {
		bars := barsFromCloses(1, 2, 3, 4)
		if got := RSI(bars, 3, 3); got != 100 {
			t.Errorf("RSI with no losses = %v, want 100", got)
		}
	})

	t.Run("all losses returns 0", func(t *testing.T) {
		bars := barsFromCloses(4, 3, 2, 1)
		if got := RSI(bars, 3, 3); !almostEqual(got, 0) {
			t.Errorf("RSI with no gains = %v, want 0", got)
		}
	})
}

func TestMACD(t *testing.T) {
	t.Run("zero during warm-up", func(t *testing.T) {
		bars := barsFromCloses(1, 2, 3)
		macd, signal, histogram := MACD(bars, 2, 5, 3, 2)
		if macd != 0 || signal != 0 || histogram != 0 {
			t.Errorf("MACD during warm-up = (%v, %v, %v), want zeros", macd, signal, histogram)
		}
	})

	t.Run("flat series has zero macd line", func(t *testing.T) {
		bars := barsFromCloses(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
		macd, signal, histogram := MACD(bars, 2, 4, 3, 9)
		if !almostEqual(macd, 0) || !almostEqual(signal, 0) || !almostEqual(histogram, 0) {
			t.Errorf("MACD on flat series = (%v, %v, %v), want zeros", macd, signal, histogram)
		}
	})

	t.Run("rising series has positive macd line", func(t *testing.T) {
		bars := barsFromCloses(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		macd, _, _ := MACD(bars, 2, 4, 3, 9)
		if macd <= 0 {
			t.Errorf("MACD on rising series = %v, want > 0", macd)
		}
	})

	t.Run("histogram is macd minus signal", func(t *testing.T) {
		bars := barsFromCloses(1, 3, 2, 5, 4, 7, 6, 9, 8, 11)
		macd, signal, histogram := MACD(bars, 2, 4, 3, 9)
		if !almostEqual(histogram, macd-signal) {
			t.Errorf("histogram = %v, want macd-signal = %v", histogram, macd-signal)
		}
	})
}

func TestHighestHighLowestLow(t *testing.T) {
	bars := []model.Bar{
		{High: 10, Low: 5},
		{High: 12, Low: 6},
		{High: 9, Low: 4},
		{High: 11, Low: 7},
	}

	t.Run("clamped at series start", func(t *testing.T) {
		if got := HighestHigh(bars, 3, 0); got != 10 {
			t.Errorf("HighestHigh at index 0 = %v, want 10", got)
		}
		if got := LowestLow(bars, 3, 0); got != 5 {
			t.Errorf("LowestLow at index 0 = %v, want 5", got)
		}
	})

	t.Run("trailing window", func(t *testing.T) {
		if got := HighestHigh(bars, 3, 3); got != 12 {
			t.Errorf("HighestHigh over last 3 = %v, want 12", got)
		}
		if got := LowestLow(bars, 3, 3); got != 4 {
			t.Errorf("LowestLow over last 3 = %v, want 4", got)
		}
	})

	t.Run("window of one", func(t *testing.T) {
		if got := HighestHigh(bars, 1, 2); got != 9 {
			t.Errorf("HighestHigh window 1 = %v, want 9", got)
		}
	})
}
