package strategy

import (
	"testing"

	"github.com/yourorg/trading-dashboard/internal/model"
)

func newTestRSI() *RSIThreshold {
	return NewRSIThreshold(map[string]float64{"period": 2, "oversold": 30, "overbought": 70})
}

func TestRSIThresholdWarmup(t *testing.T) {
	s := newTestRSI()
	bars := barsFromCloses(10, 8, 6, 7)

	for i := 0; i < 3; i++ {
		sig := s.Analyze(bars, i)
		if sig.Action != model.ActionHold {
			t.Errorf("index %d: action = %q, want hold during warm-up", i, sig.Action)
		}
	}
}

func TestRSIThresholdBuyOnCrossUp(t *testing.T) {
	s := newTestRSI()

	// RSI is 0 at index 2 (two straight losses) and rises to ~33.3 at
	// index 3, crossing up through the oversold level.
	bars := barsFromCloses(10, 8, 6, 7)

	sig := s.Analyze(bars, 3)
	if sig.Action != model.ActionBuy {
		t.Fatalf("action = %q, want buy on oversold cross up", sig.Action)
	}
	// Confidence is (oversold - previousRSI) / oversold = (30-0)/30.
	if sig.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", sig.Confidence)
	}
}

func TestRSIThresholdBuyWhileOversold(t *testing.T) {
	s := newTestRSI()

	// RSI stays at 0 through index 3: no crossover, but still oversold.
	bars := barsFromCloses(10, 8, 6, 5)

	sig := s.Analyze(bars, 3)
	if sig.Action != model.ActionBuy {
		t.Fatalf("action = %q, want buy while below oversold level", sig.Action)
	}
	if sig.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", sig.Confidence)
	}
}

func TestRSIThresholdSellOnCrossDown(t *testing.T) {
	s := newTestRSI()

	// RSI is 100 at index 2 (two straight gains) and falls to ~66.7 at
	// index 3, crossing down through the overbought level.
	bars := barsFromCloses(10, 12, 14, 13)

	sig := s.Analyze(bars, 3)
	if sig.Action != model.ActionSell {
		t.Fatalf("action = %q, want sell on overbought cross down", sig.Action)
	}
	// Confidence is (previousRSI - overbought) / (100 - overbought).
	if sig.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", sig.Confidence)
	}
}

func TestRSIThresholdSellWhileOverbought(t *testing.T) {
	s := newTestRSI()

	// RSI stays at 100 through index 3: no crossover, but still overbought.
	bars := barsFromCloses(10, 12, 14, 16)

	sig := s.Analyze(bars, 3)
	if sig.Action != model.ActionSell {
		t.Fatalf("action = %q, want sell while above overbought level", sig.Action)
	}
}

func TestRSIThresholdNeutralHold(t *testing.T) {
	s := newTestRSI()

	// Alternating gains and losses keep RSI at 50.
	bars := barsFromCloses(10, 11, 10, 11)

	sig := s.Analyze(bars, 3)
	if sig.Action != model.ActionHold {
		t.Fatalf("action = %q, want hold in neutral zone", sig.Action)
	}
	if sig.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 on hold", sig.Confidence)
	}
}

func TestRSIThresholdDefaults(t *testing.T) {
	s := NewRSIThreshold(nil)
	params := s.Parameters()
	if params["period"] != 14 || params["oversold"] != 30 || params["overbought"] != 70 {
		t.Errorf("default parameters = %v, want period=14 oversold=30 overbought=70", params)
	}
}
