package backtest

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/strategy"
)

// scriptedStrategy returns pre-programmed signals by bar index and holds
// everywhere else.
type scriptedStrategy struct {
	signals map[int]model.Signal
}

func (s *scriptedStrategy) Name() string                   { return "scripted" }
func (s *scriptedStrategy) Description() string            { return "scripted test strategy" }
func (s *scriptedStrategy) Parameters() map[string]float64 { return map[string]float64{} }

func (s *scriptedStrategy) Analyze(bars []model.Bar, index int) model.Signal {
	if sig, ok := s.signals[index]; ok {
		sig.Timestamp = bars[index].Timestamp
		return sig
	}
	return model.Signal{
		Timestamp: bars[index].Timestamp,
		Action:    model.ActionHold,
		Price:     bars[index].Close,
	}
}

func testBars(closes ...float64) []model.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c, Low: c, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func testConfig(capital, commission float64) Config {
	return Config{
		Symbol:         "AAPL",
		StrategyID:     "scripted",
		StartDate:      "2024-01-02",
		EndDate:        "2024-01-31",
		InitialCapital: capital,
		Commission:     commission,
	}
}

func buySellScript() strategy.Strategy {
	return &scriptedStrategy{signals: map[int]model.Signal{
		0: {Action: model.ActionBuy, Confidence: 1.0, Reason: "scripted buy"},
		2: {Action: model.ActionSell, Confidence: 1.0, Reason: "scripted sell"},
	}}
}

func TestRunEmptyBarsIsFatal(t *testing.T) {
	engine := New(testConfig(1000, 0), buySellScript())
	_, err := engine.Run(nil)
	if !errors.Is(err, ErrNoBars) {
		t.Fatalf("err = %v, want ErrNoBars", err)
	}
}

func TestRunRejectsNonPositiveCapital(t *testing.T) {
	engine := New(testConfig(0, 0), buySellScript())
	_, err := engine.Run(testBars(100))
	if !errors.Is(err, ErrInvalidCapital) {
		t.Fatalf("err = %v, want ErrInvalidCapital", err)
	}
}

func TestRunBuyThenSellScenario(t *testing.T) {
	engine := New(testConfig(1000, 0), buySellScript())

	result, err := engine.Run(testBars(100, 100, 120))
	if err != nil {
		t.Fatal(err)
	}

	if len(result.EquityCurve) != 3 {
		t.Errorf("equity curve has %d points, want 3", len(result.EquityCurve))
	}
	if result.TotalTrades != 2 {
		t.Fatalf("total trades = %d, want 2", result.TotalTrades)
	}

	buy, sell := result.Trades[0], result.Trades[1]
	if buy.Action != model.ActionBuy || buy.Quantity != 10 || buy.Price != 100 {
		t.Errorf("buy trade = %+v, want 10 shares at 100", buy)
	}
	if sell.Action != model.ActionSell || sell.Quantity != 10 || sell.Price != 120 {
		t.Errorf("sell trade = %+v, want 10 shares at 120", sell)
	}

	if result.FinalCapital != 1200 {
		t.Errorf("final capital = %v, want 1200", result.FinalCapital)
	}
	if result.TotalReturn != 200 {
		t.Errorf("total return = %v, want 200", result.TotalReturn)
	}
	if result.TotalReturnPct != 20 {
		t.Errorf("total return pct = %v, want 20", result.TotalReturnPct)
	}
	if result.WinningTrades != 1 || result.LosingTrades != 0 {
		t.Errorf("winning/losing = %d/%d, want 1/0", result.WinningTrades, result.LosingTrades)
	}
	if result.WinRate != 100 {
		t.Errorf("win rate = %v, want 100", result.WinRate)
	}
	if result.AvgWin != 200 || result.AvgLoss != 0 {
		t.Errorf("avg win/loss = %v/%v, want 200/0", result.AvgWin, result.AvgLoss)
	}
	if result.ProfitFactor != 200 {
		t.Errorf("profit factor = %v, want 200 (gross profit, no losses)", result.ProfitFactor)
	}
	if result.MaxDrawdownPct != result.MaxDrawdown*100 {
		t.Errorf("max drawdown pct = %v, want %v", result.MaxDrawdownPct, result.MaxDrawdown*100)
	}
}

func TestRunCommissionAccounting(t *testing.T) {
	engine := New(testConfig(1000, 10), buySellScript())

	result, err := engine.Run(testBars(100, 100, 120))
	if err != nil {
		t.Fatal(err)
	}

	// floor((1000-10)/100) = 9 shares; cost 910, proceeds 9*120-10 = 1070.
	buy, sell := result.Trades[0], result.Trades[1]
	if buy.Quantity != 9 {
		t.Errorf("buy quantity = %d, want 9", buy.Quantity)
	}
	if buy.Value != 910 {
		t.Errorf("buy value = %v, want 910", buy.Value)
	}
	if sell.Value != 1070 {
		t.Errorf("sell value = %v, want 1070", sell.Value)
	}
	if result.FinalCapital != 1160 {
		t.Errorf("final capital = %v, want 1160", result.FinalCapital)
	}
	if result.WinningTrades != 1 {
		t.Errorf("winning trades = %d, want 1 (1070 > 910)", result.WinningTrades)
	}
}

func TestRunInsufficientCapitalNeverTrades(t *testing.T) {
	engine := New(testConfig(50, 0), buySellScript())

	result, err := engine.Run(testBars(100, 100, 120))
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalTrades != 0 {
		t.Errorf("total trades = %d, want 0 with capital below share price", result.TotalTrades)
	}
	if result.FinalCapital != 50 {
		t.Errorf("final capital = %v, want unchanged 50", result.FinalCapital)
	}
	if len(result.EquityCurve) != 3 {
		t.Errorf("equity curve has %d points, want 3", len(result.EquityCurve))
	}
}

func TestRunForcedLiquidationAtEnd(t *testing.T) {
	buyOnly := &scriptedStrategy{signals: map[int]model.Signal{
		0: {Action: model.ActionBuy, Confidence: 1.0, Reason: "scripted buy"},
	}}
	engine := New(testConfig(1000, 0), buyOnly)

	result, err := engine.Run(testBars(100, 110, 120))
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalTrades != 2 {
		t.Fatalf("total trades = %d, want 2 (implicit end-of-run sell)", result.TotalTrades)
	}
	last := result.Trades[1]
	if last.Action != model.ActionSell {
		t.Errorf("last trade action = %q, want sell", last.Action)
	}
	if last.Reason != "End of backtest" {
		t.Errorf("last trade reason = %q, want %q", last.Reason, "End of backtest")
	}
	// Final capital must equal cash after liquidation; no open position
	// remains in the report.
	if result.FinalCapital != 1200 {
		t.Errorf("final capital = %v, want 1200", result.FinalCapital)
	}
}

func TestRunConfidenceGate(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
	}{
		{"at threshold", 0.5},
		{"below threshold", 0.2},
		{"zero", 0},
		{"NaN never trades", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strat := &scriptedStrategy{signals: map[int]model.Signal{
				0: {Action: model.ActionBuy, Confidence: tt.confidence},
			}}
			engine := New(testConfig(1000, 0), strat)

			result, err := engine.Run(testBars(100, 100, 100))
			if err != nil {
				t.Fatal(err)
			}
			if result.TotalTrades != 0 {
				t.Errorf("total trades = %d, want 0 for confidence %v", result.TotalTrades, tt.confidence)
			}
		})
	}
}

func TestRunSellWithoutPositionIsNoop(t *testing.T) {
	sellFirst := &scriptedStrategy{signals: map[int]model.Signal{
		0: {Action: model.ActionSell, Confidence: 1.0},
	}}
	engine := New(testConfig(1000, 0), sellFirst)

	result, err := engine.Run(testBars(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalTrades != 0 {
		t.Errorf("total trades = %d, want 0 for sell with no open position", result.TotalTrades)
	}
}

func TestRunNoPyramiding(t *testing.T) {
	doubleBuy := &scriptedStrategy{signals: map[int]model.Signal{
		0: {Action: model.ActionBuy, Confidence: 1.0},
		1: {Action: model.ActionBuy, Confidence: 1.0},
	}}
	engine := New(testConfig(1000, 0), doubleBuy)

	result, err := engine.Run(testBars(100, 50, 100))
	if err != nil {
		t.Fatal(err)
	}

	// The second buy arrives with a position already open and must be
	// ignored; only the entry and the forced close-out remain.
	if result.TotalTrades != 2 {
		t.Errorf("total trades = %d, want 2", result.TotalTrades)
	}
}

func TestRunWarmupOnlyStrategyNeverTrades(t *testing.T) {
	strat := strategy.NewSMACrossover(nil) // long_period 30 default
	engine := New(testConfig(10000, 0), strat)

	result, err := engine.Run(testBars(100))
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalTrades != 0 {
		t.Errorf("total trades = %d, want 0 on single bar", result.TotalTrades)
	}
	if result.FinalCapital != 10000 {
		t.Errorf("final capital = %v, want initial capital", result.FinalCapital)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	bars := testBars(100, 105, 95, 110, 120, 90, 130)

	run := func() *model.BacktestResult {
		engine := New(testConfig(1000, 1), &scriptedStrategy{signals: map[int]model.Signal{
			1: {Action: model.ActionBuy, Confidence: 0.9},
			4: {Action: model.ActionSell, Confidence: 0.8},
			5: {Action: model.ActionBuy, Confidence: 0.7},
		}})
		result, err := engine.Run(bars)
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs with fresh instances produced different results")
	}
}

func TestRunEquityCurveInvariants(t *testing.T) {
	bars := testBars(100, 120, 80, 90, 140, 70)
	engine := New(testConfig(1000, 0), buySellScript())

	result, err := engine.Run(bars)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.EquityCurve) != len(bars) {
		t.Fatalf("equity curve has %d points, want %d", len(result.EquityCurve), len(bars))
	}

	for i, p := range result.EquityCurve {
		if p.Drawdown < 0 {
			t.Errorf("point %d: drawdown = %v, want >= 0", i, p.Drawdown)
		}
		if result.MaxDrawdown < p.Drawdown {
			t.Errorf("point %d: max drawdown %v < per-bar drawdown %v", i, result.MaxDrawdown, p.Drawdown)
		}
	}

	// Max drawdown equals the maximum over the whole curve, not just a bound.
	observed := 0.0
	for _, p := range result.EquityCurve {
		if p.Drawdown > observed {
			observed = p.Drawdown
		}
	}
	if result.MaxDrawdown != observed {
		t.Errorf("max drawdown = %v, want %v", result.MaxDrawdown, observed)
	}
}
