package backtest

import (
	"math"
	"testing"

	"github.com/yourorg/trading-dashboard/internal/model"
)

func TestSharpeRatioZeroVariance(t *testing.T) {
	curve := []model.EquityPoint{
		{Equity: 1000}, {Equity: 1000}, {Equity: 1000},
	}
	if got := sharpeRatio(curve); got != 0 {
		t.Errorf("sharpe on flat equity = %v, want 0", got)
	}
}

func TestSharpeRatioSinglePoint(t *testing.T) {
	if got := sharpeRatio([]model.EquityPoint{{Equity: 1000}}); got != 0 {
		t.Errorf("sharpe with one point = %v, want 0", got)
	}
	if got := sharpeRatio(nil); got != 0 {
		t.Errorf("sharpe with empty curve = %v, want 0", got)
	}
}

func TestSharpeRatioHandComputed(t *testing.T) {
	// Returns are +10% and -5%: mean = 0.025, stddev = 0.075.
	curve := []model.EquityPoint{
		{Equity: 1000}, {Equity: 1100}, {Equity: 1045},
	}
	want := 0.025 / 0.075 * math.Sqrt(252)
	if got := sharpeRatio(curve); math.Abs(got-want) > 1e-9 {
		t.Errorf("sharpe = %v, want %v", got, want)
	}
}

func TestSortinoRatioHandComputed(t *testing.T) {
	// Returns are -10%, -20% and +10%: mean = -1/15, downside deviation is
	// the population stddev of {-0.1, -0.2} = 0.05.
	curve := []model.EquityPoint{
		{Equity: 1000}, {Equity: 900}, {Equity: 720}, {Equity: 792},
	}
	want := (-1.0 / 15.0) / 0.05 * math.Sqrt(252)
	if got := sortinoRatio(curve); math.Abs(got-want) > 1e-9 {
		t.Errorf("sortino = %v, want %v", got, want)
	}
}

func TestSortinoRatioNoDownside(t *testing.T) {
	curve := []model.EquityPoint{
		{Equity: 1000}, {Equity: 1100}, {Equity: 1210},
	}
	if got := sortinoRatio(curve); got != 0 {
		t.Errorf("sortino with no losing bars = %v, want 0", got)
	}
	if got := sortinoRatio(nil); got != 0 {
		t.Errorf("sortino with empty curve = %v, want 0", got)
	}
}

func TestTradeStats(t *testing.T) {
	avgWin, avgLoss, profitFactor := tradeStats([]float64{200, -100, 50})
	if avgWin != 125 {
		t.Errorf("avgWin = %v, want 125", avgWin)
	}
	if avgLoss != 100 {
		t.Errorf("avgLoss = %v, want 100", avgLoss)
	}
	if profitFactor != 2.5 {
		t.Errorf("profitFactor = %v, want 2.5", profitFactor)
	}
}

func TestTradeStatsNoLosses(t *testing.T) {
	// Without losing trades the profit factor degenerates to gross profit.
	avgWin, avgLoss, profitFactor := tradeStats([]float64{200, 50})
	if avgWin != 125 {
		t.Errorf("avgWin = %v, want 125", avgWin)
	}
	if avgLoss != 0 {
		t.Errorf("avgLoss = %v, want 0", avgLoss)
	}
	if profitFactor != 250 {
		t.Errorf("profitFactor = %v, want 250", profitFactor)
	}
}

func TestTradeStatsEmpty(t *testing.T) {
	avgWin, avgLoss, profitFactor := tradeStats(nil)
	if avgWin != 0 || avgLoss != 0 || profitFactor != 0 {
		t.Errorf("tradeStats(nil) = %v/%v/%v, want zeros", avgWin, avgLoss, profitFactor)
	}
}

func TestPairPnls(t *testing.T) {
	trades := []model.Trade{
		{Action: model.ActionBuy, Value: 1000},
		{Action: model.ActionSell, Value: 1200},
		{Action: model.ActionBuy, Value: 1200},
		{Action: model.ActionSell, Value: 1100},
		{Action: model.ActionBuy, Value: 1100}, // unpaired
	}
	pnls := pairPnls(trades)
	if len(pnls) != 2 || pnls[0] != 200 || pnls[1] != -100 {
		t.Errorf("pairPnls = %v, want [200 -100]", pnls)
	}
}

func TestMaxDrawdown(t *testing.T) {
	curve := []model.EquityPoint{
		{Drawdown: 0}, {Drawdown: 0.05}, {Drawdown: 0.20}, {Drawdown: 0.10},
	}
	if got := maxDrawdown(curve); got != 0.20 {
		t.Errorf("max drawdown = %v, want 0.20", got)
	}
	if got := maxDrawdown(nil); got != 0 {
		t.Errorf("max drawdown of empty curve = %v, want 0", got)
	}
}

func TestPairTrades(t *testing.T) {
	trades := []model.Trade{
		{Action: model.ActionBuy, Value: 1000},
		{Action: model.ActionSell, Value: 1200}, // win
		{Action: model.ActionBuy, Value: 1200},
		{Action: model.ActionSell, Value: 1100}, // loss
		{Action: model.ActionBuy, Value: 1100},
		{Action: model.ActionSell, Value: 1100}, // flat: neither
		{Action: model.ActionBuy, Value: 1100},  // unpaired
	}

	winning, losing := pairTrades(trades)
	if winning != 1 {
		t.Errorf("winning = %d, want 1", winning)
	}
	if losing != 1 {
		t.Errorf("losing = %d, want 1", losing)
	}
}

func TestPairTradesEmpty(t *testing.T) {
	winning, losing := pairTrades(nil)
	if winning != 0 || losing != 0 {
		t.Errorf("pairTrades(nil) = %d/%d, want 0/0", winning, losing)
	}
}

func TestLastTradePrice(t *testing.T) {
	if got := lastTradePrice(nil); got != 0 {
		t.Errorf("lastTradePrice with no trades = %v, want 0", got)
	}
	trades := []model.Trade{{Price: 100}, {Price: 120}}
	if got := lastTradePrice(trades); got != 120 {
		t.Errorf("lastTradePrice = %v, want 120", got)
	}
}
