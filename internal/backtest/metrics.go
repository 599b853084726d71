package backtest

import (
	"math"

	"github.com/yourorg/trading-dashboard/internal/model"
)

// tradingDaysPerYear is the annualization constant for the Sharpe ratio. It
// assumes daily bars regardless of the actual timeframe; a documented
// approximation kept for metric stability.
const tradingDaysPerYear = 252

// report aggregates the finished trade log and equity curve into the
// immutable result. Called once, after the run loop and forced close-out.
func (e *Engine) report() *model.BacktestResult {
	finalCapital := e.cash + float64(e.position)*lastTradePrice(e.trades)
	totalReturn := finalCapital - e.cfg.InitialCapital
	totalReturnPct := totalReturn / e.cfg.InitialCapital * 100

	winning, losing := pairTrades(e.trades)
	winRate := 0.0
	if winning+losing > 0 {
		winRate = float64(winning) / float64(winning+losing) * 100
	}
	avgWin, avgLoss, profitFactor := tradeStats(pairPnls(e.trades))
	drawdown := maxDrawdown(e.equityCurve)

	return &model.BacktestResult{
		StrategyID:     e.cfg.StrategyID,
		Symbol:         e.cfg.Symbol,
		StartDate:      e.cfg.StartDate,
		EndDate:        e.cfg.EndDate,
		InitialCapital: e.cfg.InitialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    totalReturn,
		TotalReturnPct: totalReturnPct,
		SharpeRatio:    sharpeRatio(e.equityCurve),
		SortinoRatio:   sortinoRatio(e.equityCurve),
		MaxDrawdown:    drawdown,
		MaxDrawdownPct: drawdown * 100,
		TotalTrades:    len(e.trades),
		WinningTrades:  winning,
		LosingTrades:   losing,
		WinRate:        winRate,
		AvgWin:         avgWin,
		AvgLoss:        avgLoss,
		ProfitFactor:   profitFactor,
		Trades:         e.trades,
		EquityCurve:    e.equityCurve,
	}
}

// lastTradePrice returns the fill price of the most recent trade, or 0 when
// no trades occurred (the position is then necessarily zero).
func lastTradePrice(trades []model.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	return trades[len(trades)-1].Price
}

// equityReturns extracts per-bar fractional returns from the equity curve.
func equityReturns(curve []model.EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	return returns
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	variance := 0.0
	for _, x := range xs {
		variance += (x - m) * (x - m)
	}
	return math.Sqrt(variance / float64(len(xs)))
}

// sharpeRatio computes mean(r)/stddev(r)*sqrt(252) over per-bar equity
// returns. Returns 0 when the return series is empty or has zero variance.
func sharpeRatio(curve []model.EquityPoint) float64 {
	returns := equityReturns(curve)
	sd := stddev(returns)
	if sd == 0 {
		return 0
	}
	return mean(returns) / sd * math.Sqrt(tradingDaysPerYear)
}

// sortinoRatio is the Sharpe variant penalizing only downside volatility:
// mean over all returns divided by the deviation of the negative returns.
// Returns 0 when there are no negative returns or their deviation is zero.
func sortinoRatio(curve []model.EquityPoint) float64 {
	returns := equityReturns(curve)

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	sd := stddev(downside)
	if sd == 0 {
		return 0
	}
	return mean(returns) / sd * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown returns the largest per-bar drawdown recorded during the run.
func maxDrawdown(curve []model.EquityPoint) float64 {
	max := 0.0
	for _, p := range curve {
		if p.Drawdown > max {
			max = p.Drawdown
		}
	}
	return max
}

// pairPnls matches the i-th buy with the i-th sell and returns the
// commission-inclusive profit of each completed round trip. Positional
// pairing is only correct under the engine's single-open-position policy.
func pairPnls(trades []model.Trade) []float64 {
	var buys, sells []model.Trade
	for _, t := range trades {
		switch t.Action {
		case model.ActionBuy:
			buys = append(buys, t)
		case model.ActionSell:
			sells = append(sells, t)
		}
	}

	pairs := len(buys)
	if len(sells) < pairs {
		pairs = len(sells)
	}

	pnls := make([]float64, pairs)
	for i := 0; i < pairs; i++ {
		pnls[i] = sells[i].Value - buys[i].Value
	}
	return pnls
}

// pairTrades counts winning and losing round trips; flat pairs count as
// neither.
func pairTrades(trades []model.Trade) (winning, losing int) {
	for _, pnl := range pairPnls(trades) {
		if pnl > 0 {
			winning++
		} else if pnl < 0 {
			losing++
		}
	}
	return winning, losing
}

// tradeStats aggregates round-trip profits into average win, average loss
// (as a positive magnitude) and profit factor. With no losing trades the
// profit factor degenerates to the gross profit.
func tradeStats(pnls []float64) (avgWin, avgLoss, profitFactor float64) {
	var wins, losses []float64
	for _, pnl := range pnls {
		if pnl > 0 {
			wins = append(wins, pnl)
		} else if pnl < 0 {
			losses = append(losses, -pnl)
		}
	}

	avgWin = mean(wins)
	avgLoss = mean(losses)

	grossLoss := 0.0
	for _, l := range losses {
		grossLoss += l
	}
	if grossLoss == 0 {
		grossLoss = 1
	}
	grossWin := 0.0
	for _, w := range wins {
		grossWin += w
	}
	profitFactor = grossWin / grossLoss

	return avgWin, avgLoss, profitFactor
}
