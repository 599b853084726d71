// Package backtest simulates strategy execution over historical bars and
// derives performance metrics from the resulting trade log and equity curve.
package backtest

import (
	"errors"
	"math"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/strategy"
)

var (
	// ErrNoBars is returned when a backtest is run over an empty bar sequence.
	ErrNoBars = errors.New("no bars provided for backtest")

	// ErrInvalidCapital is returned when the configured initial capital is
	// not positive.
	ErrInvalidCapital = errors.New("initial capital must be positive")
)

// minConfidence is the gate a signal must clear before the engine trades on it.
const minConfidence = 0.5

// Config holds the parameters of a single backtest run. StartDate and
// EndDate are pass-through labels; the bar sequence is authoritative.
type Config struct {
	Symbol         string
	StrategyID     string
	StartDate      string
	EndDate        string
	InitialCapital float64
	Commission     float64
}

// Engine owns the mutable simulation state of one backtest run: cash,
// position, trade log and equity curve. An Engine is single-use; construct a
// fresh Engine (and a fresh strategy instance) per run.
type Engine struct {
	cfg      Config
	strategy strategy.Strategy

	cash       float64
	position   int64
	peakEquity float64

	trades      []model.Trade
	equityCurve []model.EquityPoint
}

// New creates an Engine for one run with the given configuration and a
// freshly constructed strategy instance.
func New(cfg Config, strat strategy.Strategy) *Engine {
	return &Engine{
		cfg:        cfg,
		strategy:   strat,
		cash:       cfg.InitialCapital,
		peakEquity: cfg.InitialCapital,
	}
}

// Run replays the bar sequence through the strategy, simulating order
// execution and capital accounting, and compiles the result report. The bar
// sequence must be non-empty and ordered by time ascending.
func (e *Engine) Run(bars []model.Bar) (*model.BacktestResult, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	if e.cfg.InitialCapital <= 0 {
		return nil, ErrInvalidCapital
	}

	for i := range bars {
		bar := bars[i]
		signal := e.strategy.Analyze(bars, i)

		// Mark to market before acting on the signal.
		equity := e.cash + float64(e.position)*bar.Close
		if equity > e.peakEquity {
			e.peakEquity = equity
		}
		var drawdown float64
		if e.peakEquity > 0 {
			drawdown = (e.peakEquity - equity) / e.peakEquity
		}
		e.equityCurve = append(e.equityCurve, model.EquityPoint{
			Timestamp: bar.Timestamp,
			Equity:    equity,
			Drawdown:  drawdown,
		})

		// Full-position market execution, one trade style per bar. A NaN
		// confidence never clears the gate.
		switch {
		case signal.Action == model.ActionBuy && e.position == 0 && signal.Confidence > minConfidence:
			e.executeBuy(bar, signal.Reason)
		case signal.Action == model.ActionSell && e.position > 0 && signal.Confidence > minConfidence:
			e.executeSell(bar, signal.Reason)
		}
	}

	// An open position must never be dropped from the result: force-close at
	// the final bar.
	if e.position > 0 {
		e.executeSell(bars[len(bars)-1], "End of backtest")
	}

	return e.report(), nil
}

// executeBuy spends as much cash as a whole number of shares allows, plus the
// flat commission. Insufficient cash is a silent no-op.
func (e *Engine) executeBuy(bar model.Bar, reason string) {
	quantity := int64(math.Floor((e.cash - e.cfg.Commission) / bar.Close))
	if quantity <= 0 {
		return
	}

	cost := float64(quantity)*bar.Close + e.cfg.Commission
	e.cash -= cost
	e.position = quantity

	e.trades = append(e.trades, model.Trade{
		Timestamp: bar.Timestamp,
		Action:    model.ActionBuy,
		Symbol:    e.cfg.Symbol,
		Quantity:  quantity,
		Price:     bar.Close,
		Value:     cost,
		Reason:    reason,
	})
}

// executeSell liquidates the entire position at the bar close.
func (e *Engine) executeSell(bar model.Bar, reason string) {
	proceeds := float64(e.position)*bar.Close - e.cfg.Commission
	e.cash += proceeds

	e.trades = append(e.trades, model.Trade{
		Timestamp: bar.Timestamp,
		Action:    model.ActionSell,
		Symbol:    e.cfg.Symbol,
		Quantity:  e.position,
		Price:     bar.Close,
		Value:     proceeds,
		Reason:    reason,
	})

	e.position = 0
}
