package model

import (
	"time"
)

// BacktestRequest represents a request to run a backtest
type BacktestRequest struct {
	Symbol         string             `json:"symbol" binding:"required"`
	StrategyID     string             `json:"strategy_id" binding:"required"`
	StartDate      string             `json:"start_date" binding:"required"`
	EndDate        string             `json:"end_date" binding:"required"`
	InitialCapital float64            `json:"initial_capital"`
	Commission     float64            `json:"commission"`
	Timeframe      string             `json:"timeframe" binding:"omitempty,timeframe"`
	Parameters     map[string]float64 `json:"parameters"`
}

// Trade represents one executed transaction during a backtest run
type Trade struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Value     float64   `json:"value"`
	Reason    string    `json:"reason,omitempty"`
}

// EquityPoint is one mark-to-market sample of the equity curve. Drawdown is
// the fractional decline from the highest equity seen so far in the run.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
	Drawdown  float64   `json:"drawdown"`
}

// BacktestResult is the immutable report compiled at the end of a run.
// Percentages are expressed on a 0-100 scale; drawdown is a 0-1 fraction;
// monetary values share the currency unit of the initial capital.
type BacktestResult struct {
	StrategyID     string        `json:"strategy_id"`
	Symbol         string        `json:"symbol"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	InitialCapital float64       `json:"initial_capital"`
	FinalCapital   float64       `json:"final_capital"`
	TotalReturn    float64       `json:"total_return"`
	TotalReturnPct float64       `json:"total_return_pct"`
	SharpeRatio    float64       `json:"sharpe_ratio"`
	SortinoRatio   float64       `json:"sortino_ratio"`
	MaxDrawdown    float64       `json:"max_drawdown"`
	MaxDrawdownPct float64       `json:"max_drawdown_pct"`
	TotalTrades    int           `json:"total_trades"`
	WinningTrades  int           `json:"winning_trades"`
	LosingTrades   int           `json:"losing_trades"`
	WinRate        float64       `json:"win_rate"`
	AvgWin         float64       `json:"avg_win"`
	AvgLoss        float64       `json:"avg_loss"`
	ProfitFactor   float64       `json:"profit_factor"`
	Trades         []Trade       `json:"trades"`
	EquityCurve    []EquityPoint `json:"equity_curve"`
}

// BacktestRecord is a persisted backtest result row
type BacktestRecord struct {
	ID             int       `json:"id" db:"id"`
	StrategyID     string    `json:"strategy_id" db:"strategy_id"`
	Symbol         string    `json:"symbol" db:"symbol"`
	StartDate      string    `json:"start_date" db:"start_date"`
	EndDate        string    `json:"end_date" db:"end_date"`
	InitialCapital float64   `json:"initial_capital" db:"initial_capital"`
	FinalCapital   float64   `json:"final_capital" db:"final_capital"`
	TotalReturnPct float64   `json:"total_return_pct" db:"total_return_pct"`
	SharpeRatio    float64   `json:"sharpe_ratio" db:"sharpe_ratio"`
	MaxDrawdown    float64   `json:"max_drawdown" db:"max_drawdown"`
	TotalTrades    int       `json:"total_trades" db:"total_trades"`
	WinRate        float64   `json:"win_rate" db:"win_rate"`
	Result         []byte    `json:"-" db:"result"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
