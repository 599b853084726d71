package model

import (
	"time"
)

// Signal actions emitted by strategies
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
	ActionHold = "hold"
)

// Signal represents a strategy's trading recommendation for a single bar
type Signal struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
	Price      float64   `json:"price"`
}

// SignalReport summarizes one strategy run over a bar sequence
type SignalReport struct {
	StrategyID   string   `json:"strategy_id"`
	Symbol       string   `json:"symbol"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Signals      []Signal `json:"signals"`
	TotalSignals int      `json:"total_signals"`
	BuySignals   int      `json:"buy_signals"`
	SellSignals  int      `json:"sell_signals"`
	HoldSignals  int      `json:"hold_signals"`
}
