package model

import (
	"time"
)

// Account represents a snapshot of the brokerage account
type Account struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Currency     string  `json:"currency"`
	Cash         float64 `json:"cash,string"`
	BuyingPower  float64 `json:"buying_power,string"`
	Equity       float64 `json:"equity,string"`
	PortfolioVal float64 `json:"portfolio_value,string"`
}

// Position represents one open position at the brokerage
type Position struct {
	Symbol         string  `json:"symbol"`
	Qty            float64 `json:"qty,string"`
	AvgEntryPrice  float64 `json:"avg_entry_price,string"`
	MarketValue    float64 `json:"market_value,string"`
	CurrentPrice   float64 `json:"current_price,string"`
	UnrealizedPL   float64 `json:"unrealized_pl,string"`
	UnrealizedPLPC float64 `json:"unrealized_plpc,string"`
}

// Asset represents a tradable instrument
type Asset struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Class    string `json:"class"`
	Status   string `json:"status"`
	Tradable bool   `json:"tradable"`
}

// Quote represents the latest quote for a symbol
type Quote struct {
	Symbol    string    `json:"symbol"`
	BidPrice  float64   `json:"bid_price"`
	BidSize   float64   `json:"bid_size"`
	AskPrice  float64   `json:"ask_price"`
	AskSize   float64   `json:"ask_size"`
	Timestamp time.Time `json:"timestamp"`
}

// Order represents a brokerage order
type Order struct {
	ID             string     `json:"id"`
	ClientOrderID  string     `json:"client_order_id"`
	Symbol         string     `json:"symbol"`
	Qty            float64    `json:"qty,string"`
	FilledQty      float64    `json:"filled_qty,string"`
	Side           string     `json:"side"`
	Type           string     `json:"type"`
	TimeInForce    string     `json:"time_in_force"`
	Status         string     `json:"status"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	FilledAt       *time.Time `json:"filled_at,omitempty"`
	FilledAvgPrice *float64   `json:"filled_avg_price,string,omitempty"`
}

// OrderRequest represents a request to place an order
type OrderRequest struct {
	Symbol      string  `json:"symbol" binding:"required"`
	Qty         float64 `json:"qty" binding:"required,gt=0"`
	Side        string  `json:"side" binding:"required,oneof=buy sell"`
	Type        string  `json:"type" binding:"required,oneof=market limit stop stop_limit"`
	TimeInForce string  `json:"time_in_force" binding:"required,oneof=day gtc ioc fok"`
	LimitPrice  float64 `json:"limit_price,omitempty"`
	StopPrice   float64 `json:"stop_price,omitempty"`
}
