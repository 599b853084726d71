package model

import (
	"time"
)

// Bar represents a single OHLCV price sample for a fixed time interval
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// BarsQuery represents a query for historical bar data
type BarsQuery struct {
	Symbol    string `json:"symbol" form:"symbol" binding:"required"`
	Timeframe string `json:"timeframe" form:"timeframe"`
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
}

// IndicatorsRequest represents a request to compute indicator values for a
// symbol over a date range
type IndicatorsRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Timeframe string `json:"timeframe"`
}

// IndicatorPoint holds the indicator values computed at one bar
type IndicatorPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Close         float64   `json:"close"`
	SMA10         float64   `json:"sma_10"`
	SMA20         float64   `json:"sma_20"`
	SMA50         float64   `json:"sma_50"`
	EMA12         float64   `json:"ema_12"`
	EMA26         float64   `json:"ema_26"`
	RSI           float64   `json:"rsi"`
	MACD          float64   `json:"macd"`
	MACDSignal    float64   `json:"macd_signal"`
	MACDHistogram float64   `json:"macd_histogram"`
}
