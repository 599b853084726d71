package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourorg/trading-dashboard/internal/indicator"
	"github.com/yourorg/trading-dashboard/internal/model"

	"go.uber.org/zap"
)

// ErrNoData is returned when the brokerage has no bars for the requested
// symbol and date range.
var ErrNoData = errors.New("no data available for the given period")

// BarSource supplies historical bars for a symbol and date range. Satisfied
// by the Alpaca client.
type BarSource interface {
	GetBars(ctx context.Context, symbol, timeframe, start, end string) ([]model.Bar, error)
}

// MarketDataService serves historical bars and indicator snapshots
type MarketDataService struct {
	bars   BarSource
	logger *zap.Logger
}

// NewMarketDataService creates a new market data service
func NewMarketDataService(bars BarSource, logger *zap.Logger) *MarketDataService {
	return &MarketDataService{
		bars:   bars,
		logger: logger,
	}
}

// GetBars fetches historical bars for a symbol
func (s *MarketDataService) GetBars(ctx context.Context, query *model.BarsQuery) ([]model.Bar, error) {
	bars, err := s.bars.GetBars(ctx, query.Symbol, query.Timeframe, query.StartDate, query.EndDate)
	if err != nil {
		s.logger.Error("Failed to fetch bars",
			zap.Error(err),
			zap.String("symbol", query.Symbol))
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, query.Symbol, query.StartDate, query.EndDate)
	}
	return bars, nil
}

// CalculateIndicators fetches bars and computes the standard indicator set at
// every bar: SMA 10/20/50, EMA 12/26, RSI 14 and MACD 12/26/9. Values in
// their warm-up window carry the indicator's not-ready sentinel.
func (s *MarketDataService) CalculateIndicators(ctx context.Context, req *model.IndicatorsRequest) ([]model.IndicatorPoint, error) {
	bars, err := s.bars.GetBars(ctx, req.Symbol, req.Timeframe, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, req.Symbol, req.StartDate, req.EndDate)
	}

	points := make([]model.IndicatorPoint, len(bars))
	for i := range bars {
		macd, signal, histogram := indicator.MACD(bars, 12, 26, 9, i)
		points[i] = model.IndicatorPoint{
			Timestamp:     bars[i].Timestamp,
			Close:         bars[i].Close,
			SMA10:         indicator.SMA(bars, 10, i),
			SMA20:         indicator.SMA(bars, 20, i),
			SMA50:         indicator.SMA(bars, 50, i),
			EMA12:         indicator.EMA(bars, 12, i),
			EMA26:         indicator.EMA(bars, 26, i),
			RSI:           indicator.RSI(bars, 14, i),
			MACD:          macd,
			MACDSignal:    signal,
			MACDHistogram: histogram,
		}
	}

	return points, nil
}
