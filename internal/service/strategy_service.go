package service

import (
	"context"
	"fmt"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/strategy"

	"go.uber.org/zap"
)

// StrategyService lists registered strategies and evaluates them over
// historical bars without simulating trades.
type StrategyService struct {
	registry *strategy.Registry
	bars     BarSource
	logger   *zap.Logger
}

// NewStrategyService creates a new strategy service
func NewStrategyService(registry *strategy.Registry, bars BarSource, logger *zap.Logger) *StrategyService {
	return &StrategyService{
		registry: registry,
		bars:     bars,
		logger:   logger,
	}
}

// ListStrategies returns metadata for all registered strategies
func (s *StrategyService) ListStrategies() []model.StrategyInfo {
	return s.registry.List()
}

// GetStrategy returns metadata for one strategy
func (s *StrategyService) GetStrategy(id string) (model.StrategyInfo, error) {
	return s.registry.Get(id)
}

// RunStrategy evaluates a strategy over the requested date range and returns
// the per-bar signals with summary counts.
func (s *StrategyService) RunStrategy(ctx context.Context, id string, req *model.StrategyRunRequest) (*model.SignalReport, error) {
	strat, err := s.registry.New(id, req.Parameters)
	if err != nil {
		return nil, err
	}

	bars, err := s.bars.GetBars(ctx, req.Symbol, req.Timeframe, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("Failed to fetch bars for strategy run",
			zap.Error(err),
			zap.String("strategy", id),
			zap.String("symbol", req.Symbol))
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, req.Symbol, req.StartDate, req.EndDate)
	}

	report := &model.SignalReport{
		StrategyID: id,
		Symbol:     req.Symbol,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Signals:    make([]model.Signal, 0, len(bars)),
	}

	for i := range bars {
		sig := strat.Analyze(bars, i)
		report.Signals = append(report.Signals, sig)
		switch sig.Action {
		case model.ActionBuy:
			report.BuySignals++
		case model.ActionSell:
			report.SellSignals++
		default:
			report.HoldSignals++
		}
	}
	report.TotalSignals = len(report.Signals)

	return report, nil
}
