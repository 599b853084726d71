package service

import (
	"context"
	"fmt"

	"github.com/yourorg/trading-dashboard/internal/backtest"
	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/strategy"

	"go.uber.org/zap"
)

const defaultInitialCapital = 10000

// ResultStore persists completed backtest results. Satisfied by the backtest
// repository.
type ResultStore interface {
	SaveResult(ctx context.Context, result *model.BacktestResult) (int, error)
	GetResult(ctx context.Context, id int) (*model.BacktestRecord, error)
	ListResults(ctx context.Context, page, limit int) ([]model.BacktestRecord, int, error)
}

// EventPublisher emits backtest lifecycle events. Satisfied by the Kafka
// producer.
type EventPublisher interface {
	PublishBacktestCompleted(ctx context.Context, topic string, backtestID int, result *model.BacktestResult) error
}

// BacktestService runs backtests and manages their persisted results
type BacktestService struct {
	bars      BarSource
	registry  *strategy.Registry
	store     ResultStore
	publisher EventPublisher
	topic     string
	logger    *zap.Logger
}

// NewBacktestService creates a new backtest service. publisher may be nil
// when event publishing is disabled.
func NewBacktestService(
	bars BarSource,
	registry *strategy.Registry,
	store ResultStore,
	publisher EventPublisher,
	topic string,
	logger *zap.Logger,
) *BacktestService {
	return &BacktestService{
		bars:      bars,
		registry:  registry,
		store:     store,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Run executes a backtest: fetches bars, replays them through a fresh
// strategy instance and persists the result. Persistence and event
// publication are best-effort; a simulation that completed is always
// returned to the caller.
func (s *BacktestService) Run(ctx context.Context, req *model.BacktestRequest) (*model.BacktestResult, int, error) {
	if req.InitialCapital == 0 {
		req.InitialCapital = defaultInitialCapital
	}
	if req.InitialCapital < 0 {
		return nil, 0, backtest.ErrInvalidCapital
	}
	if req.Commission < 0 {
		return nil, 0, fmt.Errorf("commission must not be negative")
	}

	strat, err := s.registry.New(req.StrategyID, req.Parameters)
	if err != nil {
		return nil, 0, err
	}

	bars, err := s.bars.GetBars(ctx, req.Symbol, req.Timeframe, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("Failed to fetch bars for backtest",
			zap.Error(err),
			zap.String("symbol", req.Symbol),
			zap.String("strategy", req.StrategyID))
		return nil, 0, err
	}
	if len(bars) == 0 {
		return nil, 0, fmt.Errorf("%w: %s %s..%s", ErrNoData, req.Symbol, req.StartDate, req.EndDate)
	}

	engine := backtest.New(backtest.Config{
		Symbol:         req.Symbol,
		StrategyID:     req.StrategyID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		InitialCapital: req.InitialCapital,
		Commission:     req.Commission,
	}, strat)

	result, err := engine.Run(bars)
	if err != nil {
		return nil, 0, err
	}

	id, err := s.store.SaveResult(ctx, result)
	if err != nil {
		s.logger.Error("Failed to persist backtest result",
			zap.Error(err),
			zap.String("symbol", req.Symbol),
			zap.String("strategy", req.StrategyID))
		return result, 0, nil
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBacktestCompleted(ctx, s.topic, id, result); err != nil {
			s.logger.Warn("Failed to publish backtest completed event",
				zap.Error(err),
				zap.Int("backtestID", id))
		}
	}

	s.logger.Info("Backtest completed",
		zap.Int("backtestID", id),
		zap.String("symbol", req.Symbol),
		zap.String("strategy", req.StrategyID),
		zap.Int("trades", result.TotalTrades),
		zap.Float64("returnPct", result.TotalReturnPct))

	return result, id, nil
}

// Get retrieves a persisted backtest by ID. Returns nil when no such
// backtest exists.
func (s *BacktestService) Get(ctx context.Context, id int) (*model.BacktestRecord, error) {
	return s.store.GetResult(ctx, id)
}

// List retrieves persisted backtest summaries, newest first
func (s *BacktestService) List(ctx context.Context, page, limit int) ([]model.BacktestRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.ListResults(ctx, page, limit)
}
