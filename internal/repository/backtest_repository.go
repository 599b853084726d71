package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourorg/trading-dashboard/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// BacktestRepository handles database operations for completed backtests
type BacktestRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBacktestRepository creates a new backtest repository
func NewBacktestRepository(db *sqlx.DB, logger *zap.Logger) *BacktestRepository {
	return &BacktestRepository{
		db:     db,
		logger: logger,
	}
}

// SaveResult persists a completed backtest result. The full report, trades
// and equity curve included, is stored as JSON alongside the summary columns.
func (r *BacktestRepository) SaveResult(ctx context.Context, result *model.BacktestResult) (int, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal backtest result: %w", err)
	}

	query := `
		INSERT INTO backtest_results (
			strategy_id, symbol, start_date, end_date,
			initial_capital, final_capital, total_return_pct,
			sharpe_ratio, max_drawdown, total_trades, win_rate,
			result, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int
	err = r.db.QueryRowContext(
		ctx,
		query,
		result.StrategyID,
		result.Symbol,
		result.StartDate,
		result.EndDate,
		result.InitialCapital,
		result.FinalCapital,
		result.TotalReturnPct,
		result.SharpeRatio,
		result.MaxDrawdown,
		result.TotalTrades,
		result.WinRate,
		resultJSON,
		time.Now(),
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to save backtest result", zap.Error(err))
		return 0, err
	}

	return id, nil
}

// GetResult retrieves a persisted backtest by ID. Returns nil when no row
// exists.
func (r *BacktestRepository) GetResult(ctx context.Context, id int) (*model.BacktestRecord, error) {
	query := `
		SELECT
			id, strategy_id, symbol, start_date, end_date,
			initial_capital, final_capital, total_return_pct,
			sharpe_ratio, max_drawdown, total_trades, win_rate,
			result, created_at
		FROM backtest_results
		WHERE id = $1
	`

	var record model.BacktestRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get backtest result", zap.Error(err), zap.Int("id", id))
		return nil, err
	}

	return &record, nil
}

// ListResults retrieves persisted backtest summaries, newest first
func (r *BacktestRepository) ListResults(ctx context.Context, page, limit int) ([]model.BacktestRecord, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM backtest_results`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		r.logger.Error("Failed to count backtest results", zap.Error(err))
		return nil, 0, err
	}

	query := `
		SELECT
			id, strategy_id, symbol, start_date, end_date,
			initial_capital, final_capital, total_return_pct,
			sharpe_ratio, max_drawdown, total_trades, win_rate,
			result, created_at
		FROM backtest_results
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	records := []model.BacktestRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit, offset); err != nil {
		r.logger.Error("Failed to list backtest results", zap.Error(err))
		return nil, 0, err
	}

	return records, total, nil
}
