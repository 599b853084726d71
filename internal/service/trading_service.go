package service

import (
	"context"

	"github.com/yourorg/trading-dashboard/internal/client"
	"github.com/yourorg/trading-dashboard/internal/model"

	"go.uber.org/zap"
)

// TradingService exposes the brokerage account surface: account snapshot,
// positions, assets, quotes and order management.
type TradingService struct {
	alpaca *client.AlpacaClient
	logger *zap.Logger
}

// NewTradingService creates a new trading service
func NewTradingService(alpaca *client.AlpacaClient, logger *zap.Logger) *TradingService {
	return &TradingService{
		alpaca: alpaca,
		logger: logger,
	}
}

// GetAccount retrieves the current account snapshot
func (s *TradingService) GetAccount(ctx context.Context) (*model.Account, error) {
	return s.alpaca.GetAccount(ctx)
}

// GetPositions retrieves all open positions
func (s *TradingService) GetPositions(ctx context.Context) ([]model.Position, error) {
	return s.alpaca.GetPositions(ctx)
}

// GetAssets retrieves all active tradable assets
func (s *TradingService) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return s.alpaca.GetAssets(ctx)
}

// GetQuote retrieves the latest quote for a symbol
func (s *TradingService) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	return s.alpaca.GetQuote(ctx, symbol)
}

// GetOrders retrieves orders filtered by status
func (s *TradingService) GetOrders(ctx context.Context, status string) ([]model.Order, error) {
	return s.alpaca.GetOrders(ctx, status)
}

// CreateOrder submits a new order
func (s *TradingService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	order, err := s.alpaca.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Order created",
		zap.String("orderID", order.ID),
		zap.String("symbol", order.Symbol))
	return order, nil
}

// CancelOrder cancels an open order
func (s *TradingService) CancelOrder(ctx context.Context, orderID string) error {
	return s.alpaca.CancelOrder(ctx, orderID)
}
