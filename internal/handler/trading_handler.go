package handler

import (
	"net/http"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradingHandler handles brokerage account HTTP requests
type TradingHandler struct {
	tradingService *service.TradingService
	logger         *zap.Logger
}

// NewTradingHandler creates a new trading handler
func NewTradingHandler(tradingService *service.TradingService, logger *zap.Logger) *TradingHandler {
	return &TradingHandler{
		tradingService: tradingService,
		logger:         logger,
	}
}

// GetAccount handles retrieving the account snapshot
func (h *TradingHandler) GetAccount(c *gin.Context) {
	account, err := h.tradingService.GetAccount(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get account", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch account"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetPositions handles retrieving all open positions
func (h *TradingHandler) GetPositions(c *gin.Context) {
	positions, err := h.tradingService.GetPositions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get positions", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

// GetAssets handles retrieving tradable assets
func (h *TradingHandler) GetAssets(c *gin.Context) {
	assets, err := h.tradingService.GetAssets(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get assets", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch assets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetQuote handles retrieving the latest quote for a symbol
func (h *TradingHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	quote, err := h.tradingService.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		h.logger.Error("Failed to get quote", zap.Error(err), zap.String("symbol", symbol))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch quote"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetOrders handles listing orders filtered by status
func (h *TradingHandler) GetOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "open")
	orders, err := h.tradingService.GetOrders(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("Failed to get orders", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// CreateOrder handles submitting a new order
func (h *TradingHandler) CreateOrder(c *gin.Context) {
	var request model.OrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.tradingService.CreateOrder(c.Request.Context(), &request)
	if err != nil {
		h.logger.Error("Failed to create order",
			zap.Error(err),
			zap.String("symbol", request.Symbol),
			zap.String("side", request.Side))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// CancelOrder handles cancelling an open order
func (h *TradingHandler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.tradingService.CancelOrder(c.Request.Context(), orderID); err != nil {
		h.logger.Error("Failed to cancel order", zap.Error(err), zap.String("orderID", orderID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to cancel order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancellation requested"})
}
