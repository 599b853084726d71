package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/trading-dashboard/internal/backtest"
	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/service"
	"github.com/yourorg/trading-dashboard/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BacktestHandler handles backtest HTTP requests
type BacktestHandler struct {
	backtestService *service.BacktestService
	logger          *zap.Logger
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(backtestService *service.BacktestService, logger *zap.Logger) *BacktestHandler {
	return &BacktestHandler{
		backtestService: backtestService,
		logger:          logger,
	}
}

// RunBacktest handles running a new backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var request model.BacktestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, id, err := h.backtestService.Run(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, strategy.ErrStrategyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
		case errors.Is(err, backtest.ErrInvalidCapital), errors.Is(err, backtest.ErrNoBars):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to run backtest",
				zap.Error(err),
				zap.String("strategy", request.StrategyID),
				zap.String("symbol", request.Symbol))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to run backtest"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"backtest_id": id,
		"result":      result,
	})
}

// GetBacktest handles retrieving a persisted backtest by ID
func (h *BacktestHandler) GetBacktest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid backtest ID"})
		return
	}

	record, err := h.backtestService.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get backtest", zap.Error(err), zap.Int("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get backtest"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Backtest not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListBacktests handles listing persisted backtests
func (h *BacktestHandler) ListBacktests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, total, err := h.backtestService.List(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Error("Failed to list backtests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list backtests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"backtests": records,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}
