package handler

import (
	"errors"
	"net/http"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/service"
	"github.com/yourorg/trading-dashboard/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StrategyHandler handles strategy HTTP requests
type StrategyHandler struct {
	strategyService *service.StrategyService
	logger          *zap.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(strategyService *service.StrategyService, logger *zap.Logger) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
		logger:          logger,
	}
}

// ListStrategies handles listing all registered strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.strategyService.ListStrategies()})
}

// GetStrategy handles retrieving one strategy by ID
func (h *StrategyHandler) GetStrategy(c *gin.Context) {
	info, err := h.strategyService.GetStrategy(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// RunStrategy handles evaluating a strategy over a date range
func (h *StrategyHandler) RunStrategy(c *gin.Context) {
	var request model.StrategyRunRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	report, err := h.strategyService.RunStrategy(c.Request.Context(), id, &request)
	if err != nil {
		switch {
		case errors.Is(err, strategy.ErrStrategyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
		case errors.Is(err, service.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to run strategy",
				zap.Error(err),
				zap.String("strategy", id),
				zap.String("symbol", request.Symbol))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch market data"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
