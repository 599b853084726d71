package handler

import (
	"errors"
	"net/http"

	"github.com/yourorg/trading-dashboard/internal/model"
	"github.com/yourorg/trading-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketDataHandler handles market data HTTP requests
type MarketDataHandler struct {
	marketDataService *service.MarketDataService
	logger            *zap.Logger
}

// NewMarketDataHandler creates a new market data handler
func NewMarketDataHandler(marketDataService *service.MarketDataService, logger *zap.Logger) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
		logger:            logger,
	}
}

// GetBars handles retrieving historical bars for a symbol
func (h *MarketDataHandler) GetBars(c *gin.Context) {
	query := &model.BarsQuery{
		Symbol:    c.Param("symbol"),
		Timeframe: c.DefaultQuery("timeframe", "1Day"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if query.StartDate == "" || query.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	bars, err := h.marketDataService.GetBars(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get bars",
			zap.Error(err),
			zap.String("symbol", query.Symbol))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch market data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": query.Symbol,
		"bars":   bars,
		"count":  len(bars),
	})
}

// GetIndicators handles computing the standard indicator set for a symbol
func (h *MarketDataHandler) GetIndicators(c *gin.Context) {
	request := &model.IndicatorsRequest{
		Symbol:    c.Param("symbol"),
		Timeframe: c.DefaultQuery("timeframe", "1Day"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if request.StartDate == "" || request.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	points, err := h.marketDataService.CalculateIndicators(c.Request.Context(), request)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to calculate indicators",
			zap.Error(err),
			zap.String("symbol", request.Symbol))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch market data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":     request.Symbol,
		"indicators": points,
		"count":      len(points),
	})
}
