package strategy

import (
	"fmt"

	"github.com/yourorg/trading-dashboard/internal/indicator"
	"github.com/yourorg/trading-dashboard/internal/model"
)

// Compile-time interface check.
var _ Strategy = (*SMACrossover)(nil)

// SMACrossover emits a buy signal when the short-period SMA crosses above the
// long-period SMA and a sell signal on the opposite crossover.
type SMACrossover struct {
	shortPeriod int
	longPeriod  int
}

// NewSMACrossover creates an SMACrossover strategy. Recognized parameters are
// "short_period" (default 10) and "long_period" (default 30).
func NewSMACrossover(params map[string]float64) *SMACrossover {
	return &SMACrossover{
		shortPeriod: int(paramOr(params, "short_period", 10)),
		longPeriod:  int(paramOr(params, "long_period", 30)),
	}
}

// Name returns "sma_crossover".
func (s *SMACrossover) Name() string {
	return "sma_crossover"
}

// Description returns a summary with the configured periods.
func (s *SMACrossover) Description() string {
	return fmt.Sprintf("SMA Crossover (%d/%d)", s.shortPeriod, s.longPeriod)
}

// Parameters returns the resolved parameter values.
func (s *SMACrossover) Parameters() map[string]float64 {
	return map[string]float64{
		"short_period": float64(s.shortPeriod),
		"long_period":  float64(s.longPeriod),
	}
}

// Analyze generates a signal from the SMA crossover state at the given index.
func (s *SMACrossover) Analyze(bars []model.Bar, index int) model.Signal {
	bar := bars[index]

	if index < s.longPeriod {
		return model.Signal{
			Timestamp: bar.Timestamp,
			Action:    model.ActionHold,
			Reason:    "Insufficient data for analysis",
			Price:     bar.Close,
		}
	}

	currentShort := indicator.SMA(bars, s.shortPeriod, index)
	currentLong := indicator.SMA(bars, s.longPeriod, index)
	previousShort := indicator.SMA(bars, s.shortPeriod, index-1)
	previousLong := indicator.SMA(bars, s.longPeriod, index-1)

	// Bullish crossover: short crosses above long.
	if previousShort <= previousLong && currentShort > currentLong {
		confidence := (currentShort - currentLong) / currentLong * 100
		if confidence > 1 {
			confidence = 1
		}
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionBuy,
			Confidence: confidence,
			Reason: fmt.Sprintf("SMA bullish crossover: %d-period crossed above %d-period",
				s.shortPeriod, s.longPeriod),
			Price: bar.Close,
		}
	}

	// Bearish crossover: short crosses below long.
	if previousShort >= previousLong && currentShort < currentLong {
		confidence := (currentLong - currentShort) / currentLong * 100
		if confidence > 1 {
			confidence = 1
		}
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionSell,
			Confidence: confidence,
			Reason: fmt.Sprintf("SMA bearish crossover: %d-period crossed below %d-period",
				s.shortPeriod, s.longPeriod),
			Price: bar.Close,
		}
	}

	return model.Signal{
		Timestamp: bar.Timestamp,
		Action:    model.ActionHold,
		Reason:    "No crossover detected",
		Price:     bar.Close,
	}
}
