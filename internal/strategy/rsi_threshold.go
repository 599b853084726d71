package strategy

import (
	"fmt"

	"github.com/yourorg/trading-dashboard/internal/indicator"
	"github.com/yourorg/trading-dashboard/internal/model"
)

// Compile-time interface check.
var _ Strategy = (*RSIThreshold)(nil)

// RSIThreshold trades mean reversion off RSI levels: it buys when RSI crosses
// up through the oversold level or sits below it, and sells when RSI crosses
// down through the overbought level or sits above it.
type RSIThreshold struct {
	period     int
	oversold   float64
	overbought float64
}

// NewRSIThreshold creates an RSIThreshold strategy. Recognized parameters are
// "period" (default 14), "oversold" (default 30) and "overbought"
// (default 70).
func NewRSIThreshold(params map[string]float64) *RSIThreshold {
	return &RSIThreshold{
		period:     int(paramOr(params, "period", 14)),
		oversold:   paramOr(params, "oversold", 30),
		overbought: paramOr(params, "overbought", 70),
	}
}

// Name returns "rsi_threshold".
func (s *RSIThreshold) Name() string {
	return "rsi_threshold"
}

// Description returns a summary with the configured levels.
func (s *RSIThreshold) Description() string {
	return fmt.Sprintf("RSI Threshold (period=%d, oversold=%g, overbought=%g)",
		s.period, s.oversold, s.overbought)
}

// Parameters returns the resolved parameter values.
func (s *RSIThreshold) Parameters() map[string]float64 {
	return map[string]float64{
		"period":     float64(s.period),
		"oversold":   s.oversold,
		"overbought": s.overbought,
	}
}

// Analyze generates a signal from the RSI state at the given index.
func (s *RSIThreshold) Analyze(bars []model.Bar, index int) model.Signal {
	bar := bars[index]

	if index < s.period+1 {
		return model.Signal{
			Timestamp: bar.Timestamp,
			Action:    model.ActionHold,
			Reason:    "Insufficient data for RSI calculation",
			Price:     bar.Close,
		}
	}

	currentRSI := indicator.RSI(bars, s.period, index)
	previousRSI := indicator.RSI(bars, s.period, index-1)

	// Crossing up through the oversold level.
	if previousRSI <= s.oversold && currentRSI > s.oversold {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionBuy,
			Confidence: (s.oversold - previousRSI) / s.oversold,
			Reason: fmt.Sprintf("RSI oversold signal: RSI crossed above %g (current: %.2f)",
				s.oversold, currentRSI),
			Price: bar.Close,
		}
	}

	// Crossing down through the overbought level.
	if previousRSI >= s.overbought && currentRSI < s.overbought {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionSell,
			Confidence: (previousRSI - s.overbought) / (100 - s.overbought),
			Reason: fmt.Sprintf("RSI overbought signal: RSI crossed below %g (current: %.2f)",
				s.overbought, currentRSI),
			Price: bar.Close,
		}
	}

	// No crossover, but currently stretched past a level.
	if currentRSI < s.oversold {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionBuy,
			Confidence: (s.oversold - currentRSI) / s.oversold,
			Reason:     fmt.Sprintf("RSI oversold: %.2f (threshold: %g)", currentRSI, s.oversold),
			Price:      bar.Close,
		}
	}

	if currentRSI > s.overbought {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionSell,
			Confidence: (currentRSI - s.overbought) / (100 - s.overbought),
			Reason:     fmt.Sprintf("RSI overbought: %.2f (threshold: %g)", currentRSI, s.overbought),
			Price:      bar.Close,
		}
	}

	return model.Signal{
		Timestamp: bar.Timestamp,
		Action:    model.ActionHold,
		Reason:    fmt.Sprintf("RSI neutral: %.2f", currentRSI),
		Price:     bar.Close,
	}
}
