package strategy

import (
	"fmt"
	"math"

	"github.com/yourorg/trading-dashboard/internal/indicator"
	"github.com/yourorg/trading-dashboard/internal/model"
)

// Compile-time interface check.
var _ Strategy = (*MACDTrendFollow)(nil)

// MACDTrendFollow trades trend changes on MACD/signal-line crossovers.
type MACDTrendFollow struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACDTrendFollow creates a MACDTrendFollow strategy. Recognized
// parameters are "fast_period" (default 12), "slow_period" (default 26) and
// "signal_period" (default 9).
func NewMACDTrendFollow(params map[string]float64) *MACDTrendFollow {
	return &MACDTrendFollow{
		fastPeriod:   int(paramOr(params, "fast_period", 12)),
		slowPeriod:   int(paramOr(params, "slow_period", 26)),
		signalPeriod: int(paramOr(params, "signal_period", 9)),
	}
}

// Name returns "macd_trend_follow".
func (s *MACDTrendFollow) Name() string {
	return "macd_trend_follow"
}

// Description returns a summary with the configured periods.
func (s *MACDTrendFollow) Description() string {
	return fmt.Sprintf("MACD Trend Follow (%d/%d/%d)", s.fastPeriod, s.slowPeriod, s.signalPeriod)
}

// Parameters returns the resolved parameter values.
func (s *MACDTrendFollow) Parameters() map[string]float64 {
	return map[string]float64{
		"fast_period":   float64(s.fastPeriod),
		"slow_period":   float64(s.slowPeriod),
		"signal_period": float64(s.signalPeriod),
	}
}

// Analyze generates a signal from the MACD crossover state at the given index.
func (s *MACDTrendFollow) Analyze(bars []model.Bar, index int) model.Signal {
	bar := bars[index]

	if index < s.slowPeriod+s.signalPeriod {
		return model.Signal{
			Timestamp: bar.Timestamp,
			Action:    model.ActionHold,
			Reason:    "Insufficient data for MACD calculation",
			Price:     bar.Close,
		}
	}

	currentMACD, currentSignal, histogram := indicator.MACD(bars, s.fastPeriod, s.slowPeriod, s.signalPeriod, index)
	previousMACD, previousSignal, _ := indicator.MACD(bars, s.fastPeriod, s.slowPeriod, s.signalPeriod, index-1)

	// Bullish crossover: MACD line crosses above the signal line.
	if previousMACD <= previousSignal && currentMACD > currentSignal {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionBuy,
			Confidence: s.crossoverConfidence(currentMACD, histogram),
			Reason: fmt.Sprintf("MACD bullish crossover: MACD line crossed above signal line (histogram: %.4f)",
				histogram),
			Price: bar.Close,
		}
	}

	// Bearish crossover: MACD line crosses below the signal line.
	if previousMACD >= previousSignal && currentMACD < currentSignal {
		return model.Signal{
			Timestamp:  bar.Timestamp,
			Action:     model.ActionSell,
			Confidence: s.crossoverConfidence(currentMACD, histogram),
			Reason: fmt.Sprintf("MACD bearish crossover: MACD line crossed below signal line (histogram: %.4f)",
				histogram),
			Price: bar.Close,
		}
	}

	var reason string
	switch {
	case histogram > 0 && currentMACD > 0:
		reason = fmt.Sprintf("MACD bullish trend continues (histogram: %.4f)", histogram)
	case histogram < 0 && currentMACD < 0:
		reason = fmt.Sprintf("MACD bearish trend continues (histogram: %.4f)", histogram)
	default:
		reason = fmt.Sprintf("MACD neutral (histogram: %.4f)", histogram)
	}

	return model.Signal{
		Timestamp: bar.Timestamp,
		Action:    model.ActionHold,
		Reason:    reason,
		Price:     bar.Close,
	}
}

func (s *MACDTrendFollow) crossoverConfidence(macd, histogram float64) float64 {
	if macd == 0 {
		return 0.5
	}
	confidence := math.Abs(histogram) / math.Abs(macd)
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
