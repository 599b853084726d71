// Package indicator provides stateless technical indicator calculations over
// bar sequences. All functions evaluate as of an inclusive end index and are
// safe for concurrent use.
package indicator

import (
	"github.com/yourorg/trading-dashboard/internal/model"
)

// SMA returns the simple moving average of closing prices over the trailing
// window ending at endIndex. Returns 0 while fewer than period bars are
// available; callers must treat 0 as "not ready", not as a price.
func SMA(bars []model.Bar, period, endIndex int) float64 {
	if period <= 0 || endIndex < period-1 {
		return 0
	}

	sum := 0.0
	for i := endIndex - period + 1; i <= endIndex; i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// EMA returns the exponential moving average of closing prices at endIndex,
// seeded with the SMA at the first valid index. Returns 0 while fewer than
// period bars are available.
func EMA(bars []model.Bar, period, endIndex int) float64 {
	if period <= 0 || endIndex < period-1 {
		return 0
	}

	multiplier := 2.0 / float64(period+1)
	ema := SMA(bars, period, period-1)
	for i := period; i <= endIndex; i++ {
		ema = (bars[i].Close-ema)*multiplier + ema
	}
	return ema
}

// RSI returns the relative strength index over the trailing period deltas
// ending at endIndex, using a simple average of gains and losses. Returns the
// neutral value 50 while fewer than period+1 bars are available, and 100 when
// the window contains no losses.
func RSI(bars []model.Bar, period, endIndex int) float64 {
	if period <= 0 || endIndex < period {
		return 50
	}

	var gains, losses float64
	for i := endIndex - period + 1; i <= endIndex; i++ {
		delta := bars[i].Close - bars[i-1].Close
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the MACD line, signal line and histogram at endIndex for the
// given fast/slow/signal periods. The components are 0 during warm-up, per
// the EMA not-ready convention.
func MACD(bars []model.Bar, fastPeriod, slowPeriod, signalPeriod, endIndex int) (macd, signal, histogram float64) {
	if endIndex < slowPeriod-1 {
		return 0, 0, 0
	}

	// The signal line is an EMA of the MACD line, so the MACD series has to
	// be materialized from the first index where the slow EMA is valid.
	macdSeries := make([]float64, 0, endIndex-slowPeriod+2)
	for i := slowPeriod - 1; i <= endIndex; i++ {
		macdSeries = append(macdSeries, EMA(bars, fastPeriod, i)-EMA(bars, slowPeriod, i))
	}

	macd = macdSeries[len(macdSeries)-1]
	signal = emaSeries(macdSeries, signalPeriod)
	histogram = macd - signal
	return macd, signal, histogram
}

// emaSeries computes the EMA of a raw float series at its last element,
// seeded with the mean of the first period values.
func emaSeries(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}

	sum := 0.0
	for _, v := range values[:period] {
		sum += v
	}
	ema := sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for _, v := range values[period:] {
		ema = (v-ema)*multiplier + ema
	}
	return ema
}

// HighestHigh returns the maximum high over the trailing window ending at
// endIndex, clamped to available history at the start of the series.
func HighestHigh(bars []model.Bar, period, endIndex int) float64 {
	start := endIndex - period + 1
	if start < 0 {
		start = 0
	}

	highest := bars[start].High
	for i := start + 1; i <= endIndex; i++ {
		if bars[i].High > highest {
			highest = bars[i].High
		}
	}
	return highest
}

// LowestLow returns the minimum low over the trailing window ending at
// endIndex, clamped to available history at the start of the series.
func LowestLow(bars []model.Bar, period, endIndex int) float64 {
	start := endIndex - period + 1
	if start < 0 {
		start = 0
	}

	lowest := bars[start].Low
	for i := start + 1; i <= endIndex; i++ {
		if bars[i].Low < lowest {
			lowest = bars[i].Low
		}
	}
	return lowest
}
