// Package strategy defines the Strategy interface for rule-based trading
// strategies and a registry for constructing them by identifier.
package strategy

import (
	"errors"

	"github.com/yourorg/trading-dashboard/internal/model"
)

// ErrStrategyNotFound is returned when a strategy identifier is not registered.
var ErrStrategyNotFound = errors.New("strategy not found")

// Strategy is the interface that all trading strategies implement. Analyze
// maps a bar sequence and a current index to a single signal, using only bars
// at or before that index. Implementations may hold internal state across
// Analyze calls; an instance must therefore never be shared between runs.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Description returns a human-readable summary including the resolved
	// parameter values.
	Description() string

	// Parameters returns a copy of the resolved parameter values.
	Parameters() map[string]float64

	// Analyze evaluates the strategy at the given bar index. The index must
	// be in range for the bar slice; out-of-range indices are a caller
	// contract violation.
	Analyze(bars []model.Bar, index int) model.Signal
}

// paramOr resolves a parameter from the supplied overrides, falling back to
// the default. Values are copied out at construction time so a strategy never
// aliases the caller's map.
func paramOr(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}
