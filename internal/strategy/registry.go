package strategy

import (
	"fmt"
	"sort"

	"github.com/yourorg/trading-dashboard/internal/model"
)

// Registry constructs strategies by identifier. Every New call returns a
// fresh instance so internal strategy state never leaks between runs.
type Registry struct {
	constructors map[string]func(params map[string]float64) Strategy
}

// NewRegistry creates a registry populated with the built-in strategies.
func NewRegistry() *Registry {
	return &Registry{
		constructors: map[string]func(params map[string]float64) Strategy{
			"sma_crossover": func(p map[string]float64) Strategy { return NewSMACrossover(p) },
			"rsi_threshold": func(p map[string]float64) Strategy { return NewRSIThreshold(p) },
			"macd_trend_follow": func(p map[string]float64) Strategy {
				return NewMACDTrendFollow(p)
			},
		},
	}
}

// New constructs a fresh strategy instance for the given identifier, with the
// supplied parameter overrides merged onto the strategy's defaults. The
// overrides map is read once and never retained.
func (r *Registry) New(id string, params map[string]float64) (Strategy, error) {
	constructor, ok := r.constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotFound, id)
	}
	return constructor(params), nil
}

// Get returns the metadata for one registered strategy.
func (r *Registry) Get(id string) (model.StrategyInfo, error) {
	s, err := r.New(id, nil)
	if err != nil {
		return model.StrategyInfo{}, err
	}
	return model.StrategyInfo{
		ID:          s.Name(),
		Name:        s.Name(),
		Description: s.Description(),
		Parameters:  s.Parameters(),
	}, nil
}

// List returns metadata for all registered strategies, sorted by identifier.
func (r *Registry) List() []model.StrategyInfo {
	infos := make([]model.StrategyInfo, 0, len(r.constructors))
	for id := range r.constructors {
		info, _ := r.Get(id)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
