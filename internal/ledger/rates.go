package ledger

import (
	"sync"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
)

// RateSource holds the process-wide rate configuration. Updating it affects
// only records created afterwards; existing records keep the rates that were
// applied to them.
type RateSource struct {
	mu      sync.RWMutex
	current models.RateConfig
}

// NewRateSource seeds a rate source with the initial configuration.
func NewRateSource(initial models.RateConfig) *RateSource {
	return &RateSource{current: initial}
}

// Current returns the rates in force right now.
func (s *RateSource) Current() models.RateConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the active rates. All three rates must be positive.
func (s *RateSource) Update(cfg models.RateConfig) error {
	if cfg.FuelPricePerLiter <= 0 {
		return invalid("fuel_price_per_liter", "must be positive")
	}
	if cfg.RevenuePerTon <= 0 {
		return invalid("revenue_per_ton", "must be positive")
	}
	if cfg.LaborCostPerTon <= 0 {
		return invalid("labor_cost_per_ton", "must be positive")
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return nil
}
