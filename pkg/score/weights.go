// Package score aggregates metric results into composite scores,
// quality bands, and worst-offender rankings.
package score

import (
	"errors"
	"fmt"

	"github.com/messdev/mess/pkg/metric"
)

// Weights holds the per-metric weights. The nominal defaults sum to
// 113; aggregation renormalizes, so any positive table works.
type Weights struct {
	Complexity    float64 `koanf:"complexity" json:"complexity"`
	State         float64 `koanf:"state" json:"state"`
	Comments      float64 `koanf:"comments" json:"comments"`
	Duplication   float64 `koanf:"duplication" json:"duplication"`
	Structure     float64 `koanf:"structure" json:"structure"`
	ErrorHandling float64 `koanf:"error_handling" json:"error_handling"`
	Naming        float64 `koanf:"naming" json:"naming"`
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		Complexity:    30,
		State:         20,
		Comments:      15,
		Duplication:   15,
		Structure:     15,
		ErrorHandling: 10,
		Naming:        8,
	}
}

// ForMetric returns the weight of a metric, 0 for unknown IDs.
func (w Weights) ForMetric(id metric.ID) float64 {
	switch id {
	case metric.Complexity:
		return w.Complexity
	case metric.State:
		return w.State
	case metric.Comments:
		return w.Comments
	case metric.Duplication:
		return w.Duplication
	case metric.Structure:
		return w.Structure
	case metric.ErrorHandling:
		return w.ErrorHandling
	case metric.Naming:
		return w.Naming
	default:
		return 0
	}
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Complexity + w.State + w.Comments + w.Duplication +
		w.Structure + w.ErrorHandling + w.Naming
}

// Validate rejects weight tables that cannot be renormalized.
func (w Weights) Validate() error {
	for _, id := range metric.All {
		if w.ForMetric(id) < 0 {
			return fmt.Errorf("weight for %s is negative", id)
		}
	}
	if w.Sum() <= 0 {
		return errors.New("weights must sum to a positive value")
	}
	return nil
}
