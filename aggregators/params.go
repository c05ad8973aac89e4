// Package aggregators provides the named statistics of the engine, such as sum, mean and min,
// and a Registry which resolves them by name.
package aggregators

import (
	"fmt"
	"math"

	"github.com/go-sif/columnar/config"
)

// Params configures the construction of an Aggregator
type Params struct {
	// Percentile is the requested percentile, within [0, 100], for percentile and percentileValue
	Percentile float64
	// SkipNaN drops NaN values instead of propagating them
	SkipNaN bool
	// DDOF is the delta degrees of freedom of var and std
	DDOF int
	// Parallelism bounds the number of columns aggregated concurrently by Two-Step aggregators
	Parallelism int
}

// ParamsFromOptions derives default Params from configuration
func ParamsFromOptions(opts *config.Options) Params {
	if opts == nil {
		opts = config.Default()
	}
	return Params{
		Percentile:  50,
		SkipNaN:     opts.SkipNaN,
		DDOF:        opts.DDOF,
		Parallelism: opts.Parallelism,
	}
}

func (p Params) checkPercentile() error {
	if math.IsNaN(p.Percentile) || p.Percentile < 0 || p.Percentile > 100 {
		return fmt.Errorf("Percentile must be in range [0, 100], got %v", p.Percentile)
	}
	return nil
}
