package aggregators

import "github.com/go-sif/columnar"

// Median returns the "median" Aggregator, the R8 interpolated 0.5-quantile of numbers
func Median(p Params) columnar.Aggregator {
	agg, _ := Quantile("median", 0.5, R8, p)
	return agg
}

// MedianValue returns the "medianValue" Aggregator, which selects the R3 0.5-quantile of comparables
func MedianValue(p Params) columnar.Aggregator {
	agg, _ := QuantileValue("medianValue", 0.5, p)
	return agg
}

// Percentile returns the "percentile" Aggregator, the R8 interpolated p.Percentile'th percentile of numbers
func Percentile(p Params) (columnar.Aggregator, error) {
	if err := p.checkPercentile(); err != nil {
		return nil, err
	}
	return Quantile("percentile", p.Percentile/100, R8, p)
}

// PercentileValue returns the "percentileValue" Aggregator, which selects the R3 p.Percentile'th percentile of comparables
func PercentileValue(p Params) (columnar.Aggregator, error) {
	if err := p.checkPercentile(); err != nil {
		return nil, err
	}
	return QuantileValue("percentileValue", p.Percentile/100, p)
}
