package consolidator

import (
	"math"
	"strings"

	"github.com/specfuse/specfuse/document"
)

// CO2 estimation constants, in grams per call. Purely illustrative metadata
// carried as x-co2-impact; downstream emitters treat it as pass-through.
const (
	co2Baseline = 0.1
	co2Body     = 0.1
	co2PerParam = 0.01
	// consolidationBenefit is the fixed 10% reduction credited to a
	// consolidated call pair.
	consolidationBenefit = 0.9
)

// methodWeights maps HTTP methods to their estimate contribution.
var methodWeights = map[string]float64{
	"GET":    0.05,
	"POST":   0.2,
	"PUT":    0.2,
	"DELETE": 0.15,
}

// EstimateCO2 computes the per-call estimate for one operation:
// baseline + method weight + 0.01 per parameter + 0.1 when a body is present,
// rounded to 3 decimals.
func EstimateCO2(op *document.Operation) float64 {
	weight, ok := methodWeights[strings.ToUpper(op.Method)]
	if !ok {
		weight = co2Baseline
	}
	estimate := co2Baseline + weight + co2PerParam*float64(len(op.Parameters))
	if op.RequestBody != nil {
		estimate += co2Body
	}
	return round3(estimate)
}

// ConsolidatedCO2 credits the fixed consolidation benefit against the sum of
// two per-call estimates.
func ConsolidatedCO2(e1, e2 float64) float64 {
	return round3(consolidationBenefit * (e1 + e2))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
