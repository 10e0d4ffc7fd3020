package volatility

import (
	"github.com/sartorproj/govol/stats"
	"github.com/sartorproj/govol/timeseries"
)

// archLags is the number of lags used by the McLeod-Li test in summaries.
const archLags = 10

// Summary describes a fitted model.
type Summary struct {
	Name           string
	Params         map[string]float64
	NObs           int     // Length of the fitted return series
	NValid         int     // Non-missing positions in the volatility path
	LastVolatility float64 // Value every Predict call repeats
	// ARCHTest is the McLeod-Li test on standardized returns. A small p-value
	// means the model left volatility clustering unexplained. Nil when there
	// are too few standardized returns to run the test.
	ARCHTest *stats.LjungBoxResult
}

// NewSummary builds a Summary from a fitted model's inputs and path.
func NewSummary(name string, params map[string]float64, returns, path []float64) *Summary {
	valid := 0
	for _, v := range path {
		if !IsMissing(v) {
			valid++
		}
	}
	last, _ := LastValid(path)

	z := Standardize(returns, path)

	return &Summary{
		Name:           name,
		Params:         params,
		NObs:           len(returns),
		NValid:         valid,
		LastVolatility: last,
		ARCHTest:       stats.McLeodLi(timeseries.New(z), archLags),
	}
}
