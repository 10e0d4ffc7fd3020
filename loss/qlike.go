// Package loss provides loss functions for scoring variance forecasts.
package loss

import (
	"fmt"
	"math"

	"github.com/sartorproj/govol/volatility"
)

// QLIKE returns the pointwise quasi-likelihood loss
//
//	loss[i] = log(f[i]) + r[i]/f[i]
//
// for realized variances r and forecast variances f. Both inputs are on the
// variance scale; square volatility forecasts before calling. Every forecast
// must be positive and every realized value non-negative. Averaging the
// result is left to the caller.
func QLIKE(realized, forecast []float64) ([]float64, error) {
	if err := check(realized, forecast, false); err != nil {
		return nil, err
	}

	out := make([]float64, len(forecast))
	for i, f := range forecast {
		out[i] = math.Log(f) + realized[i]/f
	}
	return out, nil
}

// QLIKERatio returns the normalized QLIKE loss
//
//	loss[i] = r[i]/f[i] - log(r[i]/f[i]) - 1
//
// It differs from QLIKE by a term that depends only on r, so both rank
// forecasts identically, but this form is zero at a perfect forecast.
// Realized values must be strictly positive.
func QLIKERatio(realized, forecast []float64) ([]float64, error) {
	if err := check(realized, forecast, true); err != nil {
		return nil, err
	}

	out := make([]float64, len(forecast))
	for i, f := range forecast {
		ratio := realized[i] / f
		out[i] = ratio - math.Log(ratio) - 1
	}
	return out, nil
}

func check(realized, forecast []float64, positiveRealized bool) error {
	if len(realized) != len(forecast) {
		return fmt.Errorf("qlike: %w: realized and forecast lengths differ (%d != %d)",
			volatility.ErrInvalidInput, len(realized), len(forecast))
	}
	for i, f := range forecast {
		if !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("qlike: %w: forecast variance at index %d must be positive and finite, got %v",
				volatility.ErrInvalidInput, i, f)
		}
	}
	for i, r := range realized {
		bad := math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || (positiveRealized && r == 0)
		if bad {
			return fmt.Errorf("qlike: %w: realized variance at index %d is invalid, got %v",
				volatility.ErrInvalidInput, i, r)
		}
	}
	return nil
}
