package stats

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/govol/timeseries"
)

// minObs is the smallest series the portmanteau tests accept.
const minObs = 10

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// Significant reports whether the null of no autocorrelation is rejected at alpha.
func (r *LjungBoxResult) Significant(alpha float64) bool {
	return r != nil && r.PValue < alpha
}

// LjungBox performs the Ljung-Box test for autocorrelation up to lag h.
// fitdf is the number of parameters estimated by the model that produced
// the series and is subtracted from the degrees of freedom.
// Returns nil for series shorter than 10 observations or constant series.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < minObs || lags < 1 {
		return nil
	}

	if lags >= n {
		lags = n - 1
	}

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	chi2 := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi2.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}

// McLeodLi tests for ARCH effects: the Ljung-Box test applied to squared
// demeaned values. Volatility clustering in a return series shows up as a
// small p-value.
func McLeodLi(series *timeseries.Series, lags int) *LjungBoxResult {
	if series.Len() < minObs {
		return nil
	}

	mean := series.Mean()
	sq := make([]float64, series.Len())
	for i, v := range series.Values {
		d := v - mean
		sq[i] = d * d
	}

	return LjungBox(timeseries.New(sq), lags, 0)
}
