// Package stats provides autocorrelation diagnostics for return series.
//
// # Autocorrelation
//
//	acf := stats.ACF(returns, 20)
//
//	// With 95% confidence bounds
//	res := stats.ACFWithConfidence(returns.Squared(), 20)
//	lags := stats.SignificantLags(res.Values, res.ConfBounds)
//
// # Portmanteau Tests
//
//	// Ljung-Box: H0 is no autocorrelation up to the given lag
//	lb := stats.LjungBox(returns, 10, 0)
//
//	// McLeod-Li: Ljung-Box on squared demeaned values, a test for ARCH
//	// effects (volatility clustering)
//	ml := stats.McLeodLi(returns, 10)
//	if ml.Significant(0.05) {
//	    // returns show volatility clustering
//	}
//
// Both tests return nil for series shorter than 10 observations.
package stats
