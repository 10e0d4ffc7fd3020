// Package govol provides baseline conditional volatility models and forecast
// evaluation for financial return series.
//
// # Features
//
//   - EWMA (RiskMetrics-style) volatility model
//   - Rolling-window sample volatility model
//   - QLIKE loss for scoring variance forecasts
//   - Return construction and CSV loading for price series
//   - McLeod-Li test for remaining ARCH effects
//
// # Quick Start
//
// Fit an EWMA model and forecast:
//
//	model, err := ewma.New(ewma.DefaultConfig()) // λ = 0.94
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := model.Fit(returns); err != nil {
//	    log.Fatal(err)
//	}
//	forecast, _ := model.Predict(10)
//
// Score a forecast against realized variance (squared returns work as a
// proxy). QLIKE expects variances, so square volatility forecasts first:
//
//	losses, err := loss.QLIKE(realizedVar, forecastVar)
//
// # Packages
//
//   - volatility: the Model interface, error kinds and shared helpers
//   - ewma: exponentially weighted moving average model
//   - rolling: fixed-window sample volatility model
//   - loss: forecast loss functions
//   - stats: autocorrelation diagnostics
//   - timeseries: price and return series
//
// # References
//
//   - J.P. Morgan/Reuters (1996). RiskMetrics Technical Document, 4th ed.
//   - Patton, A. J. (2011). Volatility forecast comparison using imperfect
//     volatility proxies. Journal of Econometrics, 160(1), 246-256.
package govol
