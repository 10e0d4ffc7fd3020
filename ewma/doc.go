// Package ewma implements the exponentially weighted moving average (EWMA)
// volatility model popularized by RiskMetrics.
//
// The conditional variance follows
//
//	σ²[0] = sample variance of the full series
//	σ²[t] = λ·σ²[t-1] + (1-λ)·r[t-1]²
//
// where λ ∈ (0,1) is the decay. The in-sample path covers every position of
// the input.
//
// # Basic Usage
//
//	model, err := ewma.New(ewma.Config{Decay: 0.94})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := model.Fit(returns); err != nil {
//	    log.Fatal(err)
//	}
//
//	vol, _ := model.Volatility()  // σ[t], same length as returns
//	forecast, _ := model.Predict(10)
//
// The recursion has no mean-reverting term, so every forecast step equals the
// last in-sample volatility.
package ewma
