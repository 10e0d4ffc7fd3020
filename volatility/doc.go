// Package volatility defines the contract shared by all volatility estimators.
//
// Every estimator follows the same lifecycle:
//
//	model, err := ewma.New(ewma.Config{Decay: 0.94}) // ErrInvalidConfig on bad λ
//	_, err = model.Predict(5)                         // ErrNotFitted
//	_, err = model.Fit(returns)                       // ErrInvalidInput on empty or non-finite data
//	forecast, err := model.Predict(5)                 // flat forecast of length 5
//
// Errors wrap the sentinel values in this package, so callers test them with
// errors.Is:
//
//	if errors.Is(err, volatility.ErrNotFitted) {
//	    // fit first
//	}
//
// Windowed estimators cannot produce a value for the first positions of the
// path. Those positions hold a missing marker; use IsMissing to detect it and
// LastValid to find the most recent estimate.
//
// Model instances are not safe for concurrent Fit calls. Distinct instances
// share no state.
package volatility
