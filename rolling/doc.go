// Package rolling implements a fixed-window sample volatility model.
//
//	model, _ := rolling.New(rolling.Config{Window: 21})
//	model.Fit(returns)
//	vol, _ := model.Volatility() // first 20 entries are missing markers
package rolling
