// Package timeseries provides price and return series for volatility modeling.
//
// # Creating a Series
//
//	prices := timeseries.New([]float64{100, 101.5, 99.8, 102.3})
//
// # Returns
//
// Volatility models consume returns, not prices:
//
//	logRet, err := prices.LogReturns()    // ln(p[t]/p[t-1])
//	simple, err := prices.SimpleReturns() // p[t]/p[t-1] - 1
//
// Squared returns are the usual realized variance proxy when scoring
// forecasts:
//
//	realized := logRet.Squared()
//
// # Loading from CSV
//
// The value column is detected from common price headers (adj_close, close,
// price, ...) unless one is given:
//
//	series, err := timeseries.LoadCSVColumn("spy.csv", "close")
//
//	// Long-format files with several tickers
//	series, err := timeseries.LoadCSVFiltered("prices.csv", "symbol", "SPY", "close")
//
// # Train/Test Split
//
//	train, test := returns.Split(60) // hold out the last 60 observations
package timeseries
