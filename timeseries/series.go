// Package timeseries provides price and return series data structures.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Finite reports whether every value is neither NaN nor infinite.
func (s *Series) Finite() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Diff calculates the first difference of the series.
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the n-th order difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	return &Series{
		Timestamps: s.tail(n, len(result)),
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// Log applies the natural logarithm. Non-positive values become NaN.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			result[i] = math.Log(v)
		} else {
			result[i] = math.NaN()
		}
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_log",
	}
}

// LogReturns converts a price series into log returns ln(p[t]/p[t-1]).
// The result is one observation shorter and stamped with the later timestamp.
func (s *Series) LogReturns() (*Series, error) {
	if err := s.checkPrices(); err != nil {
		return nil, err
	}
	r := s.Log().Diff()
	r.Name = s.Name + "_logret"
	return r, nil
}

// SimpleReturns converts a price series into simple returns p[t]/p[t-1] - 1.
func (s *Series) SimpleReturns() (*Series, error) {
	if err := s.checkPrices(); err != nil {
		return nil, err
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		result[i-1] = s.Values[i]/s.Values[i-1] - 1
	}

	return &Series{
		Timestamps: s.tail(1, len(result)),
		Values:     result,
		Name:       s.Name + "_ret",
	}, nil
}

func (s *Series) checkPrices() error {
	if len(s.Values) < 2 {
		return fmt.Errorf("need at least 2 prices to compute returns, got %d", len(s.Values))
	}
	for i, v := range s.Values {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("price at index %d must be positive and finite, got %v", i, v)
		}
	}
	return nil
}

// Squared returns a series of squared values, e.g. realized variance proxies
// built from returns.
func (s *Series) Squared() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		result[i] = v * v
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_sq",
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Split divides the series into a head and a tail of length testSize.
func (s *Series) Split(testSize int) (train, test *Series) {
	cut := len(s.Values) - testSize
	return s.Slice(0, cut), s.Slice(cut, len(s.Values))
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// tail copies n timestamps starting at offset, or zero times if unavailable.
func (s *Series) tail(offset, n int) []time.Time {
	timestamps := make([]time.Time, n)
	if len(s.Timestamps) >= offset+n {
		copy(timestamps, s.Timestamps[offset:offset+n])
	}
	return timestamps
}
