package rolling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/govol/volatility"
)

func sampleReturns(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 0.02 * math.Cos(float64(i)*2.3)
	}
	return values
}

func sampleStd(x []float64) float64 {
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	ss := 0.0
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

func TestNew(t *testing.T) {
	m, err := New(Config{Window: 5})
	require.NoError(t, err)

	assert.Equal(t, "Rolling(5)", m.Name())
	assert.Equal(t, 5, m.Config().Window)
	assert.False(t, m.Fitted())
}

func TestNewInvalidWindow(t *testing.T) {
	for _, w := range []int{0, -3, 1} {
		m, err := New(Config{Window: w})
		assert.Nil(t, m)
		assert.ErrorIs(t, err, volatility.ErrInvalidConfig, "window=%d", w)
	}
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, 21, DefaultConfig().Window)
}

func TestFitWarmUpAndValues(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, 0.0, 0.03, -0.01}
	w := 3
	m, err := New(Config{Window: w})
	require.NoError(t, err)

	_, err = m.Fit(returns)
	require.NoError(t, err)

	vol, err := m.Volatility()
	require.NoError(t, err)
	require.Len(t, vol, len(returns))

	for i := 0; i < w-1; i++ {
		assert.True(t, volatility.IsMissing(vol[i]), "index %d should be missing", i)
	}
	for i := w - 1; i < len(returns); i++ {
		assert.InDelta(t, sampleStd(returns[i-w+1:i+1]), vol[i], 1e-15, "index %d", i)
	}
}

func TestFitPathProperties(t *testing.T) {
	returns := sampleReturns(120)
	for _, w := range []int{2, 5, 21, 120} {
		m, err := New(Config{Window: w})
		require.NoError(t, err)

		_, err = m.Fit(returns)
		require.NoError(t, err)

		vol, _ := m.Volatility()
		require.Len(t, vol, len(returns))
		for i, v := range vol {
			if i < w-1 {
				assert.True(t, volatility.IsMissing(v))
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0, "w=%d index=%d", w, i)
		}
	}
}

func TestFitWindowEqualsLength(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02}
	m, _ := New(Config{Window: 3})
	_, err := m.Fit(returns)
	require.NoError(t, err)

	forecast, err := m.Predict(2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{sampleStd(returns), sampleStd(returns)}, forecast, 1e-15)
}

func TestFitTooShort(t *testing.T) {
	m, _ := New(Config{Window: 5})
	_, err := m.Fit([]float64{0.01, 0.02, 0.03})
	assert.ErrorIs(t, err, volatility.ErrInvalidInput)
	assert.False(t, m.Fitted())
}

func TestFitInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		returns []float64
	}{
		{"empty", []float64{}},
		{"nan", []float64{0.01, 0.02, math.NaN(), 0.01}},
		{"inf", []float64{math.Inf(1), 0.02, 0.03}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := New(Config{Window: 2})
			_, err := m.Fit(tt.returns)
			assert.ErrorIs(t, err, volatility.ErrInvalidInput)
		})
	}
}

func TestFailedFitKeepsPriorState(t *testing.T) {
	m, _ := New(Config{Window: 3})
	_, err := m.Fit(sampleReturns(10))
	require.NoError(t, err)
	before, _ := m.Volatility()

	_, err = m.Fit([]float64{0.01, 0.02})
	require.ErrorIs(t, err, volatility.ErrInvalidInput)

	after, err := m.Volatility()
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		if volatility.IsMissing(before[i]) {
			assert.True(t, volatility.IsMissing(after[i]))
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestPredictFlat(t *testing.T) {
	returns := sampleReturns(60)
	m, _ := New(Config{Window: 10})
	_, err := m.Fit(returns)
	require.NoError(t, err)

	vol, _ := m.Volatility()
	last, ok := volatility.LastValid(vol)
	require.True(t, ok)

	for h := 1; h <= len(returns); h++ {
		forecast, err := m.Predict(h)
		require.NoError(t, err)
		require.Len(t, forecast, h)
		for _, f := range forecast {
			assert.Equal(t, last, f)
		}
	}
}

func TestNotFitted(t *testing.T) {
	m, _ := New(DefaultConfig())

	_, err := m.Predict(1)
	assert.ErrorIs(t, err, volatility.ErrNotFitted)

	_, err = m.Volatility()
	assert.ErrorIs(t, err, volatility.ErrNotFitted)

	assert.Nil(t, m.Summary())
}

func TestPredictInvalidHorizon(t *testing.T) {
	m, _ := New(Config{Window: 2})
	_, err := m.Fit([]float64{0.01, 0.02})
	require.NoError(t, err)

	_, err = m.Predict(0)
	assert.ErrorIs(t, err, volatility.ErrInvalidInput)
}

func TestFitAllZeroReturns(t *testing.T) {
	m, _ := New(Config{Window: 4})
	_, err := m.Fit(make([]float64, 10))
	require.NoError(t, err)

	forecast, err := m.Predict(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, forecast)
}

func TestSummary(t *testing.T) {
	m, _ := New(Config{Window: 5})
	_, err := m.Fit(sampleReturns(40))
	require.NoError(t, err)

	s := m.Summary()
	require.NotNil(t, s)

	assert.Equal(t, "Rolling(5)", s.Name)
	assert.Equal(t, 5.0, s.Params["window"])
	assert.Equal(t, 40, s.NObs)
	assert.Equal(t, 36, s.NValid)
}

func TestModelInterface(t *testing.T) {
	var model volatility.Model
	model, err := New(Config{Window: 3})
	require.NoError(t, err)

	fitted, err := model.Fit(sampleReturns(10))
	require.NoError(t, err)
	assert.Same(t, model, fitted)
}
