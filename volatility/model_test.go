package volatility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testConfig struct {
	Decay  float64 `validate:"gt=0,lt=1"`
	Window int     `validate:"gte=2"`
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(testConfig{Decay: 0.5, Window: 2}))

	err := ValidateConfig(testConfig{Decay: 1, Window: 0})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Decay must be less than 1")
	assert.Contains(t, err.Error(), "Window must be at least 2")

	assert.ErrorIs(t, ValidateConfig(42), ErrInvalidConfig)
}

func TestValidateReturns(t *testing.T) {
	assert.NoError(t, ValidateReturns([]float64{0, 0, 0}, 1))
	assert.NoError(t, ValidateReturns([]float64{0.1}, 0))

	assert.ErrorIs(t, ValidateReturns(nil, 1), ErrInvalidInput)
	assert.ErrorIs(t, ValidateReturns([]float64{1, 2}, 3), ErrInvalidInput)
	assert.ErrorIs(t, ValidateReturns([]float64{1, math.NaN()}, 1), ErrInvalidInput)
	assert.ErrorIs(t, ValidateReturns([]float64{math.Inf(1)}, 1), ErrInvalidInput)
}

func TestValidateHorizon(t *testing.T) {
	assert.NoError(t, ValidateHorizon(1))
	assert.ErrorIs(t, ValidateHorizon(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidateHorizon(-4), ErrInvalidInput)
}

func TestFlat(t *testing.T) {
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, Flat(0.2, 3))
}

func TestMissing(t *testing.T) {
	assert.True(t, IsMissing(Missing()))
	assert.False(t, IsMissing(0))

	last, ok := LastValid([]float64{Missing(), 0.1, 0.3, Missing()})
	assert.True(t, ok)
	assert.Equal(t, 0.3, last)

	_, ok = LastValid([]float64{Missing()})
	assert.False(t, ok)
}

func TestStandardize(t *testing.T) {
	z := Standardize([]float64{0.02, 0.01, -0.03, 0.05}, []float64{Missing(), 0.01, 0.015, 0})
	assert.InDeltaSlice(t, []float64{1, -2}, z, 1e-12)
}

func TestNewSummary(t *testing.T) {
	returns := make([]float64, 30)
	path := make([]float64, 30)
	for i := range returns {
		returns[i] = 0.01 * math.Sin(float64(i))
		path[i] = 0.01 + 0.001*float64(i%3)
	}
	path[0] = Missing()

	s := NewSummary("test", map[string]float64{"k": 1}, returns, path)

	assert.Equal(t, 30, s.NObs)
	assert.Equal(t, 29, s.NValid)
	assert.Equal(t, path[29], s.LastVolatility)
	assert.NotNil(t, s.ARCHTest)
}

func TestNewSummaryShortSeries(t *testing.T) {
	s := NewSummary("short", nil, []float64{0.01, 0.02}, []float64{0.01, 0.01})
	assert.Nil(t, s.ARCHTest)
}

func TestApplyOptions(t *testing.T) {
	o := ApplyOptions()
	require.NotNil(t, o.Logger)

	l := zap.NewExample()
	assert.Same(t, l, ApplyOptions(WithLogger(l)).Logger)
	assert.NotNil(t, ApplyOptions(WithLogger(nil)).Logger)
}
