// Package ewma implements the exponentially weighted moving average volatility model.
package ewma

import (
	"fmt"
	"math"

	"github.com/creasty/defaults"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/govol/volatility"
)

// Config holds the EWMA hyperparameters.
type Config struct {
	// Decay is the weight λ on the previous variance. Values close to 1 give
	// the estimator a long memory.
	Decay float64 `default:"0.94" validate:"gt=0,lt=1"`
}

// DefaultConfig returns the RiskMetrics daily configuration (λ = 0.94).
func DefaultConfig() Config {
	var cfg Config
	// Only fails for non-pointer targets.
	_ = defaults.Set(&cfg)
	return cfg
}

// fit is the immutable result of a successful Fit.
type fit struct {
	returns    []float64
	variance   []float64
	volatility []float64
}

// Model is an EWMA volatility model.
//
//	var[0] = sample variance of the series
//	var[t] = λ·var[t-1] + (1-λ)·r[t-1]²
//
// The model is unfitted until Fit succeeds.
type Model struct {
	cfg    Config
	logger *zap.Logger
	state  *fit
}

var _ volatility.Model = (*Model)(nil)

// New creates an EWMA model. An out-of-range decay fails with
// volatility.ErrInvalidConfig.
func New(cfg Config, opts ...volatility.Option) (*Model, error) {
	if err := volatility.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("ewma: %w", err)
	}
	o := volatility.ApplyOptions(opts...)
	return &Model{cfg: cfg, logger: o.Logger}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string {
	return fmt.Sprintf("EWMA(%g)", m.cfg.Decay)
}

// Config returns the model's hyperparameters.
func (m *Model) Config() Config {
	return m.cfg
}

// Fitted reports whether Fit has succeeded at least once.
func (m *Model) Fitted() bool {
	return m.state != nil
}

// Fit computes the in-sample variance path over returns. It replaces any
// previous fit; on error the model keeps its prior state.
func (m *Model) Fit(returns []float64) (volatility.Model, error) {
	if err := volatility.ValidateReturns(returns, 1); err != nil {
		return nil, fmt.Errorf("ewma: %w", err)
	}

	r := make([]float64, len(returns))
	copy(r, returns)

	lam := m.cfg.Decay
	variance := make([]float64, len(r))
	variance[0] = seed(r)
	for t := 1; t < len(r); t++ {
		variance[t] = lam*variance[t-1] + (1-lam)*r[t-1]*r[t-1]
	}

	vol := make([]float64, len(variance))
	for i, v := range variance {
		vol[i] = math.Sqrt(v)
	}

	m.state = &fit{returns: r, variance: variance, volatility: vol}

	m.logger.Debug("ewma fitted",
		zap.Float64("decay", lam),
		zap.Int("n_obs", len(r)),
		zap.Float64("seed_variance", variance[0]),
		zap.Float64("last_volatility", vol[len(vol)-1]),
	)
	return m, nil
}

// seed returns the sample variance of r. A single observation has no sample
// variance, so its square is used instead.
func seed(r []float64) float64 {
	if len(r) < 2 {
		return r[0] * r[0]
	}
	return math.Max(0, stat.Variance(r, nil))
}

// Predict returns h copies of the last in-sample volatility. The recursion has
// no mean reversion, so the variance forecast is flat at every horizon.
func (m *Model) Predict(h int) ([]float64, error) {
	if m.state == nil {
		return nil, fmt.Errorf("ewma: %w", volatility.ErrNotFitted)
	}
	if err := volatility.ValidateHorizon(h); err != nil {
		return nil, fmt.Errorf("ewma: %w", err)
	}
	vol := m.state.volatility
	return volatility.Flat(vol[len(vol)-1], h), nil
}

// Volatility returns a copy of the in-sample volatility path (length N).
func (m *Model) Volatility() ([]float64, error) {
	if m.state == nil {
		return nil, fmt.Errorf("ewma: %w", volatility.ErrNotFitted)
	}
	return clone(m.state.volatility), nil
}

// Variance returns a copy of the in-sample variance path.
func (m *Model) Variance() ([]float64, error) {
	if m.state == nil {
		return nil, fmt.Errorf("ewma: %w", volatility.ErrNotFitted)
	}
	return clone(m.state.variance), nil
}

// Summary returns a summary of the fitted model, or nil if unfitted.
func (m *Model) Summary() *volatility.Summary {
	if m.state == nil {
		return nil
	}
	return volatility.NewSummary(m.Name(), map[string]float64{"decay": m.cfg.Decay},
		m.state.returns, m.state.volatility)
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
