// Package rolling implements the fixed-window sample volatility model.
package rolling

import (
	"fmt"
	"math"

	"github.com/creasty/defaults"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/govol/volatility"
)

// Config holds the rolling-window hyperparameters.
type Config struct {
	// Window is the number of most recent returns in each estimate. The
	// sample variance needs at least two.
	Window int `default:"21" validate:"gte=2"`
}

// DefaultConfig returns a one-trading-month window (21 returns).
func DefaultConfig() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	return cfg
}

type fit struct {
	returns    []float64
	volatility []float64
	last       float64
}

// Model estimates volatility as the sample standard deviation (n-1
// denominator) of the most recent Window returns.
//
// The first Window-1 positions of the path have no estimate and hold the
// missing marker (see volatility.IsMissing), so the path stays aligned with
// the input series.
type Model struct {
	cfg    Config
	logger *zap.Logger
	state  *fit
}

var _ volatility.Model = (*Model)(nil)

// New creates a rolling-window model. A window below 2 fails with
// volatility.ErrInvalidConfig.
func New(cfg Config, opts ...volatility.Option) (*Model, error) {
	if err := volatility.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("rolling: %w", err)
	}
	o := volatility.ApplyOptions(opts...)
	return &Model{cfg: cfg, logger: o.Logger}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string {
	return fmt.Sprintf("Rolling(%d)", m.cfg.Window)
}

// Config returns the model's hyperparameters.
func (m *Model) Config() Config {
	return m.cfg
}

// Fitted reports whether Fit has succeeded at least once.
func (m *Model) Fitted() bool {
	return m.state != nil
}

// Fit computes the rolling volatility path. The series must hold at least
// Window returns. On error the model keeps its prior state.
func (m *Model) Fit(returns []float64) (volatility.Model, error) {
	w := m.cfg.Window
	if err := volatility.ValidateReturns(returns, w); err != nil {
		return nil, fmt.Errorf("rolling: window %d: %w", w, err)
	}

	r := make([]float64, len(returns))
	copy(r, returns)

	vol := make([]float64, len(r))
	for t := range vol {
		if t < w-1 {
			vol[t] = volatility.Missing()
			continue
		}
		v := stat.Variance(r[t-w+1:t+1], nil)
		vol[t] = math.Sqrt(math.Max(0, v))
	}

	m.state = &fit{returns: r, volatility: vol, last: vol[len(vol)-1]}

	m.logger.Debug("rolling fitted",
		zap.Int("window", w),
		zap.Int("n_obs", len(r)),
		zap.Int("warm_up", w-1),
		zap.Float64("last_volatility", m.state.last),
	)
	return m, nil
}

// Predict returns h copies of the last rolling volatility estimate.
func (m *Model) Predict(h int) ([]float64, error) {
	if m.state == nil {
		return nil, fmt.Errorf("rolling: %w", volatility.ErrNotFitted)
	}
	if err := volatility.ValidateHorizon(h); err != nil {
		return nil, fmt.Errorf("rolling: %w", err)
	}
	return volatility.Flat(m.state.last, h), nil
}

// Volatility returns a copy of the in-sample path, including missing markers.
func (m *Model) Volatility() ([]float64, error) {
	if m.state == nil {
		return nil, fmt.Errorf("rolling: %w", volatility.ErrNotFitted)
	}
	out := make([]float64, len(m.state.volatility))
	copy(out, m.state.volatility)
	return out, nil
}

// Summary returns a summary of the fitted model, or nil if unfitted.
func (m *Model) Summary() *volatility.Summary {
	if m.state == nil {
		return nil
	}
	return volatility.NewSummary(m.Name(), map[string]float64{"window": float64(m.cfg.Window)},
		m.state.returns, m.state.volatility)
}
