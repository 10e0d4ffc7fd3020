// Package volatility defines the contract shared by all volatility estimators.
package volatility

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrInvalidConfig is returned when a hyperparameter is out of range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidInput is returned for bad data at fit, predict or evaluation time.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFitted is returned when a fitted-only operation runs on an unfitted model.
	ErrNotFitted = errors.New("model must be fitted before use")
)

// Model is implemented by every volatility estimator.
//
// A Model starts unfitted. Fit moves it to the fitted state and a later Fit
// replaces the previous result entirely. A failed Fit leaves the model as it
// was. Models carry no locks: concurrent Fit calls on the same instance must be
// serialized by the caller, while distinct instances share nothing.
type Model interface {
	// Name returns a short identifier such as "EWMA(0.94)".
	Name() string

	// Fit estimates the in-sample volatility path from returns and returns the
	// receiver so calls can be chained.
	Fit(returns []float64) (Model, error)

	// Predict returns an h-step volatility forecast.
	Predict(h int) ([]float64, error)

	// Volatility returns a copy of the in-sample volatility path.
	Volatility() ([]float64, error)

	// Summary describes the fitted model, or returns nil when unfitted.
	Summary() *Summary
}

var validate = validator.New()

// ValidateConfig checks a hyperparameter struct against its validate tags.
func ValidateConfig(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "lt":
		return fmt.Sprintf("%s must be less than %s, got %v", field, fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// ValidateReturns checks that returns is long enough and holds only finite values.
func ValidateReturns(returns []float64, minLen int) error {
	if minLen < 1 {
		minLen = 1
	}
	if len(returns) == 0 {
		return fmt.Errorf("%w: returns must contain at least one observation", ErrInvalidInput)
	}
	if len(returns) < minLen {
		return fmt.Errorf("%w: need at least %d returns, got %d", ErrInvalidInput, minLen, len(returns))
	}
	for i, r := range returns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: return at index %d is not finite (%v)", ErrInvalidInput, i, r)
		}
	}
	return nil
}

// ValidateHorizon checks that a forecast horizon is positive.
func ValidateHorizon(h int) error {
	if h < 1 {
		return fmt.Errorf("%w: horizon must be at least 1, got %d", ErrInvalidInput, h)
	}
	return nil
}

// Flat returns a forecast of h copies of value.
func Flat(value float64, h int) []float64 {
	out := make([]float64, h)
	for i := range out {
		out[i] = value
	}
	return out
}

// Missing returns the marker used for path positions without an estimate.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// LastValid returns the last non-missing value of path.
func LastValid(path []float64) (float64, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if !IsMissing(path[i]) {
			return path[i], true
		}
	}
	return 0, false
}

// Standardize divides each return by its volatility estimate, skipping
// missing or zero estimates.
func Standardize(returns, path []float64) []float64 {
	n := min(len(returns), len(path))
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if IsMissing(path[i]) || path[i] == 0 {
			continue
		}
		out = append(out, returns[i]/path[i])
	}
	return out
}

// Options holds settings shared by all estimators.
type Options struct {
	Logger *zap.Logger
}

// Option configures an estimator.
type Option func(*Options)

// WithLogger sets the logger used by an estimator.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) Options {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
