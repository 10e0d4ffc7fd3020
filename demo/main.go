// Package main backtests the volatility models on CSV price files and scores
// their forecasts with QLIKE.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/govol/ewma"
	"github.com/sartorproj/govol/internal/config"
	"github.com/sartorproj/govol/internal/logger"
	"github.com/sartorproj/govol/loss"
	"github.com/sartorproj/govol/rolling"
	"github.com/sartorproj/govol/stats"
	"github.com/sartorproj/govol/timeseries"
	"github.com/sartorproj/govol/volatility"
)

// ModelResult holds one model's fit and holdout score.
type ModelResult struct {
	Model          string     `json:"model"`
	LastVolatility float64    `json:"last_volatility"`
	MeanQLIKE      float64    `json:"mean_qlike"`
	MeanQLIKERatio *float64   `json:"mean_qlike_ratio,omitempty"`
	ARCHPValue     *float64   `json:"arch_pvalue,omitempty"` // McLeod-Li on standardized returns
	InSample       []*float64 `json:"in_sample"`             // warm-up positions are null
	Forecasts      []float64  `json:"forecasts"`
}

// DatasetResult holds analysis results for a dataset.
type DatasetResult struct {
	Name          string        `json:"name"`
	NObs          int           `json:"n_obs"`
	TrainSize     int           `json:"train_size"`
	TestSize      int           `json:"test_size"`
	AnnualizedVol float64       `json:"annualized_vol"`
	ARCHPValue    *float64      `json:"arch_pvalue,omitempty"` // McLeod-Li on raw training returns
	SquaredACF    []float64     `json:"squared_acf,omitempty"`
	Models        []ModelResult `json:"models"`
	Best          string        `json:"best"`
}

// OutputData holds all results.
type OutputData struct {
	Datasets []DatasetResult `json:"datasets"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("starting volatility backtest",
		zap.String("data_dir", cfg.DataDir),
		zap.String("return_type", cfg.ReturnType),
		zap.Int("test_size", cfg.TestSize),
		zap.Float64s("ewma_decays", cfg.EWMADecays),
		zap.Ints("windows", cfg.Windows),
	)

	datasets := cfg.Datasets
	if len(datasets) == 0 {
		datasets, err = discover(cfg.DataDir)
		if err != nil {
			log.Fatal("failed to list data directory", zap.Error(err))
		}
	}
	if len(datasets) == 0 {
		log.Warn("no datasets found", zap.String("data_dir", cfg.DataDir))
		return
	}

	output := OutputData{Datasets: []DatasetResult{}}
	for _, ds := range datasets {
		dsLog := log.With(zap.String("dataset", ds.Name))
		result, err := analyze(cfg, ds, dsLog)
		if err != nil {
			dsLog.Error("analysis failed", zap.Error(err))
			continue
		}
		output.Datasets = append(output.Datasets, *result)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatal("failed to encode results", zap.Error(err))
	}
	if err := os.WriteFile(cfg.OutputFile, data, 0o644); err != nil {
		log.Fatal("failed to write results", zap.Error(err))
	}
	log.Info("exported results",
		zap.Int("datasets", len(output.Datasets)),
		zap.String("file", cfg.OutputFile),
	)
}

// discover lists every CSV file in dir as a dataset.
func discover(dir string) ([]config.Dataset, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	datasets := make([]config.Dataset, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		datasets = append(datasets, config.Dataset{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			File: base,
		})
	}
	return datasets, nil
}

// analyze fits every configured model on one dataset and scores the holdout.
func analyze(cfg *config.Config, ds config.Dataset, log *zap.Logger) (*DatasetResult, error) {
	prices, err := loadPrices(cfg.DataDir, ds)
	if err != nil {
		return nil, err
	}

	returns, err := toReturns(prices, cfg.ReturnType)
	if err != nil {
		return nil, err
	}
	if !returns.Finite() {
		return nil, errors.New("return series contains non-finite values")
	}

	minTrain := 2
	for _, w := range cfg.Windows {
		minTrain = max(minTrain, w)
	}
	if returns.Len() < minTrain+cfg.TestSize {
		return nil, fmt.Errorf("need at least %d returns, got %d", minTrain+cfg.TestSize, returns.Len())
	}

	train, test := returns.Split(cfg.TestSize)
	realized := test.Squared().Values

	result := &DatasetResult{
		Name:          ds.Name,
		NObs:          returns.Len(),
		TrainSize:     train.Len(),
		TestSize:      test.Len(),
		AnnualizedVol: train.Std() * annualization(),
		Models:        []ModelResult{},
	}
	if ml := stats.McLeodLi(train, cfg.ARCHLags); ml != nil {
		result.ARCHPValue = &ml.PValue
	}
	if acf := stats.ACF(train.Squared(), cfg.ARCHLags); acf != nil {
		result.SquaredACF = acf
	}

	log.Info("loaded returns",
		zap.Int("n_obs", returns.Len()),
		zap.Float64("min", returns.Min()),
		zap.Float64("max", returns.Max()),
		zap.Float64("annualized_vol", result.AnnualizedVol),
	)

	models, err := buildModels(cfg, log.Named("model"))
	if err != nil {
		return nil, err
	}

	for _, m := range models {
		mr, err := score(m, train.Values, realized)
		if err != nil {
			log.Warn("model skipped", zap.String("model", m.Name()), zap.Error(err))
			continue
		}
		log.Info("scored model",
			zap.String("model", mr.Model),
			zap.Float64("mean_qlike", mr.MeanQLIKE),
			zap.Float64("last_volatility", mr.LastVolatility),
		)
		result.Models = append(result.Models, *mr)
	}

	if len(result.Models) > 0 {
		best := result.Models[0]
		for _, mr := range result.Models[1:] {
			if mr.MeanQLIKE < best.MeanQLIKE {
				best = mr
			}
		}
		result.Best = best.Model
		log.Info("best model", zap.String("model", best.Model), zap.Float64("mean_qlike", best.MeanQLIKE))
	}

	return result, nil
}

func loadPrices(dataDir string, ds config.Dataset) (*timeseries.Series, error) {
	path := filepath.Join(dataDir, ds.File)

	var series *timeseries.Series
	var err error
	switch {
	case ds.FilterCol != "":
		series, err = timeseries.LoadCSVFiltered(path, ds.FilterCol, ds.FilterVal, ds.Column)
	case ds.Column != "":
		series, err = timeseries.LoadCSVColumn(path, ds.Column)
	default:
		series, err = timeseries.LoadCSV(path, nil)
	}
	if err != nil {
		return nil, err
	}

	if ds.MaxObs > 0 && series.Len() > ds.MaxObs {
		series = series.Slice(series.Len()-ds.MaxObs, series.Len())
	}
	series.Name = ds.Name
	return series, nil
}

func toReturns(prices *timeseries.Series, kind string) (*timeseries.Series, error) {
	if kind == "simple" {
		return prices.SimpleReturns()
	}
	return prices.LogReturns()
}

func buildModels(cfg *config.Config, log *zap.Logger) ([]volatility.Model, error) {
	var models []volatility.Model
	for _, decay := range cfg.EWMADecays {
		m, err := ewma.New(ewma.Config{Decay: decay}, volatility.WithLogger(log))
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	for _, w := range cfg.Windows {
		m, err := rolling.New(rolling.Config{Window: w}, volatility.WithLogger(log))
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// score fits m on train and evaluates a flat forecast against the squared
// holdout returns.
func score(m volatility.Model, train, realized []float64) (*ModelResult, error) {
	fitted, err := m.Fit(train)
	if err != nil {
		return nil, err
	}
	forecast, err := fitted.Predict(len(realized))
	if err != nil {
		return nil, err
	}

	forecastVar := make([]float64, len(forecast))
	for i, f := range forecast {
		forecastVar[i] = f * f
	}

	losses, err := loss.QLIKE(realized, forecastVar)
	if err != nil {
		return nil, err
	}

	inSample, err := fitted.Volatility()
	if err != nil {
		return nil, err
	}

	summary := fitted.Summary()
	mr := &ModelResult{
		Model:          fitted.Name(),
		LastVolatility: summary.LastVolatility,
		MeanQLIKE:      stat.Mean(losses, nil),
		InSample:       jsonSafe(inSample),
		Forecasts:      forecast,
	}
	if summary.ARCHTest != nil {
		mr.ARCHPValue = &summary.ARCHTest.PValue
	}
	// Undefined when a holdout return is exactly zero.
	if ratio, err := loss.QLIKERatio(realized, forecastVar); err == nil {
		mean := stat.Mean(ratio, nil)
		mr.MeanQLIKERatio = &mean
	}
	return mr, nil
}

// jsonSafe maps missing markers to nil; encoding/json rejects NaN.
func jsonSafe(path []float64) []*float64 {
	out := make([]*float64, len(path))
	for i := range path {
		if !volatility.IsMissing(path[i]) {
			out[i] = &path[i]
		}
	}
	return out
}

const tradingDays = 252

func annualization() float64 {
	return math.Sqrt(tradingDays)
}
