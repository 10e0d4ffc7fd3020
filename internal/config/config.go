// Package config loads settings for the volatility backtest demo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the demo.
type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development production"`
	LogLevel    string `yaml:"log_level" default:"info" validate:"oneof=debug info warn error"`

	DataDir    string `yaml:"data_dir" default:"data"`
	OutputFile string `yaml:"output_file" default:"volatility_results.json"`

	// ReturnType selects log or simple returns built from prices.
	ReturnType string `yaml:"return_type" default:"log" validate:"oneof=log simple"`
	// TestSize is the number of trailing returns held out for scoring.
	TestSize int `yaml:"test_size" default:"60" validate:"gte=1"`
	// ARCHLags is the lag count of the McLeod-Li test on raw returns.
	ARCHLags int `yaml:"arch_lags" default:"10" validate:"gte=1"`

	EWMADecays []float64 `yaml:"ewma_decays" default:"[0.94,0.97]" validate:"min=1,dive,gt=0,lt=1"`
	Windows    []int     `yaml:"windows" default:"[21,63]" validate:"min=1,dive,gte=2"`

	// Datasets lists the price files to analyze. When empty every *.csv in
	// DataDir is used with its price column detected from the header.
	Datasets []Dataset `yaml:"datasets" validate:"dive"`
}

// Dataset describes one price file.
type Dataset struct {
	Name      string `yaml:"name" validate:"required"`
	File      string `yaml:"file" validate:"required"`
	Column    string `yaml:"column"`
	FilterCol string `yaml:"filter_col"`
	FilterVal string `yaml:"filter_val" validate:"required_with=FilterCol"`
	MaxObs    int    `yaml:"max_obs" validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from an optional YAML file named by
// GOVOL_CONFIG_FILE, then applies GOVOL_* environment overrides and defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("GOVOL_CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Environment = getEnv("GOVOL_ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("GOVOL_LOG_LEVEL", cfg.LogLevel)
	cfg.DataDir = getEnv("GOVOL_DATA_DIR", cfg.DataDir)
	cfg.OutputFile = getEnv("GOVOL_OUTPUT_FILE", cfg.OutputFile)
	cfg.ReturnType = getEnv("GOVOL_RETURN_TYPE", cfg.ReturnType)

	var err error
	if cfg.TestSize, err = getEnvAsInt("GOVOL_TEST_SIZE", cfg.TestSize); err != nil {
		return err
	}
	if cfg.ARCHLags, err = getEnvAsInt("GOVOL_ARCH_LAGS", cfg.ARCHLags); err != nil {
		return err
	}
	if cfg.EWMADecays, err = getEnvAsFloatSlice("GOVOL_EWMA_DECAYS", cfg.EWMADecays); err != nil {
		return err
	}
	if cfg.Windows, err = getEnvAsIntSlice("GOVOL_WINDOWS", cfg.Windows); err != nil {
		return err
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloatSlice(key string, defaultValue []float64) ([]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	var out []float64
	for _, part := range strings.Split(value, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func getEnvAsIntSlice(key string, defaultValue []int) ([]int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}
