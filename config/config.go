package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StrategyType selects the indicator family driving entries and exits.
type StrategyType string

const (
	Bollinger StrategyType = "BOLL"
	MACD      StrategyType = "MACD"
)

// StrategyConfig holds all tunable parameters for one backtest run. It is
// immutable for the duration of the run.
type StrategyConfig struct {
	Type StrategyType `yaml:"type" json:"type"`

	// Bollinger parameters
	Period     int     `yaml:"period" json:"period"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`

	// MACD parameters
	Short  int `yaml:"short" json:"short"`
	Long   int `yaml:"long" json:"long"`
	Signal int `yaml:"signal" json:"signal"`

	// Risk parameters, all in percent units.
	// PositionSizePct is the share of cash committed per entry (0,100].
	// StopLossPct / TakeProfitPct of 0 means disabled.
	PositionSizePct float64 `yaml:"position_size_pct" json:"positionSizePct"`
	StopLossPct     float64 `yaml:"stop_loss_pct" json:"stopLossPct"`
	TakeProfitPct   float64 `yaml:"take_profit_pct" json:"takeProfitPct"`

	// UseTrendFilter suppresses buys while the close sits below the 60-day
	// moving average.
	UseTrendFilter bool `yaml:"use_trend_filter" json:"useTrendFilter"`
}

// ApplyDefaults fills zero-valued fields with the conventional parameters
// for the selected strategy family.
func (c *StrategyConfig) ApplyDefaults() {
	if c.Type == Bollinger {
		if c.Period == 0 {
			c.Period = 20
		}
		if c.Multiplier == 0 {
			c.Multiplier = 2
		}
	}
	if c.Type == MACD {
		if c.Short == 0 {
			c.Short = 12
		}
		if c.Long == 0 {
			c.Long = 26
		}
		if c.Signal == 0 {
			c.Signal = 9
		}
	}
	if c.PositionSizePct == 0 {
		c.PositionSizePct = 100
	}
}

// Validate checks that all fields are within sensible bounds. It returns the
// first encountered error, allowing the caller to surface a clear
// configuration problem before any simulation starts.
func (c *StrategyConfig) Validate() error {
	switch c.Type {
	case Bollinger:
		if c.Period <= 1 {
			return fmt.Errorf("Period (%d) must be at least 2", c.Period)
		}
		if c.Multiplier <= 0 {
			return fmt.Errorf("Multiplier (%f) must be positive", c.Multiplier)
		}
	case MACD:
		if c.Short <= 0 {
			return fmt.Errorf("Short (%d) must be positive", c.Short)
		}
		if c.Long <= c.Short {
			return fmt.Errorf("Long (%d) must exceed Short (%d)", c.Long, c.Short)
		}
		if c.Signal <= 0 {
			return fmt.Errorf("Signal (%d) must be positive", c.Signal)
		}
	default:
		return fmt.Errorf("unknown strategy type %q", c.Type)
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 100 {
		return fmt.Errorf("PositionSizePct (%f) must be in (0,100]", c.PositionSizePct)
	}
	if c.StopLossPct < 0 || c.StopLossPct >= 100 {
		return fmt.Errorf("StopLossPct (%f) must be in [0,100)", c.StopLossPct)
	}
	if c.TakeProfitPct < 0 || c.TakeProfitPct >= 100 {
		return fmt.Errorf("TakeProfitPct (%f) must be in [0,100)", c.TakeProfitPct)
	}
	return nil
}

// Load reads a StrategyConfig from a YAML file. Defaults are not applied;
// the engine does that when it validates.
func Load(path string) (StrategyConfig, error) {
	var cfg StrategyConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Type == "" {
		return cfg, errors.New("config: strategy type is required")
	}
	return cfg, nil
}
