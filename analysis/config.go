// Copyright 2021-2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/penny-vault/rlperf/dataset"
	"github.com/penny-vault/rlperf/metrics"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the analysis configuration, typically unmarshalled by viper
type Config struct {
	DataDir      string              `mapstructure:"data_dir"`
	RiskFreeRate float64             `mapstructure:"risk_free_rate"`
	TradingDays  int                 `mapstructure:"trading_days"`
	Portfolios   []dataset.Portfolio `mapstructure:"portfolios"`
}

// DefaultConfig returns the configuration used when nothing is configured
func DefaultConfig() Config {
	return Config{
		DataDir:      "data/rl",
		RiskFreeRate: metrics.DefaultRiskFreeRate,
		TradingDays:  metrics.DefaultTradingDays,
		Portfolios:   dataset.DefaultPortfolios(),
	}
}

// Validate checks that the configuration can be used for an analysis run
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must be set", ErrInvalidConfig)
	}

	if c.TradingDays <= 0 {
		return fmt.Errorf("%w: trading_days must be positive, have %d", ErrInvalidConfig, c.TradingDays)
	}

	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		return fmt.Errorf("%w: risk_free_rate must be a number", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Portfolios))
	for _, p := range c.Portfolios {
		if p.ID == "" {
			return fmt.Errorf("%w: portfolio without an id", ErrInvalidConfig)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate portfolio %s", ErrInvalidConfig, p.ID)
		}
		if len(p.Assets) == 0 {
			return fmt.Errorf("%w: portfolio %s has no assets", ErrInvalidConfig, p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}

// Options returns the metric options of the configuration
func (c Config) Options() metrics.Options {
	return metrics.Options{
		RiskFreeRate: c.RiskFreeRate,
		TradingDays:  c.TradingDays,
	}
}

// Loader returns a dataset loader for the configuration
func (c Config) Loader() *dataset.Loader {
	return dataset.NewLoader(c.DataDir, c.Portfolios)
}

// SelectPortfolios returns the configured portfolios with the given ids; an empty list selects
// every portfolio
func (c Config) SelectPortfolios(ids []string) ([]dataset.Portfolio, error) {
	loader := c.Loader()
	if len(ids) == 0 {
		return loader.Portfolios, nil
	}

	selected := make([]dataset.Portfolio, 0, len(ids))
	for _, id := range ids {
		p, err := loader.Portfolio(id)
		if err != nil {
			return nil, err
		}
		selected = append(selected, p)
	}
	return selected, nil
}
