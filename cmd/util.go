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

package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/dataset"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrInvalidPredictMode = errors.New("predict must be one of both, true or false")
)

// loadConfig builds the analysis configuration from viper on top of the defaults
func loadConfig() (analysis.Config, error) {
	conf := analysis.DefaultConfig()

	// decoding into a populated slice merges element-wise; configured portfolios replace the defaults
	defaultPortfolios := conf.Portfolios
	conf.Portfolios = nil
	if err := viper.Unmarshal(&conf); err != nil {
		return conf, fmt.Errorf("%w: %s", analysis.ErrInvalidConfig, err)
	}
	if len(conf.Portfolios) == 0 {
		conf.Portfolios = defaultPortfolios
	}

	if err := conf.Validate(); err != nil {
		return conf, err
	}

	log.Debug().Str("DataDir", conf.DataDir).Float64("RiskFreeRate", conf.RiskFreeRate).
		Int("TradingDays", conf.TradingDays).Int("NumPortfolios", len(conf.Portfolios)).Msg("loaded configuration")

	return conf, nil
}

// parseApproaches converts approach flags into approaches; no flags selects every approach
func parseApproaches(names []string) ([]dataset.Approach, error) {
	if len(names) == 0 {
		return dataset.Approaches, nil
	}

	approaches := make([]dataset.Approach, 0, len(names))
	for _, name := range names {
		approach, err := dataset.ParseApproach(name)
		if err != nil {
			return nil, err
		}
		approaches = append(approaches, approach)
	}
	return approaches, nil
}

// parsePredictModes converts the predict flag into the prediction modes to run
func parsePredictModes(mode string) ([]bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "both", "":
		return []bool{false, true}, nil
	case "true", "yes":
		return []bool{true}, nil
	case "false", "no":
		return []bool{false}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPredictMode, mode)
	}
}

// selectJobs returns the jobs chosen by the portfolio, approach and predict flags
func selectJobs(conf analysis.Config, portfolioIDs, approachNames []string, predict string) ([]analysis.Job, error) {
	portfolios, err := conf.SelectPortfolios(portfolioIDs)
	if err != nil {
		return nil, err
	}

	approaches, err := parseApproaches(approachNames)
	if err != nil {
		return nil, err
	}

	predictModes, err := parsePredictModes(predict)
	if err != nil {
		return nil, err
	}

	return analysis.Jobs(portfolios, approaches, predictModes), nil
}

// startProfile starts a CPU profile when --cpu-profile is set; the returned func stops it
func startProfile() func() {
	if !Profile {
		return func() {}
	}

	f, err := os.Create("profile.out")
	if err != nil {
		log.Fatal().Err(err).Msg("could not create CPU profile")
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal().Err(err).Msg("could not start CPU profile")
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}
