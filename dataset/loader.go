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

package dataset

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/penny-vault/rlperf/dataframe"
	"github.com/rs/zerolog/log"
)

const (
	StrategyNAVFile = "daily_nav.csv"
	PassiveNAVFile  = "passive_daily_nav.csv"
)

// Loader reads NAV files laid out as
//
//	<DataDir>/<portfolio id>/<asset>.csv
//	<DataDir>/<portfolio id>/<subfolder>/daily_nav.csv
//	<DataDir>/<portfolio id>/<subfolder>/passive_daily_nav.csv
//
// Files are read fresh on every call.
type Loader struct {
	DataDir    string
	Portfolios []Portfolio
}

// NewLoader creates a loader for dataDir; when portfolios is empty the default portfolios are used
func NewLoader(dataDir string, portfolios []Portfolio) *Loader {
	if len(portfolios) == 0 {
		portfolios = DefaultPortfolios()
	}

	return &Loader{
		DataDir:    dataDir,
		Portfolios: portfolios,
	}
}

// Portfolio looks up the portfolio with the given id
func (l *Loader) Portfolio(portfolioID string) (Portfolio, error) {
	for _, p := range l.Portfolios {
		if p.ID == portfolioID {
			return p, nil
		}
	}
	return Portfolio{}, fmt.Errorf("%w: %s", ErrUnknownPortfolio, portfolioID)
}

// PortfolioDir returns the directory holding a portfolio's asset files
func (l *Loader) PortfolioDir(portfolioID string) string {
	return filepath.Join(l.DataDir, portfolioID)
}

// StrategyDir returns the directory holding the strategy output for the portfolio, approach and
// prediction mode
func (l *Loader) StrategyDir(portfolioID string, approach Approach, predict bool) string {
	return filepath.Join(l.PortfolioDir(portfolioID), approach.Subfolder(predict))
}

// StrategyPath returns the path of the RL strategy's NAV file
func (l *Loader) StrategyPath(portfolioID string, approach Approach, predict bool) string {
	return filepath.Join(l.StrategyDir(portfolioID, approach, predict), StrategyNAVFile)
}

// PassivePath returns the path of the passive (buy and hold) NAV file
func (l *Loader) PassivePath(portfolioID string, approach Approach, predict bool) string {
	return filepath.Join(l.StrategyDir(portfolioID, approach, predict), PassiveNAVFile)
}

// LoadPortfolioAssets reads the NAV file of every asset in the portfolio. Rows with a Close that
// is not strictly positive are dropped. The returned dataframes are in the same order as the
// returned asset labels; they are not date aligned.
func (l *Loader) LoadPortfolioAssets(portfolioID string) ([]*dataframe.DataFrame, []string, error) {
	p, err := l.Portfolio(portfolioID)
	if err != nil {
		return nil, nil, err
	}

	dfs := make([]*dataframe.DataFrame, 0, len(p.Assets))
	for _, asset := range p.Assets {
		fn := filepath.Join(l.PortfolioDir(portfolioID), asset+".csv")
		log.Debug().Str("Portfolio", portfolioID).Str("Asset", asset).Str("Path", fn).Msg("loading asset NAV")

		df, err := ReadCSV(fn)
		if err != nil {
			return nil, nil, fmt.Errorf("asset %s: %w", asset, err)
		}

		if df.ColIndex("Close") != -1 {
			before := df.Len()
			df = df.Keep(func(_ time.Time, vals map[string]float64) bool {
				return vals["Close"] > 0
			})
			if dropped := before - df.Len(); dropped > 0 {
				log.Debug().Str("Asset", asset).Int("Dropped", dropped).Msg("removed rows with non-positive close")
			}
		}

		log.Debug().Str("Asset", asset).Int("NumRows", df.Len()).Int("NumColumns", df.ColCount()).Msg("loaded asset NAV")
		dfs = append(dfs, df)
	}

	labels := make([]string, len(p.Assets))
	copy(labels, p.Assets)

	return dfs, labels, nil
}

// LoadStrategyNAV reads the NAV file at path. A missing file returns ErrMissingInputFile
func (l *Loader) LoadStrategyNAV(path string) (*dataframe.DataFrame, error) {
	log.Debug().Str("Path", path).Msg("loading strategy NAV")
	return ReadCSV(path)
}

// LoadPassiveNAV reads the buy and hold NAV of the portfolio's assets, one column per asset
func (l *Loader) LoadPassiveNAV(path string) (*dataframe.DataFrame, error) {
	log.Debug().Str("Path", path).Msg("loading passive NAV")
	return ReadCSV(path)
}
