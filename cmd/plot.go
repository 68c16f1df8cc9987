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
	"os"
	"path/filepath"

	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/dataset"
	"github.com/penny-vault/rlperf/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	plotPortfolios []string
	plotApproaches []string
	plotPredict    string
	plotOutput     string
)

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringSliceVarP(&plotPortfolios, "portfolio", "p", []string{}, "Portfolio to plot, may be repeated (default all)")
	plotCmd.Flags().StringSliceVarP(&plotApproaches, "approach", "a", []string{}, "Rebalancing approach gradual or full_swing, may be repeated (default both)")
	plotCmd.Flags().StringVar(&plotPredict, "predict", "both", "Prediction mode one of: both, true, or false")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Directory to write charts to (default next to the strategy NAV)")
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the RL strategy NAV against the passive NAV of its assets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := loadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("could not load configuration")
		}

		jobs, err := selectJobs(conf, plotPortfolios, plotApproaches, plotPredict)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid selection")
		}

		loader := conf.Loader()
		for _, job := range jobs {
			subLog := log.With().Str("Portfolio", job.Portfolio.ID).Str("Approach", string(job.Approach)).Bool("Predict", job.Predict).Logger()
			fn, err := plotJob(loader, job, plotOutput)
			if err != nil {
				if errors.Is(err, dataset.ErrMissingInputFile) {
					subLog.Warn().Err(err).Msg("skipping combination")
				} else {
					subLog.Error().Err(err).Msg("could not plot combination")
				}
				continue
			}
			subLog.Info().Str("Path", fn).Msg("wrote NAV comparison chart")
		}
	},
}

// plotJob renders the NAV comparison chart of a job and returns the file it was written to
func plotJob(loader *dataset.Loader, job analysis.Job, outDir string) (string, error) {
	strategy, err := loader.LoadStrategyNAV(loader.StrategyPath(job.Portfolio.ID, job.Approach, job.Predict))
	if err != nil {
		return "", err
	}

	passive, err := loader.LoadPassiveNAV(loader.PassivePath(job.Portfolio.ID, job.Approach, job.Predict))
	if err != nil {
		return "", err
	}

	img, err := report.NAVChart(report.NAVChartTitle(job), strategy, passive, job.Portfolio.Assets)
	if err != nil {
		return "", err
	}

	if outDir == "" {
		outDir = loader.StrategyDir(job.Portfolio.ID, job.Approach, job.Predict)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	fn := filepath.Join(outDir, report.NAVChartFile(job))
	return fn, os.WriteFile(fn, img, 0o644)
}
