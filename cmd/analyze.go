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
	"context"
	"os"
	"os/signal"

	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/common"
	"github.com/penny-vault/rlperf/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzePortfolios []string
	analyzeApproaches []string
	analyzePredict    string
	analyzeFormat     string
	analyzeChartDir   string
	analyzeBrief      bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVarP(&analyzePortfolios, "portfolio", "p", []string{}, "Portfolio to analyze, may be repeated (default all)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeApproaches, "approach", "a", []string{}, "Rebalancing approach gradual or full_swing, may be repeated (default both)")
	analyzeCmd.Flags().StringVar(&analyzePredict, "predict", "both", "Prediction mode one of: both, true, or false")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "Output format one of: table, json, or toml")
	analyzeCmd.Flags().StringVar(&analyzeChartDir, "chart-dir", "", "Write a bar chart of each combination's metrics to this directory")
	analyzeCmd.Flags().BoolVar(&analyzeBrief, "brief", false, "Only chart total return and max draw down")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute performance metrics of the RL strategies and their assets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stopProfile := startProfile()
		defer stopProfile()

		log.Info().Object("Build", common.CurrentBuild()).Msg("rlperf analyze")

		conf, err := loadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("could not load configuration")
		}

		format, err := report.ParseFormat(analyzeFormat)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid output format")
		}

		jobs, err := selectJobs(conf, analyzePortfolios, analyzeApproaches, analyzePredict)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid selection")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results := analysis.Run(ctx, conf.Loader(), jobs, conf.Options())

		if err := report.Write(os.Stdout, format, results); err != nil {
			log.Error().Err(err).Msg("could not write report")
		}

		if analyzeChartDir != "" {
			if err := report.WriteMetricsCharts(analyzeChartDir, results, !analyzeBrief); err != nil {
				log.Error().Err(err).Str("Path", analyzeChartDir).Msg("could not write metrics charts")
			}
		}
	},
}
