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
	"fmt"
	"os"

	"github.com/penny-vault/rlperf/common"
	"github.com/penny-vault/rlperf/metrics"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Profile bool

func init() {
	// Data
	viper.BindEnv("data_dir", "RLPERF_DATA_DIR")
	rootCmd.PersistentFlags().String("data-dir", "data/rl", "Directory holding the portfolio NAV files")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	// Metrics
	viper.BindEnv("risk_free_rate", "RLPERF_RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free-rate", metrics.DefaultRiskFreeRate, "Annual risk free rate used for the sharpe ratio")
	viper.BindPFlag("risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free-rate"))

	viper.BindEnv("trading_days", "RLPERF_TRADING_DAYS")
	rootCmd.PersistentFlags().Int("trading-days", metrics.DefaultTradingDays, "Number of trading days per year")
	viper.BindPFlag("trading_days", rootCmd.PersistentFlags().Lookup("trading-days"))

	// Logging configuration
	viper.BindEnv("log.level", "RLPERF_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "RLPERF_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "RLPERF_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "RLPERF_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "Write human readable logs instead of JSON")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	rootCmd.PersistentFlags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
}

var rootCmd = &cobra.Command{
	Use:     "rlperf",
	Version: common.CurrentVersion.String(),
	Short:   "Evaluate reinforcement learning rebalancing strategies",
	Long: `rlperf compares the NAV of reinforcement learning rebalancing strategies against the
assets they trade. For every portfolio, rebalancing approach and prediction mode it reports
total return, maximum draw down, sharpe ratio and the correlation of returns with draw downs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		common.CloseLogging()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
