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
	"context"

	"github.com/google/uuid"
	"github.com/penny-vault/rlperf/dataframe"
	"github.com/penny-vault/rlperf/dataset"
	"github.com/penny-vault/rlperf/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run computes the results of every job. A failing job or asset never stops the run; failures
// are logged and recorded on the result. Run only stops early when ctx is cancelled.
func Run(ctx context.Context, loader *dataset.Loader, jobs []Job, opts metrics.Options) []*Result {
	runLog := log.With().Str("RunID", uuid.New().String()).Logger()
	runLog.Info().Int("NumJobs", len(jobs)).Float64("RiskFreeRate", opts.RiskFreeRate).Msg("starting analysis")

	results := make([]*Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			runLog.Warn().Err(err).Msg("analysis cancelled")
			break
		}

		jobLog := runLog.With().
			Str("Portfolio", job.Portfolio.ID).
			Str("Approach", string(job.Approach)).
			Bool("Predict", job.Predict).
			Logger()

		res := runJob(loader, job, opts, jobLog)
		if res.Err != nil {
			jobLog.Warn().Err(res.Err).Msg("skipping combination")
		} else {
			jobLog.Info().Int("NumEntries", len(res.Entries)).Int("NumFailed", res.Failed()).Msg("combination complete")
		}
		results = append(results, res)
	}

	return results
}

// runJob computes the metrics of each asset in the job's portfolio and of the RL strategy. The
// job is skipped when the strategy NAV cannot be read
func runJob(loader *dataset.Loader, job Job, opts metrics.Options, subLog zerolog.Logger) *Result {
	res := &Result{Job: job}

	strategyPath := loader.StrategyPath(job.Portfolio.ID, job.Approach, job.Predict)
	strategy, err := loader.LoadStrategyNAV(strategyPath)
	if err != nil {
		res.Err = err
		return res
	}

	res.Entries = append(res.Entries, assetEntries(loader, job, opts, subLog)...)
	res.Entries = append(res.Entries, entry(StrategyLabel, strategy, opts, subLog))

	return res
}

// assetEntries computes the metrics of every asset over the dates all assets have in common
func assetEntries(loader *dataset.Loader, job Job, opts metrics.Options, subLog zerolog.Logger) []Entry {
	dfs, labels, err := loader.LoadPortfolioAssets(job.Portfolio.ID)
	if err != nil {
		subLog.Error().Err(err).Msg("could not load portfolio assets")
		entries := make([]Entry, len(job.Portfolio.Assets))
		for idx, asset := range job.Portfolio.Assets {
			entries[idx] = Entry{Label: asset, Err: err}
		}
		return entries
	}

	aligned := dataframe.Align(dfs...)
	if len(aligned) > 0 {
		subLog.Debug().Int("NumDates", aligned[0].Len()).Time("Start", aligned[0].Start()).Time("End", aligned[0].End()).Msg("aligned asset dates")
	}

	entries := make([]Entry, len(labels))
	for idx, label := range labels {
		if e := subLog.Trace(); e.Enabled() {
			e.Str("Asset", label).Msg("aligned asset NAV\n" + aligned[idx].Table())
		}
		entries[idx] = entry(label, aligned[idx], opts, subLog)
	}
	return entries
}

func entry(label string, df *dataframe.DataFrame, opts metrics.Options, subLog zerolog.Logger) Entry {
	record, err := metrics.Calculate(label, df, opts)
	if err != nil {
		subLog.Error().Err(err).Str("Label", label).Msg("could not calculate metrics")
		return Entry{Label: label, Err: err}
	}

	if record.NumRows < 2 {
		subLog.Warn().Str("Label", label).Int("NumRows", record.NumRows).Msg("insufficient data; statistics are undefined")
	}

	subLog.Debug().Object("Record", record).Msg("calculated metrics")
	return Entry{Label: label, Record: record}
}
