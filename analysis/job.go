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
	"fmt"

	"github.com/penny-vault/rlperf/dataset"
	"github.com/penny-vault/rlperf/metrics"
)

// StrategyLabel is the label the RL strategy's metrics are reported under
const StrategyLabel = "RL Strategy"

// Job is a single portfolio / approach / prediction mode combination
type Job struct {
	Portfolio dataset.Portfolio
	Approach  dataset.Approach
	Predict   bool
}

// Title returns the report heading of the job, e.g.
// "Portfolio 1 - Gradual Approach, Without Prediction"
func (j Job) Title() string {
	with := "Without"
	if j.Predict {
		with = "With"
	}
	return fmt.Sprintf("%s - %s Approach, %s Prediction", j.Portfolio.Title(), j.Approach.Title(), with)
}

// Jobs enumerates every combination of portfolio, approach and prediction mode in report order
func Jobs(portfolios []dataset.Portfolio, approaches []dataset.Approach, predictModes []bool) []Job {
	jobs := make([]Job, 0, len(portfolios)*len(approaches)*len(predictModes))
	for _, p := range portfolios {
		for _, approach := range approaches {
			for _, predict := range predictModes {
				jobs = append(jobs, Job{
					Portfolio: p,
					Approach:  approach,
					Predict:   predict,
				})
			}
		}
	}
	return jobs
}

// Entry is the metrics record of one asset or strategy. When the record could not be computed
// Record is nil and Err holds the reason
type Entry struct {
	Label  string
	Record *metrics.Record
	Err    error
}

// Result holds the entries computed for a job. When Err is set the job was skipped
type Result struct {
	Job     Job
	Entries []Entry
	Err     error
}

// Failed returns the number of entries that could not be computed
func (r *Result) Failed() int {
	cnt := 0
	for _, entry := range r.Entries {
		if entry.Err != nil {
			cnt++
		}
	}
	return cnt
}
