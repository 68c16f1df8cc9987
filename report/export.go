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

package report

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/metrics"
)

// Export is the serializable form of a set of analysis results. Statistics that are undefined
// (NaN or infinite) or failed are omitted
type Export struct {
	Results []ExportResult `json:"results" toml:"results"`
}

type ExportResult struct {
	Title     string         `json:"title" toml:"title"`
	Portfolio string         `json:"portfolio" toml:"portfolio"`
	Approach  string         `json:"approach" toml:"approach"`
	Predict   bool           `json:"predict" toml:"predict"`
	Skipped   string         `json:"skipped,omitempty" toml:"skipped,omitempty"`
	Records   []ExportRecord `json:"records" toml:"records"`
}

type ExportRecord struct {
	Label       string   `json:"label" toml:"label"`
	NumRows     int      `json:"num_rows" toml:"num_rows"`
	TotalReturn *float64 `json:"total_return_pct,omitempty" toml:"total_return_pct,omitempty"`
	MaxDrawDown *float64 `json:"max_drawdown_pct,omitempty" toml:"max_drawdown_pct,omitempty"`
	SharpeRatio *float64 `json:"sharpe_ratio,omitempty" toml:"sharpe_ratio,omitempty"`
	Correlation *float64 `json:"return_dd_correlation,omitempty" toml:"return_dd_correlation,omitempty"`
	Errors      []string `json:"errors,omitempty" toml:"errors,omitempty"`
}

// NewExport converts analysis results into their serializable form
func NewExport(results []*analysis.Result) *Export {
	export := &Export{
		Results: make([]ExportResult, 0, len(results)),
	}

	for _, res := range results {
		item := ExportResult{
			Title:     res.Job.Title(),
			Portfolio: res.Job.Portfolio.ID,
			Approach:  string(res.Job.Approach),
			Predict:   res.Job.Predict,
			Records:   make([]ExportRecord, 0, len(res.Entries)),
		}

		if res.Err != nil {
			item.Skipped = res.Err.Error()
		}

		for _, entry := range res.Entries {
			item.Records = append(item.Records, exportRecord(entry))
		}

		export.Results = append(export.Results, item)
	}

	return export
}

func exportRecord(entry analysis.Entry) ExportRecord {
	rec := ExportRecord{
		Label: entry.Label,
	}

	if entry.Err != nil || entry.Record == nil {
		if entry.Err != nil {
			rec.Errors = append(rec.Errors, entry.Err.Error())
		}
		return rec
	}

	rec.NumRows = entry.Record.NumRows
	rec.TotalReturn = value(entry.Record.TotalReturn, &rec)
	rec.MaxDrawDown = value(entry.Record.MaxDrawDown, &rec)
	rec.SharpeRatio = value(entry.Record.SharpeRatio, &rec)
	rec.Correlation = value(entry.Record.Correlation, &rec)

	return rec
}

func value(m metrics.Measure, rec *ExportRecord) *float64 {
	if m.Err != nil {
		rec.Errors = append(rec.Errors, m.Err.Error())
		return nil
	}

	if !m.Valid() {
		return nil
	}

	v := m.Value
	return &v
}

// WriteJSON writes the results to w as indented JSON
func WriteJSON(w io.Writer, results []*analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(results))
}

// WriteTOML writes the results to w as TOML
func WriteTOML(w io.Writer, results []*analysis.Result) error {
	return toml.NewEncoder(w).Encode(NewExport(results))
}
