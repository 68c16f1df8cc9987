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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/metrics"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
)

// Format is an output format for analysis results
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
)

// ParseFormat converts a string into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders results to w in the requested format
func Write(w io.Writer, format Format, results []*analysis.Result) error {
	switch format {
	case FormatTable:
		for _, res := range results {
			if err := Table(w, res); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatTOML:
		return WriteTOML(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var tableHeader = []string{"Asset/Strategy", "Total Return (%)", "Max Drawdown (%)", "Sharpe Ratio", "Return-DD Correlation"}

// Table prints the metrics of a single result as a fixed width table preceded by the job title.
// Entries that could not be computed are listed below the table with their reason
func Table(w io.Writer, res *analysis.Result) error {
	title := res.Job.Title()
	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", 80)); err != nil {
		return err
	}

	if res.Err != nil {
		_, err := fmt.Fprintf(w, "skipped: %s\n", res.Err)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	failed := make([]analysis.Entry, 0)
	for _, entry := range res.Entries {
		if entry.Err != nil || entry.Record == nil {
			failed = append(failed, entry)
			table.Append([]string{entry.Label, "-", "-", "-", "-"})
			continue
		}

		table.Append([]string{
			entry.Label,
			formatMeasure(entry.Record.TotalReturn),
			formatMeasure(entry.Record.MaxDrawDown),
			formatMeasure(entry.Record.SharpeRatio),
			formatMeasure(entry.Record.Correlation),
		})
	}
	table.Render()

	for _, entry := range failed {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", entry.Label, entry.Err); err != nil {
			return err
		}
	}

	return nil
}

func formatMeasure(m metrics.Measure) string {
	switch {
	case m.Err != nil:
		return "error"
	case !m.Valid():
		return "NaN"
	default:
		return fmt.Sprintf("%.2f", m.Value)
	}
}
