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

package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

// Col returns a new single column dataframe containing a copy of the requested column
func (df *DataFrame) Col(colName string) (*DataFrame, error) {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, colName)
	}

	vals := make([]float64, len(df.Vals[colIdx]))
	copy(vals, df.Vals[colIdx])

	return &DataFrame{
		Dates:    df.Dates,
		ColNames: []string{colName},
		Vals:     [][]float64{vals},
	}, nil
}

// ColIndex returns the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// Copy creates a copy of the dataframe
func (df *DataFrame) Copy() *DataFrame {
	df2 := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Dates:    make([]time.Time, len(df.Dates)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Dates, df.Dates)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// End returns the last time in the DataFrame
func (df *DataFrame) End() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[len(df.Dates)-1]
}

// InsertRow adds a new row to the dataframe. Date must be after the last date in the dataframe and vals must equal the number
// of columns. If either of these conditions are not met then panic
func (df *DataFrame) InsertRow(date time.Time, vals ...float64) *DataFrame {
	if len(df.Dates) != 0 {
		last := df.Dates[len(df.Dates)-1]
		if !last.Before(date) {
			log.Panic().Time("lastDate", last).Time("newDate", date).Msg("newDate must be after lastDate")
		}
	}

	if len(vals) != len(df.ColNames) {
		log.Panic().Int("NumValsPassed", len(vals)).Int("NumColumns", len(df.ColNames)).Msg("number of vals passed must equal number of columns")
	}

	if len(df.Vals) != len(df.ColNames) {
		df.Vals = make([][]float64, len(df.ColNames))
	}

	df.Dates = append(df.Dates, date)
	for colIdx := range df.ColNames {
		df.Vals[colIdx] = append(df.Vals[colIdx], vals[colIdx])
	}

	return df
}

// Keep returns a new dataframe with only the rows where lambda returns true. lambda receives
// the row date and a map of column name to value
func (df *DataFrame) Keep(lambda func(date time.Time, vals map[string]float64) bool) *DataFrame {
	res := &DataFrame{
		ColNames: df.ColNames,
		Dates:    make([]time.Time, 0, len(df.Dates)),
		Vals:     make([][]float64, len(df.ColNames)),
	}

	row := make(map[string]float64, len(df.ColNames))
	for rowIdx, date := range df.Dates {
		for colIdx, colName := range df.ColNames {
			row[colName] = df.Vals[colIdx][rowIdx]
		}

		if lambda(date, row) {
			res.Dates = append(res.Dates, date)
			for colIdx := range df.ColNames {
				res.Vals[colIdx] = append(res.Vals[colIdx], df.Vals[colIdx][rowIdx])
			}
		}
	}

	return res
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	return len(df.Dates)
}

// Select returns a new dataframe restricted to the rows whose date is in dates. Row order
// of df is preserved; dates not present in df are ignored
func (df *DataFrame) Select(dates []time.Time) *DataFrame {
	wanted := make(map[int64]struct{}, len(dates))
	for _, dt := range dates {
		wanted[dt.UnixNano()] = struct{}{}
	}

	return df.Keep(func(date time.Time, _ map[string]float64) bool {
		_, ok := wanted[date.UnixNano()]
		return ok
	})
}

// Skip returns a new dataframe without the first n rows. Underlying storage is shared with df
func (df *DataFrame) Skip(n int) *DataFrame {
	if n > df.Len() {
		n = df.Len()
	}

	if n < 0 {
		n = 0
	}

	vals := make([][]float64, len(df.Vals))
	for colIdx, col := range df.Vals {
		vals[colIdx] = col[n:]
	}

	return &DataFrame{
		Dates:    df.Dates[n:],
		ColNames: df.ColNames,
		Vals:     vals,
	}
}

// Sort orders the rows of the dataframe ascending by date, in place
func (df *DataFrame) Sort() *DataFrame {
	if sort.SliceIsSorted(df.Dates, func(i, j int) bool { return df.Dates[i].Before(df.Dates[j]) }) {
		return df
	}

	order := make([]int, len(df.Dates))
	for idx := range order {
		order[idx] = idx
	}

	sort.SliceStable(order, func(i, j int) bool {
		return df.Dates[order[i]].Before(df.Dates[order[j]])
	})

	dates := make([]time.Time, len(df.Dates))
	for newIdx, oldIdx := range order {
		dates[newIdx] = df.Dates[oldIdx]
	}
	df.Dates = dates

	for colIdx, col := range df.Vals {
		sorted := make([]float64, len(col))
		for newIdx, oldIdx := range order {
			sorted[newIdx] = col[oldIdx]
		}
		df.Vals[colIdx] = sorted
	}

	return df
}

// Start returns the first date of the dataframe
func (df *DataFrame) Start() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[0]
}

// Table renders the dataframe as an ASCII formatted table
func (df *DataFrame) Table() string {
	if len(df.Dates) == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the dataframe
	}

	// construct table header
	tableCols := append([]string{"Date"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false) // Set Border to false

	for rowIdx, date := range df.Dates {
		row := make([]string, 0, len(df.Vals)+1)
		row = append(row, date.Format("2006-01-02"))
		for _, col := range df.Vals {
			if math.IsNaN(col[rowIdx]) {
				row = append(row, "NaN")
				continue
			}
			row = append(row, fmt.Sprintf("%.4f", col[rowIdx]))
		}
		table.Append(row)
	}

	table.Render()
	return s.String()
}
