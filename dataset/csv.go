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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/penny-vault/rlperf/dataframe"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// DateColumn is the name of the column holding the row date
const DateColumn = "Date"

// ParseDate parses a calendar date in any common layout, e.g. 2021-01-04, 01/04/2021, 1/4/2021,
// 2021/01/04 or 2021-01-04 00:00:00. Slash separated dates are read month first. Dates without a
// zone are in UTC
func ParseDate(s string) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
}

// ReadCSV reads a comma delimited NAV file into a dataframe. The file must have a header row with
// a Date column; every other column is parsed as a number. Empty cells become NaN and columns that
// contain no numbers at all (e.g. ticker symbols) are dropped. Rows are sorted ascending by date.
func ReadCSV(fn string) (*dataframe.DataFrame, error) {
	fh, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInputFile, fn)
		}
		return nil, err
	}
	defer fh.Close()

	df, err := ParseCSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	return df, nil
}

type csvRow struct {
	date time.Time
	vals []float64
}

// ParseCSV parses NAV data from r; see ReadCSV
func ParseCSV(r io.Reader) (*dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx := -1
	for idx, name := range header {
		header[idx] = strings.TrimSpace(name)
		if strings.EqualFold(header[idx], DateColumn) && dateIdx == -1 {
			dateIdx = idx
		}
	}

	if dateIdx == -1 {
		return nil, fmt.Errorf("%w: header is [%s]", ErrNoDateColumn, strings.Join(header, ", "))
	}

	colNames := make([]string, 0, len(header)-1)
	colMap := make([]int, len(header))
	for idx, name := range header {
		if idx == dateIdx {
			colMap[idx] = -1
			continue
		}
		colMap[idx] = len(colNames)
		colNames = append(colNames, name)
	}

	rows := make([]csvRow, 0, 1024)
	numeric := make([]bool, len(colNames))

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRow, err.Error())
		}

		line, _ := reader.FieldPos(0)
		date, err := ParseDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: could not parse date %q", ErrMalformedRow, line, record[dateIdx])
		}

		vals := make([]float64, len(colNames))
		for idx, cell := range record {
			colIdx := colMap[idx]
			if colIdx == -1 {
				continue
			}

			cell = strings.TrimSpace(cell)
			if cell == "" {
				vals[colIdx] = math.NaN()
				continue
			}

			val, err := cast.ToFloat64E(cell)
			if err != nil {
				log.Trace().Int("Line", line).Str("Column", colNames[colIdx]).Str("Cell", cell).Msg("non-numeric cell")
				vals[colIdx] = math.NaN()
				continue
			}

			numeric[colIdx] = true
			vals[colIdx] = val
		}

		rows = append(rows, csvRow{date: date, vals: vals})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})

	for idx := 1; idx < len(rows); idx++ {
		if rows[idx].date.Equal(rows[idx-1].date) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, rows[idx].date.Format("2006-01-02"))
		}
	}

	df := &dataframe.DataFrame{
		Dates:    make([]time.Time, 0, len(rows)),
		ColNames: make([]string, 0, len(colNames)),
	}

	keep := make([]int, 0, len(colNames))
	for colIdx, name := range colNames {
		if !numeric[colIdx] && len(rows) > 0 {
			log.Debug().Str("Column", name).Msg("dropping non-numeric column")
			continue
		}
		keep = append(keep, colIdx)
		df.ColNames = append(df.ColNames, name)
	}
	df.Vals = make([][]float64, len(df.ColNames))

	// rows are sorted and unique so InsertRow's ordering invariant holds
	vals := make([]float64, len(keep))
	for _, r := range rows {
		for idx, colIdx := range keep {
			vals[idx] = r.vals[colIdx]
		}
		df.InsertRow(r.date, vals...)
	}

	return df, nil
}
