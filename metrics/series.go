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

package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/penny-vault/rlperf/dataframe"
)

// ValueColumns lists the column names that may hold the NAV value in the order they are tried
var ValueColumns = []string{"Net", "Close", "NAV"}

// Series holds the values derived from a single NAV column. Returns, Cumulative, Peak and DrawDowns
// are co-indexed and start at the second row of the source; the first row has no prior value and
// therefore no period return.
type Series struct {
	Column     string
	Values     []float64
	Dates      []time.Time
	Returns    []float64
	Cumulative []float64
	Peak       []float64
	DrawDowns  []float64
}

// ResolveValueColumn returns the first column of ValueColumns present in df
func ResolveValueColumn(df *dataframe.DataFrame) (string, error) {
	for _, name := range ValueColumns {
		if df.ColIndex(name) != -1 {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: expected one of %s, have [%s]", ErrMissingValueColumn,
		strings.Join(ValueColumns, ", "), strings.Join(df.ColNames, ", "))
}

// BuildSeries derives the period return, cumulative return and draw down series from the NAV
// column of df. df must already be restricted to the dates of interest and sorted ascending.
//
//	return[t]     = value[t] / value[t-1] - 1
//	cumulative[t] = ∏ (1 + return[1..t])
//	drawdown[t]   = (max(cumulative[1..t]) - cumulative[t]) / max(cumulative[1..t])
func BuildSeries(df *dataframe.DataFrame) (*Series, error) {
	colName, err := ResolveValueColumn(df)
	if err != nil {
		return nil, err
	}

	nav, err := df.Col(colName)
	if err != nil {
		return nil, err
	}

	rets := nav.PctChange().Skip(1)
	cumulative := rets.AddScalar(1).CumProd()
	peak := cumulative.CumMax()
	drawDowns := peak.Sub(cumulative).Div(peak)

	return &Series{
		Column:     colName,
		Values:     nav.Vals[0],
		Dates:      rets.Dates,
		Returns:    rets.Vals[0],
		Cumulative: cumulative.Vals[0],
		Peak:       peak.Vals[0],
		DrawDowns:  drawDowns.Vals[0],
	}, nil
}
