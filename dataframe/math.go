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
	"math"

	"gonum.org/v1/gonum/floats"
)

// AddScalar adds the scalar value to all columns in dataframe df and returns a new dataframe
func (df *DataFrame) AddScalar(scalar float64) *DataFrame {
	df = df.Copy()
	for colIdx := range df.ColNames {
		floats.AddConst(scalar, df.Vals[colIdx])
	}
	return df
}

// CumMax computes the running maximum of each column and returns a new dataframe. NaN values
// do not contribute to the running maximum and are kept as NaN in the result
func (df *DataFrame) CumMax() *DataFrame {
	df = df.Copy()
	for colIdx := range df.ColNames {
		peak := math.NaN()
		for rowIdx, val := range df.Vals[colIdx] {
			if math.IsNaN(val) {
				continue
			}
			if math.IsNaN(peak) || val > peak {
				peak = val
			}
			df.Vals[colIdx][rowIdx] = peak
		}
	}
	return df
}

// CumProd computes the running product of each column and returns a new dataframe. NaN values
// are skipped and kept as NaN in the result
func (df *DataFrame) CumProd() *DataFrame {
	df = df.Copy()
	for colIdx := range df.ColNames {
		prod := 1.0
		for rowIdx, val := range df.Vals[colIdx] {
			if math.IsNaN(val) {
				continue
			}
			prod *= val
			df.Vals[colIdx][rowIdx] = prod
		}
	}
	return df
}

// Div divides all columns in `df` by the corresponding column in `other` and returns a new dataframe.
// Panics if rows are not equal.
func (df *DataFrame) Div(other *DataFrame) *DataFrame {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			floats.Div(df.Vals[idx], other.Vals[otherIdx])
		}
	}
	return df
}

// PctChange computes the fractional change between each row and the prior row, (x[t] / x[t-1]) - 1,
// and returns a new dataframe. The first row has no prior value and is NaN
func (df *DataFrame) PctChange() *DataFrame {
	res := &DataFrame{
		Dates:    df.Dates,
		ColNames: df.ColNames,
		Vals:     make([][]float64, len(df.Vals)),
	}

	for colIdx, col := range df.Vals {
		res.Vals[colIdx] = make([]float64, len(col))
		for rowIdx := range col {
			if rowIdx == 0 {
				res.Vals[colIdx][rowIdx] = math.NaN()
				continue
			}
			res.Vals[colIdx][rowIdx] = col[rowIdx]/col[rowIdx-1] - 1.0
		}
	}

	return res
}

// Sub subtracts all columns in `other` from the corresponding column in `df` and returns a new dataframe.
// Panics if rows are not equal.
func (df *DataFrame) Sub(other *DataFrame) *DataFrame {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			floats.Sub(df.Vals[idx], other.Vals[otherIdx])
		}
	}
	return df
}
