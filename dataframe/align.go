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
	"time"
)

// IntersectDates returns the dates present in every dataframe. Dates are returned in the order
// they appear in the first dataframe. An empty result is valid and means the dataframes share
// no common dates.
func IntersectDates(dfs ...*DataFrame) []time.Time {
	if len(dfs) == 0 {
		return []time.Time{}
	}

	// count how many of the other dataframes contain each date
	others := make([]map[int64]struct{}, 0, len(dfs)-1)
	for _, df := range dfs[1:] {
		set := make(map[int64]struct{}, df.Len())
		for _, dt := range df.Dates {
			set[dt.UnixNano()] = struct{}{}
		}
		others = append(others, set)
	}

	common := make([]time.Time, 0, dfs[0].Len())
	for _, dt := range dfs[0].Dates {
		key := dt.UnixNano()
		keep := true
		for _, set := range others {
			if _, ok := set[key]; !ok {
				keep = false
				break
			}
		}
		if keep {
			common = append(common, dt)
		}
	}

	return common
}

// Align restricts every dataframe to the dates they have in common and sorts them ascending by
// date. After alignment every returned dataframe has an identical date index.
func Align(dfs ...*DataFrame) []*DataFrame {
	dates := IntersectDates(dfs...)
	aligned := make([]*DataFrame, len(dfs))
	for idx, df := range dfs {
		aligned[idx] = df.Select(dates).Sort()
	}
	return aligned
}
