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

package dataframe_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/rlperf/dataframe"
)

func frame(dates ...time.Time) *dataframe.DataFrame {
	vals := make([]float64, len(dates))
	for idx := range vals {
		vals[idx] = float64(idx + 1)
	}
	return &dataframe.DataFrame{
		Dates:    dates,
		ColNames: []string{"Close"},
		Vals:     [][]float64{vals},
	}
}

var _ = Describe("Date alignment", func() {
	var (
		a *dataframe.DataFrame
		b *dataframe.DataFrame
		c *dataframe.DataFrame
	)

	BeforeEach(func() {
		a = frame(day(1), day(2), day(3))
		b = frame(day(2), day(3), day(4))
		c = frame(day(2), day(3))
	})

	It("intersects the dates of every dataframe", func() {
		Expect(dataframe.IntersectDates(a, b, c)).To(Equal([]time.Time{day(2), day(3)}))
	})

	It("is commutative", func() {
		Expect(dataframe.IntersectDates(c, b, a)).To(ConsistOf(dataframe.IntersectDates(a, b, c)))
		Expect(dataframe.IntersectDates(b, a, c)).To(ConsistOf(dataframe.IntersectDates(a, b, c)))
	})

	It("is idempotent", func() {
		aligned := dataframe.Align(a, b, c)
		again := dataframe.Align(aligned...)
		for idx := range aligned {
			Expect(again[idx].Dates).To(Equal(aligned[idx].Dates))
			Expect(again[idx].Vals).To(Equal(aligned[idx].Vals))
		}
	})

	It("preserves the order of the first dataframe", func() {
		unsorted := frame(day(3), day(2), day(1))
		Expect(dataframe.IntersectDates(unsorted, a)).To(Equal([]time.Time{day(3), day(2), day(1)}))
	})

	It("returns the first dataframe's dates when given a single dataframe", func() {
		Expect(dataframe.IntersectDates(a)).To(Equal(a.Dates))
	})

	It("returns an empty range when nothing is shared", func() {
		d := frame(day(10), day(11))
		Expect(dataframe.IntersectDates(a, d)).To(BeEmpty())
	})

	It("returns an empty range for no dataframes", func() {
		Expect(dataframe.IntersectDates()).To(BeEmpty())
	})

	It("matches the same instant in different locations", func() {
		est := time.FixedZone("EST", -5*60*60)
		shifted := frame(day(2).In(est))
		Expect(dataframe.IntersectDates(a, shifted)).To(HaveLen(1))
	})

	It("slices every dataframe to identical date sequences", func() {
		aligned := dataframe.Align(a, b, c)
		Expect(aligned).To(HaveLen(3))
		for _, df := range aligned {
			Expect(df.Dates).To(Equal([]time.Time{day(2), day(3)}))
		}
		Expect(aligned[0].Vals[0]).To(Equal([]float64{2, 3}))
		Expect(aligned[1].Vals[0]).To(Equal([]float64{1, 2}))
		Expect(aligned[2].Vals[0]).To(Equal([]float64{1, 2}))
	})
})
