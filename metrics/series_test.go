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

package metrics_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/rlperf/dataframe"
	"github.com/penny-vault/rlperf/metrics"
)

func navFrame(colName string, vals ...float64) *dataframe.DataFrame {
	dates := make([]time.Time, len(vals))
	dt := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
	for idx := range dates {
		dates[idx] = dt
		dt = dt.AddDate(0, 0, 1)
	}

	return &dataframe.DataFrame{
		Dates:    dates,
		ColNames: []string{colName},
		Vals:     [][]float64{vals},
	}
}

var _ = Describe("Series", func() {
	Describe("when resolving the value column", func() {
		DescribeTable("prefers Net, then Close, then NAV", func(cols []string, expected string) {
			df := &dataframe.DataFrame{ColNames: cols, Vals: make([][]float64, len(cols))}
			col, err := metrics.ResolveValueColumn(df)
			Expect(err).To(BeNil())
			Expect(col).To(Equal(expected))
		},
			Entry("Net only", []string{"Net"}, "Net"),
			Entry("Close only", []string{"Close"}, "Close"),
			Entry("NAV only", []string{"NAV"}, "NAV"),
			Entry("Close and Net", []string{"Close", "Net"}, "Net"),
			Entry("NAV and Close", []string{"NAV", "Close"}, "Close"),
			Entry("all three with extras", []string{"Weight", "NAV", "Close", "Net"}, "Net"),
		)

		It("fails when none of the candidate columns are present", func() {
			df := &dataframe.DataFrame{ColNames: []string{"Open", "Weight"}, Vals: [][]float64{{}, {}}}
			_, err := metrics.ResolveValueColumn(df)
			Expect(errors.Is(err, metrics.ErrMissingValueColumn)).To(BeTrue())
		})

		It("is case sensitive", func() {
			df := &dataframe.DataFrame{ColNames: []string{"net", "close"}, Vals: [][]float64{{}, {}}}
			_, err := metrics.ResolveValueColumn(df)
			Expect(errors.Is(err, metrics.ErrMissingValueColumn)).To(BeTrue())
		})
	})

	Describe("when building series for 100, 110, 99, 121", func() {
		var (
			series *metrics.Series
		)

		BeforeEach(func() {
			var err error
			series, err = metrics.BuildSeries(navFrame("Net", 100, 110, 99, 121))
			Expect(err).To(BeNil())
		})

		It("has one fewer return than values", func() {
			Expect(series.Values).To(HaveLen(4))
			Expect(series.Returns).To(HaveLen(3))
			Expect(series.Dates).To(HaveLen(3))
		})

		It("computes period returns", func() {
			Expect(series.Returns[0]).To(BeNumerically("~", 0.10, 1e-12))
			Expect(series.Returns[1]).To(BeNumerically("~", -0.10, 1e-12))
			Expect(series.Returns[2]).To(BeNumerically("~", 0.2222222222, 1e-9))
		})

		It("computes cumulative returns", func() {
			Expect(series.Cumulative[0]).To(BeNumerically("~", 1.10, 1e-12))
			Expect(series.Cumulative[1]).To(BeNumerically("~", 0.99, 1e-12))
			Expect(series.Cumulative[2]).To(BeNumerically("~", 1.21, 1e-12))
		})

		It("computes the running peak", func() {
			Expect(series.Peak[0]).To(BeNumerically("~", 1.10, 1e-12))
			Expect(series.Peak[1]).To(BeNumerically("~", 1.10, 1e-12))
			Expect(series.Peak[2]).To(BeNumerically("~", 1.21, 1e-12))
		})

		It("computes draw downs", func() {
			Expect(series.DrawDowns[0]).To(BeNumerically("==", 0))
			Expect(series.DrawDowns[1]).To(BeNumerically("~", 0.0909090909, 1e-9))
			Expect(series.DrawDowns[2]).To(BeNumerically("==", 0))
		})

		It("records the resolved column", func() {
			Expect(series.Column).To(Equal("Net"))
		})
	})

	It("uses a Close column exactly as it would a Net column", func() {
		net, err := metrics.BuildSeries(navFrame("Net", 50, 55, 52, 60, 58))
		Expect(err).To(BeNil())
		cls, err := metrics.BuildSeries(navFrame("Close", 50, 55, 52, 60, 58))
		Expect(err).To(BeNil())

		Expect(cls.Returns).To(Equal(net.Returns))
		Expect(cls.DrawDowns).To(Equal(net.DrawDowns))
	})

	It("does not count the baseline as a peak when the first return is negative", func() {
		series, err := metrics.BuildSeries(navFrame("Net", 100, 90, 95))
		Expect(err).To(BeNil())
		Expect(series.DrawDowns).To(Equal([]float64{0, 0}))
	})

	It("keeps draw downs between 0 and 1 for positive values", func() {
		series, err := metrics.BuildSeries(navFrame("NAV", 10, 12, 3, 0.5, 8, 20, 1, 15))
		Expect(err).To(BeNil())
		for _, dd := range series.DrawDowns {
			Expect(dd).To(BeNumerically(">=", 0))
			Expect(dd).To(BeNumerically("<=", 1))
		}
	})

	It("has no draw down for a strictly increasing series", func() {
		series, err := metrics.BuildSeries(navFrame("Net", 1, 2, 3, 5, 8, 13))
		Expect(err).To(BeNil())
		for _, dd := range series.DrawDowns {
			Expect(dd).To(BeNumerically("==", 0))
		}
	})

	It("produces empty series for a single row", func() {
		series, err := metrics.BuildSeries(navFrame("Net", 100))
		Expect(err).To(BeNil())
		Expect(series.Returns).To(BeEmpty())
		Expect(series.DrawDowns).To(BeEmpty())
	})

	It("fails on a missing value column", func() {
		_, err := metrics.BuildSeries(navFrame("Open", 1, 2, 3))
		Expect(errors.Is(err, metrics.ErrMissingValueColumn)).To(BeTrue())
	})

	It("propagates NaN values without panicking", func() {
		series, err := metrics.BuildSeries(navFrame("Net", 100, math.NaN(), 110))
		Expect(err).To(BeNil())
		Expect(series.Returns).To(HaveLen(2))
		Expect(math.IsNaN(series.Returns[0])).To(BeTrue())
	})
})
