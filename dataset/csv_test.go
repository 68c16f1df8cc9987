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

package dataset_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/rlperf/dataset"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("CSV", func() {
	Context("with a well formed file", func() {
		It("parses dates and numeric columns", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Net,AUD\n2021-01-04,100,0.5\n2021-01-05,101.5,0.25\n"))
			Expect(err).To(BeNil())
			Expect(df.Dates).To(Equal([]time.Time{date(2021, 1, 4), date(2021, 1, 5)}))
			Expect(df.ColNames).To(Equal([]string{"Net", "AUD"}))
			Expect(df.Vals[0]).To(Equal([]float64{100, 101.5}))
			Expect(df.Vals[1]).To(Equal([]float64{0.5, 0.25}))
		})

		It("accepts the date column in any position", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Close,Date\n1.5,2021-01-04\n"))
			Expect(err).To(BeNil())
			Expect(df.ColNames).To(Equal([]string{"Close"}))
			Expect(df.Start()).To(Equal(date(2021, 1, 4)))
		})

		It("sorts rows by date", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Close\n2021-01-06,3\n2021-01-04,1\n2021-01-05,2\n"))
			Expect(err).To(BeNil())
			Expect(df.Vals[0]).To(Equal([]float64{1, 2, 3}))
		})

		It("treats empty cells as NaN", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Close,Volume\n2021-01-04,1,\n2021-01-05,2,300\n"))
			Expect(err).To(BeNil())
			Expect(math.IsNaN(df.Vals[1][0])).To(BeTrue())
			Expect(df.Vals[1][1]).To(Equal(300.0))
		})

		It("drops columns without numbers", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Ticker,NAV\n2021-01-04,AUD,1\n2021-01-05,AUD,2\n"))
			Expect(err).To(BeNil())
			Expect(df.ColNames).To(Equal([]string{"NAV"}))
		})

		It("parses timestamps", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Net\n2021-01-04 00:00:00,1\n"))
			Expect(err).To(BeNil())
			Expect(df.Start()).To(Equal(date(2021, 1, 4)))
		})

		DescribeTable("parses common date layouts", func(cell string) {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Close\n" + cell + ",1\n"))
			Expect(err).To(BeNil())
			Expect(df.Dates).To(Equal([]time.Time{date(2021, 1, 4)}))
		},
			Entry("iso", "2021-01-04"),
			Entry("month first with zero padding", "01/04/2021"),
			Entry("month first without zero padding", "1/4/2021"),
			Entry("year first with slashes", "2021/01/04"),
			Entry("timestamp", "2021-01-04 00:00:00"),
		)

		It("orders rows with mixed date layouts", func() {
			df, err := dataset.ParseCSV(strings.NewReader("Date,Close\n01/06/2021,3\n2021-01-04,1\n2021/01/05,2\n"))
			Expect(err).To(BeNil())
			Expect(df.Dates).To(Equal([]time.Time{date(2021, 1, 4), date(2021, 1, 5), date(2021, 1, 6)}))
			Expect(df.Vals[0]).To(Equal([]float64{1, 2, 3}))
		})

		It("ignores a byte order mark", func() {
			df, err := dataset.ParseCSV(strings.NewReader("\ufeffDate,Net\n2021-01-04,1\n"))
			Expect(err).To(BeNil())
			Expect(df.Len()).To(Equal(1))
		})
	})

	Context("with a malformed file", func() {
		It("fails without a date column", func() {
			_, err := dataset.ParseCSV(strings.NewReader("Day,Net\n2021-01-04,1\n"))
			Expect(errors.Is(err, dataset.ErrNoDateColumn)).To(BeTrue())
		})

		It("fails when empty", func() {
			_, err := dataset.ParseCSV(strings.NewReader(""))
			Expect(errors.Is(err, dataset.ErrEmptyFile)).To(BeTrue())
		})

		It("fails on an unparseable date", func() {
			_, err := dataset.ParseCSV(strings.NewReader("Date,Net\n2021-13-45,1\n"))
			Expect(errors.Is(err, dataset.ErrMalformedRow)).To(BeTrue())
		})

		It("fails on a short row", func() {
			_, err := dataset.ParseCSV(strings.NewReader("Date,Net,Close\n2021-01-04,1\n"))
			Expect(errors.Is(err, dataset.ErrMalformedRow)).To(BeTrue())
		})

		It("fails on duplicate dates", func() {
			_, err := dataset.ParseCSV(strings.NewReader("Date,Net\n2021-01-04,1\n2021-01-04,2\n"))
			Expect(errors.Is(err, dataset.ErrDuplicateDate)).To(BeTrue())
		})

		It("detects duplicate dates written in different layouts", func() {
			_, err := dataset.ParseCSV(strings.NewReader("Date,Net\n2021-01-04,1\n01/04/2021,2\n"))
			Expect(errors.Is(err, dataset.ErrDuplicateDate)).To(BeTrue())
		})
	})

	Context("when reading from disk", func() {
		It("reports missing files", func() {
			_, err := dataset.ReadCSV(filepath.Join(GinkgoT().TempDir(), "nope.csv"))
			Expect(errors.Is(err, dataset.ErrMissingInputFile)).To(BeTrue())
		})

		It("includes the file name in parse errors", func() {
			fn := filepath.Join(GinkgoT().TempDir(), "bad.csv")
			Expect(os.WriteFile(fn, []byte("Net\n1\n"), 0600)).To(Succeed())
			_, err := dataset.ReadCSV(fn)
			Expect(errors.Is(err, dataset.ErrNoDateColumn)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("bad.csv"))
		})
	})
})
