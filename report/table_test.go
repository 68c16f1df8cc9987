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

package report_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/rlperf/report"
)

var _ = Describe("Table", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("prints the job title and a row per entry", func() {
		results := sampleResults()
		Expect(report.Table(buf, results[0])).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("Portfolio 1 - Gradual Approach, Without Prediction"))
		Expect(out).To(ContainSubstring("Asset/Strategy"))
		Expect(out).To(ContainSubstring("21.00"))
		Expect(out).To(ContainSubstring("9.09"))
		Expect(out).To(ContainSubstring("NaN"))
		Expect(out).To(ContainSubstring("error"))
		Expect(out).To(ContainSubstring("RL Strategy"))
		Expect(out).To(ContainSubstring("CAD: broken"))
	})

	It("prints infinite statistics as undefined", func() {
		Expect(report.Table(buf, infiniteResult())).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("NaN"))
		Expect(buf.String()).To(ContainSubstring("12.50"))
		Expect(buf.String()).ToNot(ContainSubstring("Inf"))
	})

	It("reports skipped jobs", func() {
		results := sampleResults()
		Expect(report.Table(buf, results[1])).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("skipped: input file does not exist"))
		Expect(buf.String()).ToNot(ContainSubstring("Asset/Strategy"))
	})
})

var _ = Describe("ParseFormat", func() {
	DescribeTable("parses formats", func(in string, expected report.Format) {
		format, err := report.ParseFormat(in)
		Expect(err).To(BeNil())
		Expect(format).To(Equal(expected))
	},
		Entry("empty", "", report.FormatTable),
		Entry("table", "table", report.FormatTable),
		Entry("json", "JSON", report.FormatJSON),
		Entry("toml", " toml ", report.FormatTOML),
	)

	It("rejects unknown formats", func() {
		_, err := report.ParseFormat("xml")
		Expect(err).To(MatchError(report.ErrUnknownFormat))
	})
})

var _ = Describe("Write", func() {
	It("writes a table for every result", func() {
		buf := &bytes.Buffer{}
		Expect(report.Write(buf, report.FormatTable, sampleResults())).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Without Prediction"))
		Expect(buf.String()).To(ContainSubstring("With Prediction"))
	})

	It("fails on unknown formats", func() {
		buf := &bytes.Buffer{}
		Expect(report.Write(buf, report.Format("xml"), sampleResults())).To(MatchError(report.ErrUnknownFormat))
	})
})
