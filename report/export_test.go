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

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/report"
)

var _ = Describe("Export", func() {
	It("omits undefined and failed statistics", func() {
		export := report.NewExport(sampleResults())
		Expect(export.Results).To(HaveLen(2))

		first := export.Results[0]
		Expect(first.Portfolio).To(Equal("portfolio1"))
		Expect(first.Approach).To(Equal("gradual"))
		Expect(first.Skipped).To(BeEmpty())
		Expect(first.Records).To(HaveLen(3))

		aud := first.Records[0]
		Expect(*aud.TotalReturn).To(Equal(21.0))
		Expect(aud.SharpeRatio).To(BeNil())
		Expect(aud.Correlation).To(BeNil())
		Expect(aud.Errors).To(HaveLen(1))

		cad := first.Records[1]
		Expect(cad.TotalReturn).To(BeNil())
		Expect(cad.Errors).To(ConsistOf("broken"))

		Expect(export.Results[1].Skipped).To(ContainSubstring("input file does not exist"))
	})

	It("omits infinite statistics", func() {
		export := report.NewExport([]*analysis.Result{infiniteResult()})
		rec := export.Results[0].Records[0]
		Expect(rec.TotalReturn).To(BeNil())
		Expect(rec.SharpeRatio).To(BeNil())
		Expect(rec.Errors).To(BeEmpty())
		Expect(*rec.MaxDrawDown).To(Equal(12.5))

		buf := &bytes.Buffer{}
		Expect(report.WriteJSON(buf, []*analysis.Result{infiniteResult()})).To(Succeed())
		Expect(buf.String()).ToNot(ContainSubstring("Inf"))
	})

	It("round trips through JSON", func() {
		buf := &bytes.Buffer{}
		Expect(report.WriteJSON(buf, sampleResults())).To(Succeed())

		var export report.Export
		Expect(json.Unmarshal(buf.Bytes(), &export)).To(Succeed())
		Expect(export.Results).To(HaveLen(2))
		Expect(*export.Results[0].Records[2].SharpeRatio).To(Equal(1.5))
		Expect(buf.String()).ToNot(ContainSubstring("NaN"))
	})

	It("writes TOML", func() {
		buf := &bytes.Buffer{}
		Expect(report.WriteTOML(buf, sampleResults())).To(Succeed())

		var export report.Export
		Expect(toml.Unmarshal(buf.Bytes(), &export)).To(Succeed())
		Expect(export.Results[0].Title).To(Equal("Portfolio 1 - Gradual Approach, Without Prediction"))
		Expect(*export.Results[0].Records[0].MaxDrawDown).To(BeNumerically("~", 9.0909, 1e-4))
	})
})
