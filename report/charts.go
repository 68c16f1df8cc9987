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

package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/penny-vault/rlperf/analysis"
	"github.com/penny-vault/rlperf/dataframe"
	"github.com/penny-vault/rlperf/dataset"
	"github.com/penny-vault/rlperf/metrics"
	"github.com/rs/zerolog/log"
	"github.com/vicanso/go-charts/v2"
)

const (
	panelWidth  = 600
	panelHeight = 400
	navWidth    = 1600
	navHeight   = 900
)

var (
	ErrNothingToPlot = errors.New("nothing to plot")
)

// MetricsChart renders bar charts of the result's statistics as a PNG grid. With full set the grid is
// 2×2 (total return, max draw down, sharpe ratio, correlation), otherwise 2×1 (total return,
// max draw down). Entries that failed are left out; undefined statistics are drawn as 0
func MetricsChart(res *analysis.Result, full bool) ([]byte, error) {
	labels := make([]string, 0, len(res.Entries))
	totalReturn := make([]float64, 0, len(res.Entries))
	maxDrawDown := make([]float64, 0, len(res.Entries))
	sharpe := make([]float64, 0, len(res.Entries))
	correlation := make([]float64, 0, len(res.Entries))

	for _, entry := range res.Entries {
		if entry.Err != nil || entry.Record == nil {
			continue
		}
		labels = append(labels, entry.Label)
		totalReturn = append(totalReturn, plotValue(entry.Record.TotalReturn))
		maxDrawDown = append(maxDrawDown, plotValue(entry.Record.MaxDrawDown))
		sharpe = append(sharpe, plotValue(entry.Record.SharpeRatio))
		correlation = append(correlation, plotValue(entry.Record.Correlation))
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %s has no metrics", ErrNothingToPlot, res.Job.Title())
	}

	type panel struct {
		title  string
		values []float64
	}

	panels := []panel{
		{"Total Return (%)", totalReturn},
		{"Max Drawdown (%)", maxDrawDown},
	}
	if full {
		panels = append(panels,
			panel{"Sharpe Ratio", sharpe},
			panel{"Return-Drawdown Correlation", correlation},
		)
	}

	images := make([]image.Image, 0, len(panels))
	for _, p := range panels {
		img, err := barPanel(p.title, labels, p.values)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return grid(images, 2)
}

// ChartPath returns the file a job's metrics chart is written to
func ChartPath(dir string, job analysis.Job) string {
	predict := "non_predicted"
	if job.Predict {
		predict = "predicted"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s_metrics.png", job.Portfolio.ID, job.Approach, predict))
}

// NAVChartTitle returns the heading of a job's NAV comparison chart, e.g.
// "Portfolio 1 Net Asset Comparison - Full Rebalancing with Prediction Model"
func NAVChartTitle(job analysis.Job) string {
	rebalancing := "Gradual"
	if job.Approach == dataset.FullSwing {
		rebalancing = "Full"
	}
	with := "without"
	if job.Predict {
		with = "with"
	}
	return fmt.Sprintf("%s Net Asset Comparison - %s Rebalancing %s Prediction Model", job.Portfolio.Title(), rebalancing, with)
}

// NAVChartFile returns the file name of a job's NAV comparison chart
func NAVChartFile(job analysis.Job) string {
	predict := "non_predicted"
	if job.Predict {
		predict = "predicted"
	}
	return fmt.Sprintf("daily_nav_comp_%s_%s.png", job.Approach, predict)
}

// WriteMetricsCharts renders the metrics chart of every result that was not skipped into dir
func WriteMetricsCharts(dir string, results []*analysis.Result, full bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}

		img, err := MetricsChart(res, full)
		if err != nil {
			log.Warn().Err(err).Str("Title", res.Job.Title()).Msg("could not render metrics chart")
			continue
		}

		fn := ChartPath(dir, res.Job)
		if err := os.WriteFile(fn, img, 0o644); err != nil {
			return err
		}
		log.Info().Str("Path", fn).Msg("wrote metrics chart")
	}

	return nil
}

// NAVChart renders a line chart comparing the strategy's NAV (Net, Close or NAV column) against
// the passive NAV of each asset. Both dataframes are restricted to their common dates
func NAVChart(title string, strategy, passive *dataframe.DataFrame, assets []string) ([]byte, error) {
	aligned := dataframe.Align(strategy, passive)
	strategy, passive = aligned[0], aligned[1]

	if strategy.Len() == 0 {
		return nil, fmt.Errorf("%w: strategy and passive NAV share no dates", ErrNothingToPlot)
	}

	colName, err := metrics.ResolveValueColumn(strategy)
	if err != nil {
		return nil, err
	}

	net, err := strategy.Col(colName)
	if err != nil {
		return nil, err
	}

	names := []string{"RL rebalanced"}
	values := [][]float64{net.Vals[0]}
	for _, asset := range assets {
		col, err := passive.Col(asset)
		if err != nil {
			log.Warn().Str("Asset", asset).Msg("asset missing from passive NAV")
			continue
		}
		names = append(names, asset)
		values = append(values, col.Vals[0])
	}

	xLabels := make([]string, strategy.Len())
	for idx, dt := range strategy.Dates {
		xLabels[idx] = dt.Format("2006-01-02")
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, series := range values {
		for idx, v := range series {
			if math.IsNaN(v) {
				series[idx] = 0
				continue
			}
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: 12,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 6}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: names,
			Top:  charts.PositionBottom,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(navWidth),
		charts.HeightOptionFunc(navHeight),
	)
	if err != nil {
		return nil, err
	}

	return p.Bytes()
}

func barPanel(title string, labels []string, values []float64) (image.Image, error) {
	seriesList := charts.NewSeriesListDataFromValues([][]float64{values}, charts.ChartTypeBar)
	p, err := charts.Render(
		charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data: labels,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, err
	}

	return png.Decode(bytes.NewReader(buf))
}

// grid lays images out left to right, top to bottom in a grid with the given number of columns
func grid(images []image.Image, cols int) ([]byte, error) {
	rows := (len(images) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*panelWidth, rows*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for idx, img := range images {
		x := (idx % cols) * panelWidth
		y := (idx / cols) * panelHeight
		dst := image.Rect(x, y, x+panelWidth, y+panelHeight)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Over)
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plotValue returns the value of m, or 0 when the statistic is undefined or failed
func plotValue(m metrics.Measure) float64 {
	if !m.Valid() {
		return 0
	}
	return m.Value
}
