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
	"math"

	"github.com/penny-vault/rlperf/dataframe"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultRiskFreeRate = 0.02
	DefaultTradingDays  = 252
)

// Options control how the risk adjusted statistics are computed
type Options struct {
	// RiskFreeRate is the annual risk free rate, e.g. 0.02 for 2%
	RiskFreeRate float64

	// TradingDays is the number of periods per year used to de-annualize the risk free
	// rate and annualize the Sharpe ratio
	TradingDays int
}

// DefaultOptions returns a 2% risk free rate over 252 trading days
func DefaultOptions() Options {
	return Options{
		RiskFreeRate: DefaultRiskFreeRate,
		TradingDays:  DefaultTradingDays,
	}
}

// Measure is a single statistic. When Err is set the statistic could not be computed and
// Value is NaN
type Measure struct {
	Value float64
	Err   error
}

// Valid returns true when the statistic was computed and is a finite number
func (m Measure) Valid() bool {
	return m.Err == nil && !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0)
}

func measure(val float64, err error) Measure {
	if err != nil {
		return Measure{Value: math.NaN(), Err: err}
	}
	return Measure{Value: val}
}

// Record is the set of performance statistics for one asset or strategy
type Record struct {
	Label       string
	TotalReturn Measure // percent
	MaxDrawDown Measure // percent
	SharpeRatio Measure
	Correlation Measure // between period return and draw down
	NumRows     int
}

// MarshalZerologObject adds the record's statistics to a log event
func (r *Record) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Label", r.Label).
		Int("NumRows", r.NumRows).
		Float64("TotalReturn", r.TotalReturn.Value).
		Float64("MaxDrawDown", r.MaxDrawDown.Value).
		Float64("SharpeRatio", r.SharpeRatio.Value).
		Float64("Correlation", r.Correlation.Value)
}

// Calculate computes total return, max draw down, sharpe ratio and the return / draw down
// correlation for the NAV series in df. Each statistic is computed independently; a statistic
// that cannot be computed carries its own error. An error is returned only when no statistic
// can be computed, i.e. the value column is missing.
//
// Series with fewer than 2 rows produce NaN statistics rather than an error.
func Calculate(label string, df *dataframe.DataFrame, opts Options) (*Record, error) {
	series, err := BuildSeries(df)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	return CalculateSeries(label, series, opts), nil
}

// CalculateSeries computes the statistics of an already derived series
func CalculateSeries(label string, series *Series, opts Options) *Record {
	record := &Record{
		Label:       label,
		NumRows:     len(series.Values),
		TotalReturn: Measure{Value: TotalReturn(series.Values)},
		MaxDrawDown: Measure{Value: MaxDrawDown(series.DrawDowns)},
		SharpeRatio: Measure{Value: SharpeRatio(series.Returns, opts.RiskFreeRate, opts.TradingDays)},
	}

	record.Correlation = measure(Correlation(series.Returns, series.DrawDowns))

	return record
}

// TotalReturn is the percent change between the first and last value of the entire series.
// An empty series has no return
func TotalReturn(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return (values[len(values)-1]/values[0] - 1.0) * 100.0
}

// MaxDrawDown is the largest draw down in percent. NaN draw downs are ignored; if no draw down
// is defined the result is NaN
func MaxDrawDown(drawDowns []float64) float64 {
	maxDD := math.NaN()
	for _, dd := range drawDowns {
		if math.IsNaN(dd) {
			continue
		}
		if math.IsNaN(maxDD) || dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD * 100.0
}

// SharpeRatio computes the annualized Sharpe ratio of the period returns
//
//	excess = return - riskFreeRate / tradingDays
//	sharpe = √tradingDays * mean(excess) / stddev(excess)
//
// The standard deviation is the sample standard deviation (N-1 denominator). Fewer than 2
// returns or a standard deviation of zero yields NaN.
func SharpeRatio(returns []float64, riskFreeRate float64, tradingDays int) float64 {
	periodRF := riskFreeRate / float64(tradingDays)

	excess := make([]float64, 0, len(returns))
	for _, ret := range returns {
		if math.IsNaN(ret) {
			continue
		}
		excess = append(excess, ret-periodRF)
	}

	if len(excess) < 2 {
		return math.NaN()
	}

	mean, stdev := stat.MeanStdDev(excess, nil)
	if stdev == 0 {
		return math.NaN()
	}

	return math.Sqrt(float64(tradingDays)) * mean / stdev
}

// Correlation computes the Pearson correlation between the period returns and draw downs.
// Both series must be co-indexed; differing lengths return ErrMismatchedSeriesLength. Fewer
// than 2 observations or a constant series yields NaN.
func Correlation(returns, drawDowns []float64) (float64, error) {
	if len(returns) != len(drawDowns) {
		return math.NaN(), fmt.Errorf("%w: %d returns, %d draw downs", ErrMismatchedSeriesLength, len(returns), len(drawDowns))
	}

	if len(returns) < 2 {
		return math.NaN(), nil
	}

	return stat.Correlation(returns, drawDowns, nil), nil
}
