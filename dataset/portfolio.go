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

package dataset

import (
	"fmt"
	"strings"
)

// Portfolio is a named group of assets whose NAV files share a directory
type Portfolio struct {
	ID     string   `mapstructure:"id" toml:"id"`
	Name   string   `mapstructure:"name" toml:"name"`
	Assets []string `mapstructure:"assets" toml:"assets"`
}

// Title returns the display name of the portfolio, e.g. "Portfolio 1" for id portfolio1
func (p Portfolio) Title() string {
	if p.Name != "" {
		return p.Name
	}

	if num := strings.TrimPrefix(p.ID, "portfolio"); num != p.ID && num != "" {
		return "Portfolio " + num
	}

	return p.ID
}

// DefaultPortfolios returns the portfolios analyzed when none are configured
func DefaultPortfolios() []Portfolio {
	return []Portfolio{
		{ID: "portfolio1", Assets: []string{"AUD", "CAD", "USD"}},
		{ID: "portfolio2", Assets: []string{"USD", "CNY", "INR"}},
		{ID: "portfolio3", Assets: []string{"Govt", "ESG", "Shariah"}},
	}
}

// Approach is the rebalancing approach used by the RL strategy
type Approach string

const (
	Gradual   Approach = "gradual"
	FullSwing Approach = "full_swing"
)

// Approaches lists every rebalancing approach in report order
var Approaches = []Approach{Gradual, FullSwing}

// ParseApproach converts a string into an Approach
func ParseApproach(s string) (Approach, error) {
	switch Approach(strings.ToLower(strings.TrimSpace(s))) {
	case Gradual:
		return Gradual, nil
	case FullSwing, "full-swing", "fullswing":
		return FullSwing, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownApproach, s)
	}
}

// Title returns the display name of the approach, e.g. "Full Swing"
func (a Approach) Title() string {
	switch a {
	case Gradual:
		return "Gradual"
	case FullSwing:
		return "Full Swing"
	default:
		return string(a)
	}
}

// Subfolder returns the directory holding the strategy output for the approach. Strategies run
// with the prediction model write to the non_lagged folder
func (a Approach) Subfolder(predict bool) string {
	subfolder := "lagged"
	if predict {
		subfolder = "non_lagged"
	}

	if a == FullSwing {
		subfolder = "fs_" + subfolder
	}

	return subfolder
}
