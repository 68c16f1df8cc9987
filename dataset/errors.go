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

import "errors"

var (
	ErrMissingInputFile = errors.New("input file does not exist")
	ErrUnknownPortfolio = errors.New("unknown portfolio")
	ErrUnknownApproach  = errors.New("unknown approach")
	ErrNoDateColumn     = errors.New("no date column")
	ErrMalformedRow     = errors.New("malformed row")
	ErrDuplicateDate    = errors.New("duplicate date")
	ErrEmptyFile        = errors.New("file has no header")
)
