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

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// commitHash contains the current Git revision.
	// Use mage to build to make sure this gets set.
	commitHash string

	// buildDate contains the date of the current build.
	buildDate string
)

type Version struct {
	Major int
	Minor int
	Patch int

	// Suffix marks pre-release builds, e.g. "dev"
	Suffix string
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix == "" {
		return s
	}

	s += "-" + v.Suffix
	if commit := Commit(); commit != "" {
		s += "+" + strings.ToLower(commit)
	}
	return s
}

// Commit returns the git revision the binary was built from. Builds made without mage fall back
// to the revision stamped by the go tool.
func Commit() string {
	if commitHash != "" {
		return commitHash
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return ""
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Program   string
	Version   string
	OS        string
	Arch      string
	GoVersion string
	BuildDate string
	Commit    string
}

// CurrentBuild returns the build information of the running binary
func CurrentBuild() BuildInfo {
	date := buildDate
	if date == "" {
		date = "unknown"
	}

	return BuildInfo{
		Program:   "rlperf",
		Version:   "v" + CurrentVersion.String(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		BuildDate: date,
		Commit:    Commit(),
	}
}

// MarshalZerologObject logs the build information
func (b BuildInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Program", b.Program).
		Str("Version", b.Version).
		Str("GoVersion", b.GoVersion).
		Str("BuildDate", b.BuildDate).
		Str("Commit", b.Commit)
}

// GetDependencyList returns the module dependencies compiled into the binary as sorted
// path="version" pairs
func GetDependencyList() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	deps := make([]string, 0, len(bi.Deps))
	for _, dep := range bi.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}
	sort.Strings(deps)

	return deps
}

// BuildVersionString creates the text printed by "rlperf version". Dependencies are only
// listed when withDeps is set
func BuildVersionString(withDeps bool) string {
	b := CurrentBuild()

	versionString := fmt.Sprintf(`%s %s %s/%s

Build Date: %s
Commit: %s
Built with: %s`,
		b.Program, b.Version, b.OS, b.Arch, b.BuildDate, b.Commit, b.GoVersion)

	if withDeps {
		versionString += "\n\nDependencies:\n\n" + strings.Join(GetDependencyList(), "\n")
	}

	return versionString
}
