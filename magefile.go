//go:build mage

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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg" // mg contains helpful utility functions, like Deps
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "rlperf"
	modulePath = "github.com/penny-vault/rlperf"
	chartDir   = "charts"
)

// allow user to override go executable by running as GOEXE=xxx mage ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

var Default = Build

// Build the rlperf binary with version information
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(versionEnv(), goexe, "build", "-o", binaryName, "-ldflags", ldflags(), ".")
}

// Install rlperf into GOPATH/bin
func Install() error {
	return sh.RunWith(versionEnv(), goexe, "install", "-ldflags", ldflags(), ".")
}

// Remove the binary and generated charts
func Clean() error {
	fmt.Println("Cleaning...")
	if err := os.RemoveAll(binaryName); err != nil {
		return err
	}
	return os.RemoveAll(chartDir)
}

// Run formatting, vet and the race enabled test suite
func Check() {
	mg.SerialDeps(Fmt, Vet, TestRace)
}

// Run tests
func Test() error {
	fmt.Println("Go Test")
	return runVerbose(goexe, "test", "./...")
}

// Run tests with race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return runVerbose(goexe, "test", "-race", "./...")
}

// Write a coverage report to coverage.html
func Cover() error {
	fmt.Println("Go Coverage")
	if err := runVerbose(goexe, "test", "-coverprofile=coverage.out", "-covermode=count", "./..."); err != nil {
		return err
	}
	return sh.Run(goexe, "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Run gofmt linter
func Fmt() error {
	fmt.Println("Go Format")

	// gofmt doesn't exit with non-zero when it finds unformatted code
	// so we have to explicitly look for output
	out, err := sh.Output("gofmt", "-l", "analysis", "cmd", "common", "dataframe", "dataset", "metrics", "report", "main.go")
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(out)
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Run go vet linter
func Vet() error {
	fmt.Println("Go Vet")

	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %v", err)
	}
	return nil
}

// Build and run the analysis over the configured data directory, writing charts to ./charts
func Report() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "analyze", "--chart-dir", chartDir)
}

// Helpers

func ldflags() string {
	vars := []string{
		"-X " + modulePath + "/common.commitHash=$COMMIT_HASH",
		"-X " + modulePath + "/common.buildDate=$BUILD_DATE",
	}
	return strings.Join(vars, " ")
}

func versionEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

func runVerbose(cmd string, args ...string) error {
	if mg.Verbose() {
		return sh.RunV(cmd, args...)
	}

	output, err := sh.Output(cmd, args...)
	if err != nil {
		fmt.Fprint(os.Stderr, output)
	}
	return err
}
