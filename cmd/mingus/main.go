// This file is part of mingus - https://github.com/joamag/mingus
//
// Copyright 2026 The Mingus Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "mingus",
	Short:         "Assembler and virtual machine for Mingus programs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "load settings from YAML `file`")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report writes err to w. Error stack traces are included in debug mode.
func report(w io.Writer, err error, color bool) {
	prefix := "mingus: "
	if color {
		prefix = "\x1b[1;31mmingus:\x1b[0m "
	}
	if debug {
		fmt.Fprintf(w, "%s%+v\n", prefix, err)
		return
	}
	fmt.Fprintf(w, "%s%v\n", prefix, err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		report(os.Stderr, err, isTerminal(os.Stderr))
		os.Exit(1)
	}
}
