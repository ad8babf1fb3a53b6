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

	"github.com/joamag/mingus/asm"
	"github.com/joamag/mingus/internal/config"
	"github.com/spf13/cobra"
)

var asmCmd = &cobra.Command{
	Use:   "asm source object",
	Short: "Assemble a source file into an object file",
	Long: `Asm assembles the given source file and writes the resulting object file.
On success it reports the number of data elements and instructions written,
including the halt instruction appended to every program. The object file is
not written if any error is found.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		obj, err := asm.AssembleFile(args[0], args[1], cfg.AsmOptions()...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d data elements, %d instructions\n", args[1], len(obj.Data), len(obj.Code))
		return err
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
}
