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
	"github.com/joamag/mingus/asm"
	"github.com/joamag/mingus/vm"
	"github.com/spf13/cobra"
)

var disCmd = &cobra.Command{
	Use:   "dis object",
	Short: "Print a listing of an object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		obj, err := vm.LoadFile(args[0])
		if err != nil {
			return err
		}
		return asm.DisassembleAll(obj, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
