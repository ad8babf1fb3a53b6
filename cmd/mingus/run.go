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
	"bufio"
	"fmt"
	"io"

	"github.com/joamag/mingus/internal/config"
	"github.com/joamag/mingus/vm"
	"github.com/spf13/cobra"
)

var (
	trace bool
	dump  bool
)

var runCmd = &cobra.Command{
	Use:   "run object",
	Short: "Execute an object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		obj, err := vm.LoadFile(args[0])
		if err != nil {
			return err
		}

		stdout := bufio.NewWriter(cmd.OutOrStdout())
		opts := append(cfg.VMOptions(), vm.Output(stdout))
		if trace || cfg.Trace {
			opts = append(opts, vm.Trace(cmd.ErrOrStderr()))
		}
		i, err := vm.New(obj, opts...)
		if err != nil {
			return err
		}

		// flush output, dump state
		defer func() {
			if ferr := stdout.Flush(); err == nil {
				err = ferr
			}
			if dump {
				if derr := dumpVM(i, cmd.OutOrStdout()); err == nil {
					err = derr
				}
			}
			if err != nil && debug {
				state(i, cmd.ErrOrStderr())
			}
		}()
		return i.Run()
	},
}

// state writes the position and stacks of the VM.
func state(i *vm.Instance, w io.Writer) {
	if i.PC >= 0 && i.PC < len(i.Code) {
		fmt.Fprintf(w, "PC: %v (%v), Stack: %v, Calls: %v\n", i.PC, vm.Decode(i.Code[i.PC]), i.Stack(), i.CallStack())
	} else {
		fmt.Fprintf(w, "PC: %v, Stack: %v, Calls: %v\n", i.PC, i.Stack(), i.CallStack())
	}
}

func init() {
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace executed instructions on stderr")
	runCmd.Flags().BoolVar(&dump, "dump", false, "dump stacks and globals upon exit")
	rootCmd.AddCommand(runCmd)
}
