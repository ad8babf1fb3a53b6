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
	"io"

	"github.com/joamag/mingus/internal/iox"
	"github.com/joamag/mingus/vm"
)

// dumpVM dumps the operand stack, call stack and globals to the specified
// io.Writer, separated by ASCII group separators.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	ew.Write([]byte{'\x1C'})
	ew.Cells(i.Stack())
	ew.Write([]byte{'\x1D'})
	ew.Cells(i.CallStack())
	ew.Write([]byte{'\x1D'})
	ew.Cells(i.Globals())
	_, err := ew.Write([]byte{'\n'})
	return err
}
