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

package vm

import "strconv"

// Opcode is the operation selector of an instruction. It occupies bits 31-16
// of an encoded instruction word.
type Opcode uint16

// Mingus opcodes.
const (
	OpHalt Opcode = iota
	OpLoad
	OpLoadI
	OpStore
	OpAdd
	OpSub
	OpPop
	OpCmp
	OpJmp
	OpJmpEq
	OpJmpNeq
	OpJmpAbs
	OpCall
	OpRet
	OpPrint
	OpPrintS

	opCount
)

// Comparison kinds accepted by CMP in arg1.
const (
	CmpEq  = 1
	CmpNeq = 2
)

var opcodes = [...]string{
	"halt",
	"load",
	"loadi",
	"store",
	"add",
	"sub",
	"pop",
	"cmp",
	"jmp",
	"jmp_eq",
	"jmp_neq",
	"jmp_abs",
	"call",
	"ret",
	"print",
	"prints",
}

// Valid returns true if op is one of the known opcodes.
func (op Opcode) Valid() bool {
	return op < opCount
}

// String returns the canonical mnemonic for op.
func (op Opcode) String() string {
	if op.Valid() {
		return opcodes[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}
