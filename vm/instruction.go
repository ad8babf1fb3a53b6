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

// Word is an encoded 32 bits instruction:
//
//	bits 31-16	opcode
//	bits 15-12	unused
//	bits 11-8	arg1
//	bits 7-4	arg2
//	bits 3-0	arg3
//	bits 7-0	immediate (arg2 and arg3 combined)
type Word uint32

// Fields holds the raw bit fields of an instruction word.
type Fields struct {
	Op        Opcode
	Arg1      uint8
	Arg2      uint8
	Arg3      uint8
	Immediate uint8
}

// Fields splits w into its raw bit fields.
func (w Word) Fields() Fields {
	return Fields{
		Op:        Opcode(w >> 16),
		Arg1:      uint8(w>>8) & 0xF,
		Arg2:      uint8(w>>4) & 0xF,
		Arg3:      uint8(w) & 0xF,
		Immediate: uint8(w),
	}
}

func word(op Opcode, arg1, imm uint8) Word {
	return Word(op)<<16 | Word(arg1&0xF)<<8 | Word(imm)
}

// Instruction is a decoded instruction. The concrete type identifies the
// opcode and only carries the operands used by that opcode.
type Instruction interface {
	Op() Opcode
	String() string
	encode() Word
}

type (
	// Halt stops the VM.
	Halt struct{}
	// Load pushes the global at Addr.
	Load struct{ Addr uint8 }
	// LoadI pushes the literal Value.
	LoadI struct{ Value uint8 }
	// Store pops TOS into the global at Addr.
	Store struct{ Addr uint8 }
	// Add replaces NOS and TOS with NOS+TOS.
	Add struct{}
	// Sub replaces NOS and TOS with NOS-TOS.
	Sub struct{}
	// Pop drops TOS.
	Pop struct{}
	// Cmp pops TOS and replaces the new TOS with the result of the
	// comparison. Kind is CmpEq or CmpNeq.
	Cmp struct{ Kind uint8 }
	// Jmp jumps Offset instructions relative to its own position.
	Jmp struct{ Offset int8 }
	// JmpEq pops TOS and jumps relative if it was 1.
	JmpEq struct{ Offset int8 }
	// JmpNeq pops TOS and jumps relative if it was 0.
	JmpNeq struct{ Offset int8 }
	// JmpAbs jumps to the instruction at Target.
	JmpAbs struct{ Target uint8 }
	// Call records Args, Target and the return address on the call stack and
	// jumps to Target.
	Call struct {
		Args   uint8
		Target uint8
	}
	// Ret returns from the last Call.
	Ret struct{}
	// Print writes TOS as a decimal number.
	Print struct{}
	// PrintS writes the text of the data element whose offset is TOS.
	PrintS struct{}
	// Invalid is any word whose opcode field is not a known opcode.
	Invalid struct{ Word Word }
)

func (Halt) Op() Opcode { return OpHalt }
func (Load) Op() Opcode { return OpLoad }
func (LoadI) Op() Opcode { return OpLoadI }
func (Store) Op() Opcode { return OpStore }
func (Add) Op() Opcode { return OpAdd }
func (Sub) Op() Opcode { return OpSub }
func (Pop) Op() Opcode { return OpPop }
func (Cmp) Op() Opcode { return OpCmp }
func (Jmp) Op() Opcode { return OpJmp }
func (JmpEq) Op() Opcode { return OpJmpEq }
func (JmpNeq) Op() Opcode { return OpJmpNeq }
func (JmpAbs) Op() Opcode { return OpJmpAbs }
func (Call) Op() Opcode { return OpCall }
func (Ret) Op() Opcode { return OpRet }
func (Print) Op() Opcode { return OpPrint }
func (PrintS) Op() Opcode { return OpPrintS }
func (i Invalid) Op() Opcode { return Opcode(i.Word >> 16) }

func (Halt) encode() Word { return word(OpHalt, 0, 0) }
func (i Load) encode() Word { return word(OpLoad, 0, i.Addr) }
func (i LoadI) encode() Word { return word(OpLoadI, 0, i.Value) }
func (i Store) encode() Word { return word(OpStore, 0, i.Addr) }
func (Add) encode() Word { return word(OpAdd, 0, 0) }
func (Sub) encode() Word { return word(OpSub, 0, 0) }
func (Pop) encode() Word { return word(OpPop, 0, 0) }
func (i Cmp) encode() Word { return word(OpCmp, i.Kind, 0) }
func (i Jmp) encode() Word { return word(OpJmp, 0, uint8(i.Offset)) }
func (i JmpEq) encode() Word { return word(OpJmpEq, 0, uint8(i.Offset)) }
func (i JmpNeq) encode() Word { return word(OpJmpNeq, 0, uint8(i.Offset)) }
func (i JmpAbs) encode() Word { return word(OpJmpAbs, 0, i.Target) }
func (i Call) encode() Word { return word(OpCall, i.Args, i.Target) }
func (Ret) encode() Word { return word(OpRet, 0, 0) }
func (Print) encode() Word { return word(OpPrint, 0, 0) }
func (PrintS) encode() Word { return word(OpPrintS, 0, 0) }
func (i Invalid) encode() Word { return i.Word }

func (Halt) String() string { return "halt" }
func (i Load) String() string { return "load " + strconv.Itoa(int(i.Addr)) }
func (i LoadI) String() string { return "loadi " + strconv.Itoa(int(i.Value)) }
func (i Store) String() string { return "store " + strconv.Itoa(int(i.Addr)) }
func (Add) String() string { return "add" }
func (Sub) String() string { return "sub" }
func (Pop) String() string { return "pop" }
func (i Cmp) String() string { return "cmp " + strconv.Itoa(int(i.Kind)) }
func (i Jmp) String() string { return "jmp " + relative(i.Offset) }
func (i JmpEq) String() string { return "jmp_eq " + relative(i.Offset) }
func (i JmpNeq) String() string { return "jmp_neq " + relative(i.Offset) }
func (i JmpAbs) String() string { return "jmp_abs " + strconv.Itoa(int(i.Target)) }
func (i Call) String() string {
	return "call " + strconv.Itoa(int(i.Target)) + " " + strconv.Itoa(int(i.Args))
}
func (Ret) String() string { return "ret" }
func (Print) String() string { return "print" }
func (PrintS) String() string { return "prints" }
func (i Invalid) String() string {
	return ".word 0x" + strconv.FormatUint(uint64(i.Word), 16)
}

func relative(off int8) string {
	if off >= 0 {
		return "+" + strconv.Itoa(int(off))
	}
	return strconv.Itoa(int(off))
}

// Encode returns the instruction word for i.
func Encode(i Instruction) Word {
	return i.encode()
}

// Decode returns the instruction encoded in w. Decode never fails: words with
// an unknown opcode decode as Invalid and are rejected by the VM when
// evaluated.
func Decode(w Word) Instruction {
	f := w.Fields()
	switch f.Op {
	case OpHalt:
		return Halt{}
	case OpLoad:
		return Load{f.Immediate}
	case OpLoadI:
		return LoadI{f.Immediate}
	case OpStore:
		return Store{f.Immediate}
	case OpAdd:
		return Add{}
	case OpSub:
		return Sub{}
	case OpPop:
		return Pop{}
	case OpCmp:
		return Cmp{f.Arg1}
	case OpJmp:
		return Jmp{int8(f.Immediate)}
	case OpJmpEq:
		return JmpEq{int8(f.Immediate)}
	case OpJmpNeq:
		return JmpNeq{int8(f.Immediate)}
	case OpJmpAbs:
		return JmpAbs{f.Immediate}
	case OpCall:
		return Call{Args: f.Arg1, Target: f.Immediate}
	case OpRet:
		return Ret{}
	case OpPrint:
		return Print{}
	case OpPrintS:
		return PrintS{}
	}
	return Invalid{w}
}
