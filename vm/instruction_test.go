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

package vm_test

import (
	"testing"

	"github.com/joamag/mingus/vm"
)

func allInstructions() []vm.Instruction {
	ins := []vm.Instruction{
		vm.Halt{}, vm.Add{}, vm.Sub{}, vm.Pop{}, vm.Ret{}, vm.Print{}, vm.PrintS{},
		vm.Invalid{Word: 0x00100000}, vm.Invalid{Word: 0xFFFFFFFF},
	}
	for v := 0; v < 256; v++ {
		ins = append(ins,
			vm.Load{Addr: uint8(v)},
			vm.LoadI{Value: uint8(v)},
			vm.Store{Addr: uint8(v)},
			vm.Jmp{Offset: int8(v)},
			vm.JmpEq{Offset: int8(v)},
			vm.JmpNeq{Offset: int8(v)},
			vm.JmpAbs{Target: uint8(v)},
		)
		for a := 0; a < 16; a++ {
			ins = append(ins, vm.Call{Args: uint8(a), Target: uint8(v)})
		}
	}
	for k := 0; k < 16; k++ {
		ins = append(ins, vm.Cmp{Kind: uint8(k)})
	}
	return ins
}

func TestDecodeEncode(t *testing.T) {
	for _, i := range allInstructions() {
		w := vm.Encode(i)
		if d := vm.Decode(w); d != i {
			t.Errorf("%v: encoded as %#08x, decoded as %v", i, w, d)
		}
		if op := vm.Decode(w).Op(); op != i.Op() {
			t.Errorf("%v: opcode %v != %v", i, op, i.Op())
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	tests := []struct {
		ins vm.Instruction
		w   vm.Word
	}{
		{vm.Halt{}, 0x00000000},
		{vm.LoadI{Value: 5}, 0x00020005},
		{vm.Cmp{Kind: vm.CmpNeq}, 0x00070200},
		{vm.Jmp{Offset: -2}, 0x000800FE},
		{vm.Call{Args: 3, Target: 0x42}, 0x000C0342},
		{vm.PrintS{}, 0x000F0000},
	}
	for _, test := range tests {
		if w := vm.Encode(test.ins); w != test.w {
			t.Errorf("%v: expected %#08x, got %#08x", test.ins, test.w, w)
		}
	}
	f := vm.Word(0x000C0A5F).Fields()
	if f.Op != vm.OpCall || f.Arg1 != 0xA || f.Arg2 != 5 || f.Arg3 != 0xF || f.Immediate != 0x5F {
		t.Errorf("bad fields %+v", f)
	}
}

func TestDecodeInvalid(t *testing.T) {
	w := vm.Word(0x00100000)
	i, ok := vm.Decode(w).(vm.Invalid)
	if !ok {
		t.Fatalf("expected Invalid, got %T", vm.Decode(w))
	}
	if i.Op().Valid() || i.Op() != 16 {
		t.Errorf("unexpected opcode %v", i.Op())
	}
	if vm.Opcode(16).String() != "op(16)" || vm.OpJmpNeq.String() != "jmp_neq" {
		t.Error("bad opcode names")
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		ins vm.Instruction
		s   string
	}{
		{vm.Load{Addr: 3}, "load 3"},
		{vm.Cmp{Kind: 1}, "cmp 1"},
		{vm.Jmp{Offset: 4}, "jmp +4"},
		{vm.JmpNeq{Offset: -4}, "jmp_neq -4"},
		{vm.JmpAbs{Target: 9}, "jmp_abs 9"},
		{vm.Call{Args: 2, Target: 7}, "call 7 2"},
		{vm.Invalid{Word: 0x00200001}, ".word 0x200001"},
	}
	for _, test := range tests {
		if s := test.ins.String(); s != test.s {
			t.Errorf("expected %q, got %q", test.s, s)
		}
	}
}
