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

package asm

import (
	"math"

	"github.com/joamag/mingus/vm"
)

// link is the second pass: it resolves label references and encodes the
// instructions. Errors are recorded in p.errs.
func (p *parser) link() *vm.Object {
	obj := &vm.Object{
		Data: p.data,
		Code: make([]vm.Word, len(p.code)),
	}
	for k, in := range p.code {
		if ins, ok := p.resolve(in); ok {
			obj.Code[k] = vm.Encode(ins)
		}
	}
	return obj
}

func (p *parser) target(in *instr) (int, bool) {
	if in.target == "" {
		// missing operand, already reported
		return 0, false
	}
	t, ok := p.sym.label(in.target)
	if !ok {
		p.errorf(in.tat, "undefined label %q", in.target)
	}
	return t, ok
}

func (p *parser) resolve(in *instr) (vm.Instruction, bool) {
	switch in.op {
	case vm.OpJmp, vm.OpJmpEq, vm.OpJmpNeq:
		t, ok := p.target(in)
		if !ok {
			return nil, false
		}
		d := t - in.pos
		if d < math.MinInt8 || d > math.MaxInt8 {
			p.errorf(in.tat, "%s %s: displacement %d out of range", in.op, in.target, d)
			return nil, false
		}
		switch in.op {
		case vm.OpJmp:
			return vm.Jmp{Offset: int8(d)}, true
		case vm.OpJmpEq:
			return vm.JmpEq{Offset: int8(d)}, true
		}
		return vm.JmpNeq{Offset: int8(d)}, true
	case vm.OpJmpAbs, vm.OpCall:
		t, ok := p.target(in)
		if !ok {
			return nil, false
		}
		if t > math.MaxUint8 {
			p.errorf(in.tat, "%s %s: address %d out of range", in.op, in.target, t)
			return nil, false
		}
		if in.op == vm.OpJmpAbs {
			return vm.JmpAbs{Target: uint8(t)}, true
		}
		if !in.arg.set {
			return nil, false
		}
		return vm.Call{Args: uint8(in.arg.val), Target: uint8(t)}, true
	case vm.OpLoad, vm.OpLoadI, vm.OpStore:
		if !in.imm.set {
			return nil, false
		}
		v := uint8(in.imm.val)
		switch in.op {
		case vm.OpLoad:
			return vm.Load{Addr: v}, true
		case vm.OpLoadI:
			return vm.LoadI{Value: v}, true
		}
		return vm.Store{Addr: v}, true
	case vm.OpCmp:
		if !in.arg.set {
			return nil, false
		}
		return vm.Cmp{Kind: uint8(in.arg.val)}, true
	case vm.OpHalt:
		return vm.Halt{}, true
	case vm.OpAdd:
		return vm.Add{}, true
	case vm.OpSub:
		return vm.Sub{}, true
	case vm.OpPop:
		return vm.Pop{}, true
	case vm.OpRet:
		return vm.Ret{}, true
	case vm.OpPrint:
		return vm.Print{}, true
	case vm.OpPrintS:
		return vm.PrintS{}, true
	}
	return nil, false
}
