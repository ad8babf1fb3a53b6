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

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Push pushes v onto the operand stack.
func (i *Instance) Push(v Cell) error {
	if i.sp >= len(i.stack) {
		return errors.Wrapf(ErrCapacity, "stack overflow (%d cells)", len(i.stack))
	}
	i.stack[i.sp] = v
	i.sp++
	return nil
}

// Pop pops the value on top of the operand stack.
func (i *Instance) Pop() (Cell, error) {
	if i.sp == 0 {
		return 0, errors.Wrap(ErrCorrupted, "stack underflow")
	}
	i.sp--
	return i.stack[i.sp], nil
}

func (i *Instance) tos() (Cell, error) {
	if i.sp == 0 {
		return 0, errors.Wrap(ErrCorrupted, "stack underflow")
	}
	return i.stack[i.sp-1], nil
}

// pop2 pops TOS then NOS and returns them in push order.
func (i *Instance) pop2() (a, b Cell, err error) {
	if i.sp < 2 {
		return 0, 0, errors.Wrapf(ErrCorrupted, "stack underflow (depth %d, need 2)", i.sp)
	}
	i.sp -= 2
	return i.stack[i.sp], i.stack[i.sp+1], nil
}

// Rpush pushes a call frame onto the call stack.
func (i *Instance) Rpush(args, callee, ret Cell) error {
	if i.csp+3 > len(i.calls) {
		return errors.Wrapf(ErrCapacity, "call stack overflow (%d cells)", len(i.calls))
	}
	i.calls[i.csp] = args
	i.calls[i.csp+1] = callee
	i.calls[i.csp+2] = ret
	i.csp += 3
	return nil
}

// Rpop pops the call frame on top of the call stack.
func (i *Instance) Rpop() (args, callee, ret Cell, err error) {
	if i.csp < 3 {
		return 0, 0, 0, errors.Wrap(ErrCorrupted, "call stack underflow")
	}
	i.csp -= 3
	return i.calls[i.csp], i.calls[i.csp+1], i.calls[i.csp+2], nil
}

func (i *Instance) global(addr Cell) (*Cell, error) {
	if addr < 0 || int(addr) >= len(i.globals) {
		return nil, errors.Wrapf(ErrCorrupted, "global %d out of bounds (%d globals)", addr, len(i.globals))
	}
	return &i.globals[addr], nil
}

func (i *Instance) write(s string) error {
	if _, err := io.WriteString(i.output, s); err != nil {
		return errors.Wrap(err, "output")
	}
	return nil
}

// Step fetches, decodes and evaluates the instruction at PC.
func (i *Instance) Step() error {
	pos := i.PC
	if pos < 0 || pos >= len(i.Code) {
		return errors.Wrapf(ErrCorrupted, "pc=%d out of bounds (%d instructions)", pos, len(i.Code))
	}
	w := i.Code[pos]
	i.PC++
	i.Ins = Decode(w)
	if i.trace != nil {
		if err := i.traceStep(pos); err != nil {
			return err
		}
	}
	i.insCount++
	if err := i.eval(pos); err != nil {
		return errors.Wrapf(err, "pc=%d: %v", pos, i.Ins)
	}
	return nil
}

// Run executes the program until HALT or an error occurs.
//
// Execution can be resumed after an error by fixing the cause and calling Run
// again. The instruction counter is reset on each call.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d/%d, stack %d/%d, call stack %d/%d", i.PC, len(i.Code), i.sp, len(i.stack), i.csp, len(i.calls))
			default:
				panic(e)
			}
		}
	}()
	i.insCount = 0
	for i.running {
		if err = i.Step(); err != nil {
			return err
		}
	}
	return nil
}

// jump sets PC relative to the position of the jump instruction itself.
func (i *Instance) jump(pos int, off int8) {
	i.PC = pos + int(off)
}

func (i *Instance) eval(pos int) error {
	switch ins := i.Ins.(type) {
	case Halt:
		if i.strictHalt && i.sp != 0 {
			return errors.Wrapf(ErrCorrupted, "halt with %d values on the stack", i.sp)
		}
		i.running = false
	case Load:
		g, err := i.global(Cell(ins.Addr))
		if err != nil {
			return err
		}
		return i.Push(*g)
	case LoadI:
		return i.Push(Cell(ins.Value))
	case Store:
		g, err := i.global(Cell(ins.Addr))
		if err != nil {
			return err
		}
		v, err := i.Pop()
		if err != nil {
			return err
		}
		*g = v
	case Add:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		return i.Push(a + b)
	case Sub:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		return i.Push(a - b)
	case Pop:
		_, err := i.Pop()
		return err
	case Cmp:
		if ins.Kind != CmpEq && ins.Kind != CmpNeq {
			return errors.Wrapf(ErrCorrupted, "invalid comparison kind %d", ins.Kind)
		}
		if i.sp < 2 {
			return errors.Wrapf(ErrCorrupted, "stack underflow (depth %d, need 2)", i.sp)
		}
		b, _ := i.Pop()
		a := &i.stack[i.sp-1]
		if (*a == b) == (ins.Kind == CmpEq) {
			*a = 1
		} else {
			*a = 0
		}
	case Jmp:
		i.jump(pos, ins.Offset)
	case JmpEq:
		v, err := i.Pop()
		if err != nil {
			return err
		}
		if v == 1 {
			i.jump(pos, ins.Offset)
		}
	case JmpNeq:
		v, err := i.Pop()
		if err != nil {
			return err
		}
		if v == 0 {
			i.jump(pos, ins.Offset)
		}
	case JmpAbs:
		i.PC = int(ins.Target)
	case Call:
		if err := i.Rpush(Cell(ins.Args), Cell(ins.Target), Cell(i.PC)); err != nil {
			return err
		}
		i.PC = int(ins.Target)
	case Ret:
		_, _, ret, err := i.Rpop()
		if err != nil {
			return err
		}
		i.PC = int(ret)
	case Print:
		v, err := i.tos()
		if err != nil {
			return err
		}
		return i.write(strconv.Itoa(int(v)) + "\n")
	case PrintS:
		v, err := i.tos()
		if err != nil {
			return err
		}
		if _, err = i.global(v); err != nil {
			return err
		}
		if int(v) >= len(i.Data) {
			return errors.Wrapf(ErrCorrupted, "no data element at offset %d", v)
		}
		return i.write(i.Data[v].Value + "\n")
	default:
		return errors.Wrapf(ErrInvalidOpcode, "opcode %d", ins.Op())
	}
	return nil
}
