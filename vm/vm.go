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

	"github.com/pkg/errors"
)

// Cell is the raw type stored in the operand stack, call stack and globals.
type Cell int32

// Default capacities.
const (
	StackSize     = 1024
	CallStackSize = 1024
	GlobalsSize   = 256
)

// Error kinds. Errors returned by the VM wrap one of these; use errors.Cause
// or errors.Is to test for them.
var (
	// ErrFormat reports a malformed object file.
	ErrFormat = errors.New("malformed object")
	// ErrInvalidOpcode reports an unknown opcode reached at run time.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrCorrupted reports a violated instruction precondition: stack or
	// call stack underflow, pc or globals index out of bounds, etc.
	ErrCorrupted = errors.New("corrupted program")
	// ErrCapacity reports an operand stack or call stack overflow.
	ErrCapacity = errors.New("capacity exceeded")
)

// Instance represents a Mingus VM instance.
type Instance struct {
	PC         int           // Program Counter
	Code       []Word        // program code
	Data       []DataElement // data section
	Header     Header        // header of the loaded object
	Ins        Instruction   // last decoded instruction
	running    bool
	sp         int
	csp        int
	stack      []Cell
	calls      []Cell
	globals    []Cell
	insCount   int64
	output     io.Writer
	trace      io.Writer
	strictHalt bool
}

// An Option is a function for setting a VM Instance's options in New.
type Option func(*Instance) error

// StackCap sets the operand stack capacity.
func StackCap(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid stack size %d", size)
		}
		i.stack = make([]Cell, size)
		return nil
	}
}

// CallStackCap sets the call stack capacity in cells. Each CALL uses three.
func CallStackCap(size int) Option {
	return func(i *Instance) error {
		if size < 3 {
			return errors.Errorf("invalid call stack size %d", size)
		}
		i.calls = make([]Cell, size)
		return nil
	}
}

// GlobalsCap sets the number of globals. It must be large enough to hold one
// slot per data element.
func GlobalsCap(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid globals size %d", size)
		}
		i.globals = make([]Cell, size)
		return nil
	}
}

// Output sets the writer used by PRINT and PRINTS. Output is discarded if
// none is set.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// Trace enables instruction tracing to w.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		i.trace = w
		return nil
	}
}

// StrictHalt makes HALT fail if the operand stack is not empty.
func StrictHalt(strict bool) Option {
	return func(i *Instance) error {
		i.strictHalt = strict
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Mingus VM instance ready to run the given object.
//
// The globals slot of each data element is initialized with the element's
// offset so that LOAD of a data symbol followed by PRINTS prints its text.
func New(obj *Object, opts ...Option) (*Instance, error) {
	i := &Instance{
		Code:    obj.Code,
		Data:    obj.Data,
		Header:  obj.Header(),
		running: true,
		output:  io.Discard,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.stack == nil {
		i.stack = make([]Cell, StackSize)
	}
	if i.calls == nil {
		i.calls = make([]Cell, CallStackSize)
	}
	if i.globals == nil {
		i.globals = make([]Cell, GlobalsSize)
	}
	for _, e := range i.Data {
		if int(e.Offset) >= len(i.globals) {
			return nil, errors.Wrapf(ErrCapacity, "data element %q: offset %d exceeds %d globals", e.Name, e.Offset, len(i.globals))
		}
		i.globals[e.Offset] = Cell(e.Offset)
	}
	return i, nil
}

// Running returns false once the VM has executed HALT.
func (i *Instance) Running() bool {
	return i.running
}

// Stack returns the contents of the operand stack, bottom first.
func (i *Instance) Stack() []Cell {
	return i.stack[:i.sp]
}

// CallStack returns the contents of the call stack, bottom first. Each call
// frame is made of three cells: argument count, callee address and return
// address.
func (i *Instance) CallStack() []Cell {
	return i.calls[:i.csp]
}

// Globals returns the globals array.
func (i *Instance) Globals() []Cell {
	return i.globals
}

// InstructionCount returns the number of instructions executed during the last
// call to Run.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
