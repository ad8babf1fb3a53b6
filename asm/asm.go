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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/joamag/mingus/internal/iox"
	"github.com/joamag/mingus/vm"
	"github.com/pkg/errors"
)

// Default assembler limits.
const (
	MaxCode = 1024 // instructions, including the trailing halt
	MaxData = 64   // data elements
)

var opcodes = [...][]string{
	{"halt"},
	{"load"},
	{"loadi"},
	{"store"},
	{"add"},
	{"sub"},
	{"pop"},
	{"cmp"},
	{"jmp"},
	{"jmp_eq", "jeq"},
	{"jmp_neq", "jne"},
	{"jmp_abs", "jabs"},
	{"call"},
	{"ret"},
	{"print"},
	{"prints"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range opcodes {
		for _, n := range names {
			opcodeIndex[n] = vm.Opcode(op)
		}
	}
}

// An Option sets an assembler limit.
type Option func(*parser)

// MaxInstructions sets the maximum number of instructions in a program.
func MaxInstructions(n int) Option {
	return func(p *parser) { p.maxCode = n }
}

// MaxDataElements sets the maximum number of data elements in a program.
func MaxDataElements(n int) Option {
	return func(p *parser) { p.maxData = n }
}

// ErrMsg is a single assembler diagnostic.
type ErrMsg struct {
	Pos scanner.Position
	Msg string
}

func (e ErrMsg) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 diagnostics
// in source order of detection.
type ErrAsm []ErrMsg

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, m := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting object.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Assembly errors are returned as an ErrAsm value. No object is returned if
// any error was found.
func Assemble(name string, r io.Reader, opts ...Option) (*vm.Object, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	p := newParser(name, opts...)
	if err = newLexer(name, src, p).run(); err == errTooMany {
		return nil, p.errs
	}
	p.finish()
	obj := p.link()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return obj, nil
}

// AssembleFile assembles the source file src and saves the resulting object to
// dst. dst is left untouched if assembly fails.
func AssembleFile(src, dst string, opts ...Option) (*vm.Object, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	obj, err := Assemble(src, f, opts...)
	if err != nil {
		return nil, err
	}
	if err = vm.Save(dst, obj); err != nil {
		return nil, errors.Wrapf(err, "save %s", dst)
	}
	return obj, nil
}

// Disassemble writes a disassembly of the instruction at position pc to the
// specified io.Writer and returns the position of the next instruction and
// any write error. Relative jumps are followed by their absolute target.
func Disassemble(code []vm.Word, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	ins := vm.Decode(code[pc])
	io.WriteString(ew, ins.String())
	var off int8
	switch ins := ins.(type) {
	case vm.Jmp:
		off = ins.Offset
	case vm.JmpEq:
		off = ins.Offset
	case vm.JmpNeq:
		off = ins.Offset
	default:
		return pc + 1, ew.Err
	}
	io.WriteString(ew, "\t; "+strconv.Itoa(pc+int(off)))
	return pc + 1, ew.Err
}

// DisassembleAll writes a listing of obj to the specified io.Writer: the data
// section, if any, followed by the code. It will return any write error.
func DisassembleAll(obj *vm.Object, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	if len(obj.Data) > 0 {
		io.WriteString(ew, ".data\n")
		for _, e := range obj.Data {
			fmt.Fprintf(ew, "% 6d\t%s: %s", e.Offset, e.Name, e.Type)
			if e.Value != "" {
				io.WriteString(ew, " \""+e.Value+"\"")
			}
			ew.Write([]byte{'\n'})
		}
		io.WriteString(ew, ".text\n")
	}
	for pc := 0; pc < len(obj.Code); {
		fmt.Fprintf(ew, "% 6d\t", pc)
		pc, _ = Disassemble(obj.Code, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return ew.Err
}
