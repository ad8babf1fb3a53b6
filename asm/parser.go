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
	"strconv"
	"text/scanner"

	"github.com/joamag/mingus/vm"
	"github.com/pkg/errors"
)

const maxErrors = 10

var errTooMany = errors.New("too many errors")

type section int

const (
	sectionText section = iota
	sectionData
)

// operand is an optional instruction field.
type operand struct {
	val int
	set bool
}

func (o *operand) assign(v int) {
	o.val, o.set = v, true
}

// instr is an instruction as built by the first pass. Jump and call targets
// are kept as label names until link resolves them.
type instr struct {
	pos    int // index in the final instruction sequence
	op     vm.Opcode
	arg    operand // arg1
	imm    operand
	target string
	at     scanner.Position // opcode position
	tat    scanner.Position // target position
	need   int // operands still expected
}

// arity returns the number of operands expected by op.
func arity(op vm.Opcode) int {
	switch op {
	case vm.OpLoad, vm.OpLoadI, vm.OpStore, vm.OpCmp,
		vm.OpJmp, vm.OpJmpEq, vm.OpJmpNeq, vm.OpJmpAbs:
		return 1
	case vm.OpCall:
		return 2
	}
	return 0
}

type dataState int

const (
	dataNone dataState = iota
	dataNeedType
	dataNeedValue
)

type parser struct {
	name    string
	sym     *symtab
	section section
	code    []*instr
	data    []vm.DataElement
	cur     *instr // instruction awaiting operands, nil when expecting an opcode
	dstate  dataState
	dpos    scanner.Position
	errs    ErrAsm
	maxCode int
	maxData int
}

func newParser(name string, opts ...Option) *parser {
	p := &parser{
		name:    name,
		sym:     newSymtab(),
		maxCode: MaxCode,
		maxData: MaxData,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parser) errorf(pos scanner.Position, format string, args ...interface{}) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrMsg{pos, fmt.Sprintf(format, args...)})
	}
}

func (p *parser) check() error {
	if len(p.errs) >= maxErrors {
		return errTooMany
	}
	return nil
}

func isLabelDef(s string) bool {
	return s[len(s)-1] == ':'
}

func (p *parser) token(s string, pos scanner.Position) error {
	if in := p.cur; in != nil {
		if s[0] != '.' && !isLabelDef(s) {
			p.operand(in, s, pos)
			return p.check()
		}
		p.errorf(in.at, "missing operand for %s", in.op)
		p.cur = nil
	}
	switch {
	case s[0] == '.':
		p.directive(s, pos)
	case p.section == sectionData:
		p.dataToken(s, pos)
	case isLabelDef(s):
		p.defineLabel(s[:len(s)-1], pos)
	default:
		p.opcode(s, pos)
	}
	return p.check()
}

func (p *parser) str(s string, pos scanner.Position) error {
	if in := p.cur; in != nil {
		p.errorf(pos, "unexpected string literal as operand of %s", in.op)
		p.cur = nil
		return p.check()
	}
	switch {
	case p.section != sectionData || p.dstate == dataNone:
		p.errorf(pos, "unexpected string literal")
	case p.dstate == dataNeedType:
		p.errorf(pos, "missing size directive for data element %q", p.data[len(p.data)-1].Name)
		p.dstate = dataNone
	case len(s) > vm.ValueSize:
		p.errorf(pos, "string literal longer than %d bytes", vm.ValueSize)
		p.dstate = dataNone
	default:
		e := &p.data[len(p.data)-1]
		e.Value = s
		if len(s) > 1 {
			e.Size = uint32(e.Type.Width() * len(s))
		}
		p.dstate = dataNone
	}
	return p.check()
}

func (p *parser) comment(string, scanner.Position) error {
	return nil
}

func (p *parser) fail(pos scanner.Position, msg string) error {
	p.errorf(pos, "%s", msg)
	return p.check()
}

func (p *parser) directive(s string, pos scanner.Position) {
	p.closeData()
	switch s {
	case ".text":
		p.section = sectionText
	case ".data":
		p.section = sectionData
	default:
		p.errorf(pos, "unknown section directive %q", s)
	}
}

func (p *parser) closeData() {
	if p.dstate == dataNeedType {
		p.errorf(p.dpos, "missing size directive for data element %q", p.data[len(p.data)-1].Name)
	}
	p.dstate = dataNone
}

func (p *parser) dataToken(s string, pos scanner.Position) {
	if p.dstate == dataNeedType && !isLabelDef(s) {
		e := &p.data[len(p.data)-1]
		t, ok := vm.ParseDataType(s)
		if !ok {
			p.errorf(pos, "expected size directive for data element %q, got %q", e.Name, s)
			p.dstate = dataNone
			return
		}
		e.Type = t
		e.Size = uint32(t.Width())
		p.dstate = dataNeedValue
		return
	}
	if !isLabelDef(s) {
		p.errorf(pos, "unexpected %q in data section", s)
		return
	}
	p.closeData()
	p.defineData(s[:len(s)-1], pos)
}

func (p *parser) defineData(name string, pos scanner.Position) {
	switch {
	case name == "":
		p.errorf(pos, "empty data element name")
		return
	case len(name) > vm.NameSize:
		p.errorf(pos, "data element name %q longer than %d bytes", name, vm.NameSize)
		return
	case len(p.data) >= p.maxData:
		p.errorf(pos, "too many data elements (max %d)", p.maxData)
		return
	}
	if prev, ok := p.sym.defineData(name, pos, len(p.data)); !ok {
		p.errorf(pos, "data element %q redefined, previous definition here: %s", name, prev.pos)
		return
	}
	p.data = append(p.data, vm.DataElement{Name: name, Offset: uint32(len(p.data))})
	p.dstate = dataNeedType
	p.dpos = pos
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if name == "" {
		p.errorf(pos, "empty label name")
		return
	}
	if prev, ok := p.sym.defineLabel(name, pos, len(p.code)); !ok {
		p.errorf(pos, "label %q redefined, previous definition here: %s", name, prev.pos)
	}
}

func (p *parser) opcode(s string, pos scanner.Position) {
	op, ok := opcodeIndex[s]
	if !ok {
		p.errorf(pos, "unknown opcode %q", s)
		return
	}
	in := &instr{pos: len(p.code), op: op, at: pos, need: arity(op)}
	p.code = append(p.code, in)
	if in.need > 0 {
		p.cur = in
	}
}

// number parses s as an integer in [0, limit].
func (p *parser) number(s string, pos scanner.Position, limit int) (int, bool) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		p.errorf(pos, "invalid number %q", s)
		return 0, false
	}
	if n < 0 || n > int64(limit) {
		p.errorf(pos, "%s out of range [0, %d]", s, limit)
		return 0, false
	}
	return int(n), true
}

func (p *parser) operand(in *instr, s string, pos scanner.Position) {
	switch in.op {
	case vm.OpLoadI, vm.OpStore:
		if v, ok := p.number(s, pos, 0xFF); ok {
			in.imm.assign(v)
		}
	case vm.OpLoad:
		if off, ok := p.sym.dataOffset(s); ok {
			in.imm.assign(off)
		} else if _, err := strconv.ParseInt(s, 0, 64); err != nil {
			p.errorf(pos, "undefined data symbol %q", s)
		} else if v, ok := p.number(s, pos, 0xFF); ok {
			in.imm.assign(v)
		}
	case vm.OpCmp:
		if v, ok := p.number(s, pos, 0xF); ok {
			if v != vm.CmpEq && v != vm.CmpNeq {
				p.errorf(pos, "invalid comparison kind %d, expected %d (equal) or %d (not equal)", v, vm.CmpEq, vm.CmpNeq)
			}
			in.arg.assign(v)
		}
	case vm.OpJmp, vm.OpJmpEq, vm.OpJmpNeq, vm.OpJmpAbs:
		in.target, in.tat = s, pos
	case vm.OpCall:
		if in.need == 2 {
			in.target, in.tat = s, pos
		} else if v, ok := p.number(s, pos, 0xF); ok {
			in.arg.assign(v)
		}
	}
	in.need--
	if in.need == 0 {
		p.cur = nil
	}
}

// finish closes any pending construct and appends the trailing HALT.
func (p *parser) finish() {
	if in := p.cur; in != nil {
		p.errorf(in.at, "missing operand for %s", in.op)
		p.cur = nil
	}
	p.closeData()
	p.code = append(p.code, &instr{pos: len(p.code), op: vm.OpHalt})
	if len(p.code) > p.maxCode {
		p.errorf(scanner.Position{Filename: p.name}, "too many instructions (%d, max %d)", len(p.code), p.maxCode)
	}
}
