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

import "text/scanner"

type labelSite struct {
	pos     scanner.Position
	address int
}

// symtab holds the label and data symbol tables of an assembly run.
type symtab struct {
	labels map[string]labelSite // label name -> instruction index
	data   map[string]labelSite // data element name -> offset
}

func newSymtab() *symtab {
	return &symtab{
		labels: make(map[string]labelSite),
		data:   make(map[string]labelSite),
	}
}

// defineLabel binds name to address. It returns the previous definition and
// false if name is already defined.
func (s *symtab) defineLabel(name string, pos scanner.Position, address int) (labelSite, bool) {
	if l, ok := s.labels[name]; ok {
		return l, false
	}
	s.labels[name] = labelSite{pos, address}
	return labelSite{}, true
}

func (s *symtab) label(name string) (int, bool) {
	l, ok := s.labels[name]
	return l.address, ok
}

// defineData binds a data element name to its offset. It returns the previous
// definition and false if name is already defined.
func (s *symtab) defineData(name string, pos scanner.Position, offset int) (labelSite, bool) {
	if d, ok := s.data[name]; ok {
		return d, false
	}
	s.data[name] = labelSite{pos, offset}
	return labelSite{}, true
}

func (s *symtab) dataOffset(name string) (int, bool) {
	d, ok := s.data[name]
	return d.address, ok
}
