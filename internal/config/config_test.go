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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joamag/mingus/asm"
	"github.com/joamag/mingus/vm"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
	if c.StackSize != vm.StackSize || c.GlobalsSize != vm.GlobalsSize || c.MaxInstructions != asm.MaxCode {
		t.Errorf("bad defaults %+v", c)
	}
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "mingus.yaml")
	data := "stack_size: 16\nstrict_halt: true\ntrace: true\n"
	if err := os.WriteFile(name, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := Default()
	want.StackSize = 16
	want.StrictHalt = true
	want.Trace = true
	if c != want {
		t.Errorf("expected %+v, got %+v", want, c)
	}
	if n := len(c.VMOptions()); n != 4 {
		t.Errorf("expected 4 VM options, got %d", n)
	}
	if n := len(c.AsmOptions()); n != 2 {
		t.Errorf("expected 2 assembler options, got %d", n)
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		data string
		msg  string
	}{
		{"stack_size: [", "parse failed"},
		{"stack_size: nope", "parse failed"},
		{"stack_sise: 16", "field stack_sise not found"},
		{"stack_size: 0", "stack_size must be positive"},
		{"call_stack_size: 2", "call_stack_size must be at least 3"},
		{"globals_size: -1", "globals_size must be positive"},
		{"max_instructions: 0", "max_instructions must be positive"},
		{"max_data: 300", "max_data must be in [0, globals_size]"},
	}
	for _, test := range tests {
		c := Default()
		err := Parse([]byte(test.data), &c)
		if err == nil || !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%q: expected %q, got %v", test.data, test.msg, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	c := Default()
	if err := Parse(nil, &c); err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

// The options built from a configuration must apply to a VM instance.
func TestVMOptions(t *testing.T) {
	c := Default()
	c.StackSize = 1
	obj := &vm.Object{Code: []vm.Word{
		vm.Encode(vm.LoadI{Value: 1}),
		vm.Encode(vm.LoadI{Value: 2}),
		vm.Encode(vm.Halt{}),
	}}
	i, err := vm.New(obj, c.VMOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err == nil {
		t.Error("expected stack overflow")
	}
}
