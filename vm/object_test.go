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
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joamag/mingus/vm"
	"github.com/pkg/errors"
)

func sample() *vm.Object {
	return &vm.Object{
		Data: []vm.DataElement{
			{Type: vm.TypeByte, Size: 5, Offset: 0, Name: "msg", Value: "hello"},
			{Type: vm.TypeQword, Size: 8, Offset: 1, Name: "counter"},
		},
		Code: code(vm.Load{Addr: 0}, vm.PrintS{}, vm.Pop{}, vm.Halt{}).Code,
	}
}

func TestObjectLayout(t *testing.T) {
	obj := sample()
	b, err := obj.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if want := vm.HeaderSize + 2*vm.DataElementSize + 4*vm.WordSize; len(b) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(b))
	}
	if string(b[:4]) != "MING" {
		t.Errorf("bad magic %q", b[:4])
	}
	le := binary.LittleEndian
	for k, want := range []uint32{vm.Version, 2, 4, 2 * vm.DataElementSize, 4 * vm.WordSize} {
		if v := le.Uint32(b[4+4*k:]); v != want {
			t.Errorf("header field %d: expected %d, got %d", k+1, want, v)
		}
	}
	rec := b[vm.HeaderSize+vm.DataElementSize:]
	if le.Uint32(rec) != uint32(vm.TypeQword) || le.Uint32(rec[4:]) != 8 || le.Uint32(rec[8:]) != 1 {
		t.Errorf("bad data record % x", rec[:12])
	}
	if name := string(rec[12:19]); name != "counter" || rec[19] != 0 {
		t.Errorf("bad name %q", rec[12:20])
	}
	codeStart := vm.HeaderSize + 2*vm.DataElementSize
	if w := vm.Word(le.Uint32(b[codeStart+4:])); w != vm.Encode(vm.PrintS{}) {
		t.Errorf("bad code word %#08x", w)
	}

	got, err := vm.Parse(b)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(got.Data) != 2 || got.Data[0] != obj.Data[0] || got.Data[1] != obj.Data[1] {
		t.Errorf("data mismatch: %+v", got.Data)
	}
	if len(got.Code) != len(obj.Code) {
		t.Fatalf("code mismatch: %v", got.Code)
	}
	for k := range got.Code {
		if got.Code[k] != obj.Code[k] {
			t.Errorf("code word %d: expected %#08x, got %#08x", k, obj.Code[k], got.Code[k])
		}
	}
	if h := got.Header(); h != obj.Header() {
		t.Errorf("header mismatch %+v", h)
	}
}

func TestParseErrors(t *testing.T) {
	good, err := sample().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	le := binary.LittleEndian
	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}
	tests := []struct {
		name string
		b    []byte
		msg  string
	}{
		{"empty", nil, "truncated header"},
		{"short", good[:10], "truncated header"},
		{"magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b }), "bad magic"},
		{"version", mutate(func(b []byte) []byte { le.PutUint32(b[4:], 7); return b }), "unsupported version 7"},
		{"data size", mutate(func(b []byte) []byte { le.PutUint32(b[16:], 1); return b }), "data size"},
		{"code size", mutate(func(b []byte) []byte { le.PutUint32(b[20:], 3); return b }), "code size"},
		{"count", mutate(func(b []byte) []byte { le.PutUint32(b[12:], 5); le.PutUint32(b[20:], 20); return b }), "header declares"},
		{"trailing", mutate(func(b []byte) []byte { return append(b, 0) }), "header declares"},
		{"truncated code", good[:len(good)-1], "header declares"},
		{"offset", mutate(func(b []byte) []byte { le.PutUint32(b[vm.HeaderSize+8:], 3); return b }), "has offset 3"},
		{"type", mutate(func(b []byte) []byte { le.PutUint32(b[vm.HeaderSize:], 4); return b }), "unknown type 4"},
	}
	for _, test := range tests {
		_, err := vm.Parse(test.b)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if errors.Cause(err) != vm.ErrFormat {
			t.Errorf("%s: expected %v, got %v", test.name, vm.ErrFormat, err)
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: expected %q in %q", test.name, test.msg, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "prog.mo")
	obj := sample()
	if err := vm.Save(name, obj); err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := vm.LoadFile(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(got.Data) != len(obj.Data) || len(got.Code) != len(obj.Code) {
		t.Errorf("object mismatch: %+v", got)
	}

	// unencodable objects must not leave a file behind
	bad := filepath.Join(dir, "bad.mo")
	obj.Data[0].Name = strings.Repeat("x", vm.NameSize+1)
	if err = vm.Save(bad, obj); err == nil {
		t.Error("expected error")
	}
	if _, err = os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("%s should not exist: %v", bad, err)
	}

	if _, err = vm.LoadFile(filepath.Join(dir, "missing.mo")); err == nil {
		t.Error("expected error loading missing file")
	}
}

// A program saved to disk and read back with LoadFile runs like the original.
func TestLoadFileRun(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hello.mo")
	obj := code(vm.Load{Addr: 0}, vm.PrintS{}, vm.Pop{}, vm.Halt{})
	obj.Data = sample().Data
	if err := vm.Save(name, obj); err != nil {
		t.Fatalf("%+v", err)
	}
	loaded, err := vm.LoadFile(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	i, out, err := run(loaded)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if out != "hello\n" {
		t.Errorf("expected %q, got %q", "hello\n", out)
	}
	if len(i.Stack()) != 0 {
		t.Errorf("expected empty stack, got %v", i.Stack())
	}
}

func TestDataType(t *testing.T) {
	for _, n := range []string{"byte", "word", "dword", "qword"} {
		dt, ok := vm.ParseDataType(n)
		if !ok || dt.String() != n {
			t.Errorf("%s: got %v, %v", n, dt, ok)
		}
	}
	if _, ok := vm.ParseDataType("float"); ok {
		t.Error("float is not a data type")
	}
	if vm.TypeDword.Width() != 4 || vm.TypeQword.Width() != 8 {
		t.Error("bad widths")
	}
}
