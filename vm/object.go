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
	"bytes"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Object file layout constants. An object file is made of a header, DataCount
// data element records, then CodeCount instruction words, all little-endian.
const (
	Magic           = "MING"
	Version         = 1
	HeaderSize      = 24
	NameSize        = 32
	ValueSize       = 256
	DataElementSize = 12 + NameSize + ValueSize
	WordSize        = 4
)

// DataType is the type tag of a data element.
type DataType uint32

// Data element types.
const (
	TypeByte DataType = iota
	TypeWord
	TypeDword
	TypeQword
)

var dataTypes = [...]string{"byte", "word", "dword", "qword"}

// Width returns the size in bytes of a single value of type t.
func (t DataType) Width() int {
	return 1 << t
}

func (t DataType) String() string {
	if t <= TypeQword {
		return dataTypes[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ParseDataType returns the DataType named s.
func ParseDataType(s string) (DataType, bool) {
	for i, n := range dataTypes {
		if n == s {
			return DataType(i), true
		}
	}
	return 0, false
}

// Header is the fixed size header of an object file.
type Header struct {
	Magic     [4]byte
	Version   uint32
	DataCount uint32
	CodeCount uint32
	DataSize  uint32
	CodeSize  uint32
}

// DataElement is a named entry of the data section. Offset is its index in the
// data section and the globals slot it is bound to.
type DataElement struct {
	Type   DataType
	Size   uint32
	Offset uint32
	Name   string
	Value  string
}

// record is the on-disk form of a DataElement.
type record struct {
	Type   uint32
	Size   uint32
	Offset uint32
	Name   [NameSize]byte
	Value  [ValueSize]byte
}

// Object is an assembled program.
type Object struct {
	Data []DataElement
	Code []Word
}

// Header returns the object header matching the contents of o.
func (o *Object) Header() Header {
	h := Header{
		Version:   Version,
		DataCount: uint32(len(o.Data)),
		CodeCount: uint32(len(o.Code)),
		DataSize:  uint32(len(o.Data) * DataElementSize),
		CodeSize:  uint32(len(o.Code) * WordSize),
	}
	copy(h.Magic[:], Magic)
	return h
}

// MarshalBinary encodes o in object file format.
func (o *Object) MarshalBinary() ([]byte, error) {
	h := o.Header()
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+int(h.DataSize)+int(h.CodeSize)))
	if err := binary.Write(buf, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "header")
	}
	for k := range o.Data {
		e := &o.Data[k]
		if len(e.Name) > NameSize {
			return nil, errors.Errorf("data element %q: name longer than %d bytes", e.Name, NameSize)
		}
		if len(e.Value) > ValueSize {
			return nil, errors.Errorf("data element %q: value longer than %d bytes", e.Name, ValueSize)
		}
		r := record{Type: uint32(e.Type), Size: e.Size, Offset: e.Offset}
		copy(r.Name[:], e.Name)
		copy(r.Value[:], e.Value)
		if err := binary.Write(buf, binary.LittleEndian, &r); err != nil {
			return nil, errors.Wrapf(err, "data element %q", e.Name)
		}
	}
	var b [WordSize]byte
	for _, w := range o.Code {
		binary.LittleEndian.PutUint32(b[:], uint32(w))
		buf.Write(b[:])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an object file. Errors are rooted at ErrFormat.
func (o *Object) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return errors.Wrapf(ErrFormat, "truncated header (%d bytes)", len(b))
	}
	var h Header
	r := bytes.NewReader(b)
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "header")
	}
	if string(h.Magic[:]) != Magic {
		return errors.Wrapf(ErrFormat, "bad magic %q", h.Magic[:])
	}
	if h.Version != Version {
		return errors.Wrapf(ErrFormat, "unsupported version %d", h.Version)
	}
	if uint64(h.DataSize) != uint64(h.DataCount)*DataElementSize {
		return errors.Wrapf(ErrFormat, "data size %d does not match %d elements", h.DataSize, h.DataCount)
	}
	if uint64(h.CodeSize) != uint64(h.CodeCount)*WordSize {
		return errors.Wrapf(ErrFormat, "code size %d does not match %d instructions", h.CodeSize, h.CodeCount)
	}
	if want := HeaderSize + uint64(h.DataSize) + uint64(h.CodeSize); uint64(len(b)) != want {
		return errors.Wrapf(ErrFormat, "object is %d bytes, header declares %d", len(b), want)
	}

	data := make([]DataElement, h.DataCount)
	for k := range data {
		var rec record
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return errors.Wrapf(err, "data element %d", k)
		}
		if rec.Offset != uint32(k) {
			return errors.Wrapf(ErrFormat, "data element %d has offset %d", k, rec.Offset)
		}
		if DataType(rec.Type) > TypeQword {
			return errors.Wrapf(ErrFormat, "data element %d has unknown type %d", k, rec.Type)
		}
		data[k] = DataElement{
			Type:   DataType(rec.Type),
			Size:   rec.Size,
			Offset: rec.Offset,
			Name:   cstring(rec.Name[:]),
			Value:  cstring(rec.Value[:]),
		}
	}
	code := make([]Word, h.CodeCount)
	p := b[HeaderSize+int(h.DataSize):]
	for k := range code {
		code[k] = Word(binary.LittleEndian.Uint32(p[k*WordSize:]))
	}
	o.Data, o.Code = data, code
	return nil
}

func cstring(b []byte) string {
	if n := bytes.IndexByte(b, 0); n >= 0 {
		b = b[:n]
	}
	return string(b)
}

// Parse decodes an object file held in memory.
func Parse(b []byte) (*Object, error) {
	o := new(Object)
	if err := o.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return o, nil
}

// LoadFile reads and decodes the object file fileName.
func LoadFile(fileName string) (*Object, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "load failed")
	}
	o, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return o, nil
}

// Save writes o to fileName. The object is fully encoded before the file is
// created and the file is removed if writing fails.
func Save(fileName string, o *Object) (err error) {
	b, err := o.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "save failed")
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = f.Write(b); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
