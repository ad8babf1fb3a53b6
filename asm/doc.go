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

// Package asm provides functions to assemble and disassemble Mingus VM code.
//
// Source is split at white space into tokens. A semicolon starts a comment
// running to the end of the line and double quotes delimit string literals,
// which may contain white space but no escapes:
//
//	; compute 5 + 3
//	.data
//	msg:	byte "five plus three is"
//	.text
//		load msg
//		prints
//		pop
//		loadi 5
//		loadi 3
//		add
//		print
//		halt
//
// Sections:
//
// The .text section (the default) holds instructions and labels, the .data
// section holds data elements. Any other directive starting with a '.' is an
// error.
//
// Data elements:
//
//	name: byte|word|dword|qword ["literal"]
//
// Each data element gets the next offset in the data section, starting at 0.
// The VM binds it to the global at that offset. Data elements must be declared
// before being referenced by load.
//
// Labels:
//
// In the text section, a token ending with a colon defines a label bound to
// the index of the next instruction. Labels may be referenced before they are
// defined.
//
// Instructions:
//
//	mnemonic	aliases	operands
//	--------	-------	--------
//	halt
//	load		<global>|<data element>
//	loadi		<0-255>
//	store		<global>
//	add
//	sub
//	pop
//	cmp		1 (equal) | 2 (not equal)
//	jmp		<label>
//	jmp_eq	jeq	<label>
//	jmp_neq	jne	<label>
//	jmp_abs	jabs	<label>
//	call		<label> <argument count 0-15>
//	ret
//	print
//	prints
//
// Numbers may be written in decimal, hexadecimal (0x), octal (0o or leading 0)
// or binary (0b). Mnemonics are case sensitive.
//
// jmp, jmp_eq and jmp_neq are encoded relative to their own position and must
// land within -128..127 instructions. jmp_abs and call targets must be within
// the first 256 instructions.
//
// A halt instruction is always appended to the program.
package asm
