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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/joamag/mingus/asm"
)

func ExampleDisassembleAll() {
	code := `
; print a greeting, then compare two numbers
.data
msg:	byte "hello"
.text
	load msg
	prints
	pop
	loadi 4
	loadi 4
	cmp 1
	jmp_eq done	; taken
	loadi 0
	print
done:
	call fn 1
	halt
fn:	ret
`

	obj, err := asm.Assemble("raw_string", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(obj, os.Stdout)

	// Output:
	// .data
	//      0	msg: byte "hello"
	// .text
	//      0	load 0
	//      1	prints
	//      2	pop
	//      3	loadi 4
	//      4	loadi 4
	//      5	cmp 1
	//      6	jmp_eq +3	; 9
	//      7	loadi 0
	//      8	print
	//      9	call 11 1
	//     10	halt
	//     11	ret
	//     12	halt
}

// Assembly errors are reported with their position in the source.
func ExampleAssemble_errors() {
	_, err := asm.Assemble("prog.ms", strings.NewReader("loadi 1\njmp nowhere\nHALT\n"))
	fmt.Println(err)

	// Output:
	// prog.ms:3:1: unknown opcode "HALT"
	// prog.ms:2:5: undefined label "nowhere"
}
