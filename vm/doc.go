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

// Package vm implements the Mingus virtual machine and its object file format.
//
// Mingus is a small stack machine with an operand stack, a separate call stack
// and an array of globals bound to the entries of the program's data section.
// Programs are produced by package asm and stored as object files: a 24 bytes
// header, the data element records, then the code as 32 bits little-endian
// instruction words.
//
// Instructions are encoded as follows:
//
//	bits 31-16	opcode
//	bits 11-8	arg1
//	bits 7-4	arg2
//	bits 3-0	arg3
//	bits 7-0	immediate (overlaps arg2 and arg3)
//
// Supported opcodes. TOS is the value on top of the operand stack, NOS the next
// one:
//
//	opcode	asm	operands	stack	description
//	------	---	--------	-----	-----------------------------------------------------
//	0	halt			stop the VM
//	1	load	imm	-n	push the global at imm
//	2	loadi	imm	-n	push imm
//	3	store	imm	n-	pop TOS into the global at imm
//	4	add		xy-z	push NOS+TOS
//	5	sub		xy-z	push NOS-TOS
//	6	pop		n-	drop TOS
//	7	cmp	arg1	xy-b	1 if arg1 is 1 and x == y or arg1 is 2 and x != y, 0 otherwise
//	8	jmp	imm		jump imm instructions from this one (signed)
//	9	jmp_eq	imm	b-	relative jump if b == 1
//	10	jmp_neq	imm	b-	relative jump if b == 0
//	11	jmp_abs	imm		jump to instruction imm
//	12	call	imm arg1		push arg1, imm and the return address on the call stack, jump to imm
//	13	ret			pop a call frame and jump to its return address
//	14	print		n-n	write TOS in decimal
//	15	prints		n-n	write the text of the data element at offset TOS
//
// Any error returned by the VM wraps one of ErrFormat, ErrInvalidOpcode,
// ErrCorrupted or ErrCapacity.
package vm
