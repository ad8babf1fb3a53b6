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

// Command mingus assembles and runs Mingus VM programs.
//
// Usage:
//
//	mingus asm [flags] source object
//	mingus run [flags] object
//	mingus dis [flags] object
//
// The asm command assembles a source file and reports the number of data
// elements and instructions written to the object file. The run command
// executes an object file until it halts. The dis command prints a listing of
// an object file.
//
// Global flags:
//
//	--config file	load VM capacities and assembler limits from a YAML file
//	--debug		print error stack traces and VM state on failure
//
// Configuration file keys, all optional:
//
//	stack_size: 1024
//	call_stack_size: 1024
//	globals_size: 256
//	max_instructions: 1024
//	max_data: 64
//	strict_halt: false	# fail if halt is reached with a non-empty stack
//	trace: false		# same as run --trace
//
// Any failure is reported on stderr and the command exits with status 1.
package main
