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
	"fmt"

	"github.com/pkg/errors"
)

// traceStep writes the position and decoded instruction about to be evaluated
// together with the operand stack and call stack contents.
func (i *Instance) traceStep(pos int) error {
	_, err := fmt.Fprintf(i.trace, "% 6d\t%-14s\t%v\t%v\n", pos, i.Ins, i.Stack(), i.CallStack())
	return errors.Wrap(err, "trace")
}
