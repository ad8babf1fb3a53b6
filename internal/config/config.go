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

// Package config loads the optional YAML configuration of the mingus command.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/joamag/mingus/asm"
	"github.com/joamag/mingus/vm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds VM capacities and assembler limits.
type Config struct {
	StackSize       int  `yaml:"stack_size"`
	CallStackSize   int  `yaml:"call_stack_size"`
	GlobalsSize     int  `yaml:"globals_size"`
	MaxInstructions int  `yaml:"max_instructions"`
	MaxData         int  `yaml:"max_data"`
	StrictHalt      bool `yaml:"strict_halt"`
	Trace           bool `yaml:"trace"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		StackSize:       vm.StackSize,
		CallStackSize:   vm.CallStackSize,
		GlobalsSize:     vm.GlobalsSize,
		MaxInstructions: asm.MaxCode,
		MaxData:         asm.MaxData,
	}
}

// Load reads the configuration file fileName. Settings missing from the file
// keep their default value. An empty fileName returns the defaults.
func Load(fileName string) (Config, error) {
	c := Default()
	if fileName == "" {
		return c, nil
	}
	b, err := os.ReadFile(fileName)
	if err != nil {
		return c, errors.Wrap(err, "config")
	}
	if err = Parse(b, &c); err != nil {
		return c, errors.Wrapf(err, "config %s", fileName)
	}
	return c, nil
}

// Parse decodes YAML configuration data into c and validates the result.
// Unknown keys are rejected.
func Parse(b []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "parse failed")
	}
	return c.Validate()
}

// Validate checks that all capacities are usable.
func (c *Config) Validate() error {
	switch {
	case c.StackSize <= 0:
		return errors.Errorf("stack_size must be positive, got %d", c.StackSize)
	case c.CallStackSize < 3:
		return errors.Errorf("call_stack_size must be at least 3, got %d", c.CallStackSize)
	case c.GlobalsSize <= 0:
		return errors.Errorf("globals_size must be positive, got %d", c.GlobalsSize)
	case c.MaxInstructions <= 0:
		return errors.Errorf("max_instructions must be positive, got %d", c.MaxInstructions)
	case c.MaxData < 0 || c.MaxData > c.GlobalsSize:
		return errors.Errorf("max_data must be in [0, globals_size], got %d", c.MaxData)
	}
	return nil
}

// VMOptions returns the VM options matching c.
func (c *Config) VMOptions() []vm.Option {
	return []vm.Option{
		vm.StackCap(c.StackSize),
		vm.CallStackCap(c.CallStackSize),
		vm.GlobalsCap(c.GlobalsSize),
		vm.StrictHalt(c.StrictHalt),
	}
}

// AsmOptions returns the assembler options matching c.
func (c *Config) AsmOptions() []asm.Option {
	return []asm.Option{
		asm.MaxInstructions(c.MaxInstructions),
		asm.MaxDataElements(c.MaxData),
	}
}
