// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package options implements the typed, named parameters an engine
// advertises to its controller and lets it change with setoption.
package options

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrUnknownOption = errors.New("options: unknown option")
	ErrInvalidValue  = errors.New("options: invalid value")
)

// Type is the value type of an option, named after its UCI type.
type Type uint8

const (
	Spin   Type = iota // bounded integer
	Check              // boolean
	String             // free text
)

func (t Type) String() string {
	switch t {
	case Spin:
		return "spin"
	case Check:
		return "check"
	default:
		return "string"
	}
}

// Descriptor is the static description of an option.
type Descriptor struct {
	Name    string
	Type    Type
	Default any

	// Min and Max bound Spin options.
	Min, Max int

	// Loads, if set, names a String option which receives the contents of
	// the file this option's value points to.
	Loads string
}

// Advertisement returns the UCI option line for the descriptor.
func (desc Descriptor) Advertisement() string {
	switch desc.Type {
	case Spin:
		return fmt.Sprintf(
			"option name %s type spin default %d min %d max %d",
			desc.Name, desc.Default, desc.Min, desc.Max,
		)
	case Check:
		return fmt.Sprintf("option name %s type check default %t", desc.Name, desc.Default)
	default:
		def := desc.Default.(string)
		if def == "" {
			def = "<empty>"
		}
		return fmt.Sprintf("option name %s type string default %s", desc.Name, def)
	}
}

func (desc Descriptor) parse(value string) (any, error) {
	switch desc.Type {
	case Spin:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer", ErrInvalidValue, desc.Name)
		}

		if n < desc.Min || n > desc.Max {
			return nil, fmt.Errorf("%w: %s must be within [%d, %d]", ErrInvalidValue, desc.Name, desc.Min, desc.Max)
		}

		return n, nil

	case Check:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false", ErrInvalidValue, desc.Name)
		}

		return b, nil

	default:
		if value == "<empty>" {
			value = ""
		}

		return value, nil
	}
}

// Registry holds the current value of every descriptor in a table.
type Registry struct {
	table  []Descriptor
	values map[string]any
}

// New creates a registry for the given table with every option set to its
// default value. The table's order is the advertisement order.
func New(table []Descriptor) *Registry {
	registry := &Registry{
		table:  table,
		values: make(map[string]any, len(table)),
	}

	for _, desc := range table {
		registry.values[desc.Name] = desc.Default
	}

	return registry
}

func (registry *Registry) find(name string) (Descriptor, bool) {
	for _, desc := range registry.table {
		if desc.Name == name {
			return desc, true
		}
	}

	// option names are case insensitive in UCI
	for _, desc := range registry.table {
		if strings.EqualFold(desc.Name, name) {
			return desc, true
		}
	}

	return Descriptor{}, false
}

// Set parses value according to the named option's type and stores it. The
// registry is left unchanged if an error is returned.
func (registry *Registry) Set(name, value string) error {
	desc, found := registry.find(name)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	parsed, err := desc.parse(value)
	if err != nil {
		return err
	}

	if desc.Loads != "" {
		path := parsed.(string)
		contents := ""
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, desc.Name, err)
			}
			contents = strings.TrimSpace(string(data))
		}

		registry.values[desc.Loads] = contents
	}

	registry.values[desc.Name] = parsed
	return nil
}

// Get returns the current value of the named option in its string form.
func (registry *Registry) Get(name string) (string, error) {
	desc, found := registry.find(name)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	return fmt.Sprint(registry.values[desc.Name]), nil
}

// Apply sets every option present in values, in table order. Options which
// could not be set are skipped and their errors joined together.
func (registry *Registry) Apply(values map[string]string) error {
	var errs []error
	seen := make(map[string]bool, len(values))

	for _, desc := range registry.table {
		for name, value := range values {
			if !strings.EqualFold(name, desc.Name) {
				continue
			}

			seen[name] = true
			if err := registry.Set(desc.Name, value); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for name := range values {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownOption, name))
		}
	}

	return errors.Join(errs...)
}

// Advertisement returns one option line per descriptor in table order.
func (registry *Registry) Advertisement() []string {
	lines := make([]string, len(registry.table))
	for i, desc := range registry.table {
		lines[i] = desc.Advertisement()
	}

	return lines
}

// Snapshot returns a copy of the current values which is unaffected by any
// later calls to Set.
func (registry *Registry) Snapshot() Values {
	values := make(Values, len(registry.values))
	for name, value := range registry.values {
		values[name] = value
	}

	return values
}

// Values is a point-in-time copy of a registry's values.
type Values map[string]any

func (values Values) Int(name string) int {
	n, _ := values[name].(int)
	return n
}

func (values Values) Bool(name string) bool {
	b, _ := values[name].(bool)
	return b
}

func (values Values) Text(name string) string {
	s, _ := values[name].(string)
	return s
}
