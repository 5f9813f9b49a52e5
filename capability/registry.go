// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package capability

import (
	"fmt"
	"slices"
	"strings"
)

// Unbounded can be used as [Capability.MaxArgs] for capabilities taking any
// number of arguments.
const Unbounded = -1

// Func is the implementation of a capability. The returned string is the
// result of the operation. It may be empty. Predicates return "true" or
// "false".
type Func func(args ...string) (string, error)

// Capability is a named native operation.
type Capability struct {
	// Name the capability is called by.
	Name string

	// Usage describes the arguments, like "<device> <mountpoint>".
	Usage string

	// MinArgs is the minimum number of arguments.
	MinArgs int

	// MaxArgs is the maximum number of arguments. Use [Unbounded] for no
	// limit.
	MaxArgs int

	// Fn implements the capability.
	Fn Func
}

func (c Capability) checkArgs(args []string) error {
	if len(args) < c.MinArgs || (c.MaxArgs != Unbounded && len(args) > c.MaxArgs) {
		return &ArgError{
			Name:  c.Name,
			Given: len(args),
			Min:   c.MinArgs,
			Max:   c.MaxArgs,
		}
	}

	return nil
}

// Registry is a set of capabilities.
//
// The zero value is an empty registry ready to use. It is not safe for
// concurrent use.
type Registry struct {
	capabilities map[string]Capability
}

// Register adds the given capabilities.
//
// Capabilities whose name is already registered are ignored, so registering
// the same set twice is a no-op. Returns the number of capabilities actually
// added.
func (r *Registry) Register(capabilities ...Capability) int {
	if r.capabilities == nil {
		r.capabilities = make(map[string]Capability, len(capabilities))
	}

	var added int

	for _, c := range capabilities {
		if _, exists := r.capabilities[c.Name]; exists {
			continue
		}

		r.capabilities[c.Name] = c
		added++
	}

	return added
}

// Lookup returns the capability with the given name.
func (r *Registry) Lookup(name string) (Capability, bool) {
	c, exists := r.capabilities[name]
	return c, exists
}

// Names returns the sorted names of all registered capabilities.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Call calls the named capability with the given arguments and returns its
// result.
func (r *Registry) Call(name string, args ...string) (string, error) {
	c, exists := r.capabilities[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknown, name)
	}

	if err := c.checkArgs(args); err != nil {
		return "", err
	}

	result, err := c.Fn(args...)
	if err != nil {
		return result, fmt.Errorf("%s: %w", name, err)
	}

	return result, nil
}

// Do calls the named capability and discards its result.
func (r *Registry) Do(name string, args ...string) error {
	_, err := r.Call(name, args...)
	return err
}

// Test calls the named predicate capability and returns its result as bool.
// A result other than "true" is false.
func (r *Registry) Test(name string, args ...string) (bool, error) {
	result, err := r.Call(name, args...)
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(result) == "true", nil
}

// Default is the process wide registry the init program registers its native
// operations in.
var Default = new(Registry)

// Call calls the named capability of the [Default] registry.
func Call(name string, args ...string) (string, error) {
	return Default.Call(name, args...)
}

// Do calls the named capability of the [Default] registry and discards its
// result.
func Do(name string, args ...string) error {
	return Default.Do(name, args...)
}

// Test calls the named predicate capability of the [Default] registry.
func Test(name string, args ...string) (bool, error) {
	return Default.Test(name, args...)
}

// FormatBool formats a predicate result.
func FormatBool(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
