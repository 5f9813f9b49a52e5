// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"fmt"

	"github.com/aibor/genpack-init/bootconfig"
)

// EntryPointName is the name of the symbol looked up in every unit.
const EntryPointName = "Configure"

// EntryKind is the calling convention of an entry point.
type EntryKind int

const (
	// Niladic entry points are called without arguments.
	Niladic EntryKind = iota + 1

	// ConfigTaking entry points are called with the boot configuration.
	ConfigTaking
)

func (k EntryKind) String() string {
	switch k {
	case Niladic:
		return "niladic"
	case ConfigTaking:
		return "config-taking"
	default:
		return "unknown"
	}
}

// NiladicConfigurer is implemented by entry points taking no argument.
type NiladicConfigurer interface {
	Configure() error
}

// Configurer is implemented by entry points taking the boot configuration.
type Configurer interface {
	Configure(cfg *bootconfig.Config) error
}

// Entry is a classified entry point.
type Entry struct {
	Kind EntryKind
	fn   func(*bootconfig.Config) error
}

// Invoke calls the entry point. The config is passed only to
// [ConfigTaking] entry points.
func (e Entry) Invoke(cfg *bootconfig.Config) error {
	return e.fn(cfg)
}

// Classify determines the calling convention of the given entry point
// symbol. Pointers to function variables, as returned for exported variables
// of Go plugins, are dereferenced. Returns [ErrArity] for anything that is
// neither [Niladic] nor [ConfigTaking].
func Classify(symbol any) (Entry, error) {
	switch fn := symbol.(type) {
	case *func() error:
		return Classify(derefFunc(fn))
	case *func():
		return Classify(derefFunc(fn))
	case *func(*bootconfig.Config) error:
		return Classify(derefFunc(fn))
	case *func(*bootconfig.Config):
		return Classify(derefFunc(fn))
	case func() error:
		if fn != nil {
			return niladic(fn), nil
		}
	case func():
		if fn != nil {
			return niladic(func() error { fn(); return nil }), nil
		}
	case NiladicConfigurer:
		return niladic(fn.Configure), nil
	case func(*bootconfig.Config) error:
		if fn != nil {
			return configTaking(fn), nil
		}
	case func(*bootconfig.Config):
		if fn != nil {
			return configTaking(func(cfg *bootconfig.Config) error {
				fn(cfg)
				return nil
			}), nil
		}
	case Configurer:
		return configTaking(fn.Configure), nil
	}

	return Entry{}, fmt.Errorf("%w: unsupported entry point %T", ErrArity, symbol)
}

func niladic(fn func() error) Entry {
	return Entry{
		Kind: Niladic,
		fn:   func(*bootconfig.Config) error { return fn() },
	}
}

func configTaking(fn func(*bootconfig.Config) error) Entry {
	return Entry{
		Kind: ConfigTaking,
		fn:   fn,
	}
}

// derefFunc returns the function the pointer points to. A nil pointer
// results in a nil symbol that is rejected by [Classify].
func derefFunc[T any](ptr *T) any {
	if ptr == nil {
		return nil
	}

	return *ptr
}
