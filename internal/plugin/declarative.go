// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/capability"
	"gopkg.in/yaml.v3"
)

// configParam is the only parameter name a declarative entry point accepts.
const configParam = "ini"

var configRefPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Step is a single capability call of a declarative unit.
type Step struct {
	// Call is the name of the capability.
	Call string `yaml:"call"`

	// Args are passed to the capability. "${section.key}" is replaced by the
	// config value.
	Args []string `yaml:"args,omitempty"`

	// When restricts the step to the condition being true.
	When *Condition `yaml:"when,omitempty"`

	// Unless skips the step if the condition is true.
	Unless *Condition `yaml:"unless,omitempty"`

	// IgnoreError continues with the next step if the call fails.
	IgnoreError bool `yaml:"ignore_error,omitempty"`
}

// Condition is either a boolean config key as "section.key" or a predicate
// capability.
type Condition struct {
	Config     string   `yaml:"config,omitempty"`
	Capability string   `yaml:"capability,omitempty"`
	Args       []string `yaml:"args,omitempty"`
}

// Definition is the entry point of a declarative unit.
type Definition struct {
	// Params of the entry point. Either empty or "ini" for receiving the
	// boot configuration.
	Params []string `yaml:"params,omitempty"`

	Steps []Step `yaml:"steps"`
}

type declarativeFile struct {
	Configure *Definition `yaml:"configure"`
}

// Declarative opens declarative units. They are YAML files with an optional
// "configure" entry point consisting of capability calls:
//
//	configure:
//	  params: [ini]
//	  steps:
//	    - call: coldplug
//	    - call: enable_systemd_service
//	      args: [sshd.service]
//	      when: {config: _default.ssh}
//	    - call: mount
//	      args: ["${storage.device}", /mnt/data]
//	      unless: {capability: is_qemu}
//	      ignore_error: true
//
// Steps run in order. A failing step fails the unit, unless it has
// ignore_error set.
type Declarative struct {
	Registry *capability.Registry
}

// Open parses the given unit file. The returned symbol is a niladic or a
// config-taking function depending on the declared params.
func (d *Declarative) Open(path string) (any, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read unit: %w", err)
	}

	def, err := ParseDefinition(data)
	if err != nil {
		return nil, false, err
	}

	if def == nil {
		return nil, false, nil
	}

	return d.entryPoint(def)
}

// ParseDefinition parses a declarative unit and returns its entry point. It
// returns nil if the unit has none.
func ParseDefinition(data []byte) (*Definition, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file declarativeFile

	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}

	if file.Configure == nil {
		return nil, nil
	}

	if err := file.Configure.validate(); err != nil {
		return nil, err
	}

	return file.Configure, nil
}

func (d *Definition) validate() error {
	if len(d.Params) > 1 {
		return fmt.Errorf("%w: %d params declared", ErrArity, len(d.Params))
	}

	if len(d.Params) == 1 && d.Params[0] != configParam {
		return fmt.Errorf("%w: unknown param %q, only %q is supported",
			ErrInvalidUnit, d.Params[0], configParam)
	}

	for idx, step := range d.Steps {
		if step.Call == "" {
			return fmt.Errorf("%w: step %d: call missing", ErrInvalidUnit, idx)
		}

		if d.takesConfig() {
			continue
		}

		if step.usesConfig() {
			return fmt.Errorf("%w: step %d: config used without params: [%s]",
				ErrInvalidUnit, idx, configParam)
		}
	}

	return nil
}

func (d *Definition) takesConfig() bool {
	return len(d.Params) == 1
}

func (d *Declarative) entryPoint(def *Definition) (any, bool, error) {
	if !def.takesConfig() {
		fn := func() error {
			return d.run(def.Steps, nil)
		}

		return fn, true, nil
	}

	fn := func(cfg *bootconfig.Config) error {
		return d.run(def.Steps, cfg)
	}

	return fn, true, nil
}

func (d *Declarative) run(steps []Step, cfg *bootconfig.Config) error {
	for idx, step := range steps {
		err := d.runStep(step, cfg)
		if err == nil {
			continue
		}

		if !step.IgnoreError {
			return fmt.Errorf("step %d: %w", idx, err)
		}

		slog.Warn("Ignore failed step",
			slog.Int("step", idx),
			slog.String("call", step.Call),
			slog.Any("error", err),
		)
	}

	return nil
}

func (d *Declarative) runStep(step Step, cfg *bootconfig.Config) error {
	if step.When != nil {
		ok, err := d.test(step.When, cfg)
		if err != nil || !ok {
			return err
		}
	}

	if step.Unless != nil {
		ok, err := d.test(step.Unless, cfg)
		if err != nil || ok {
			return err
		}
	}

	args := make([]string, len(step.Args))

	for idx, arg := range step.Args {
		expanded, err := expand(arg, cfg)
		if err != nil {
			return err
		}

		args[idx] = expanded
	}

	slog.Debug("Call capability",
		slog.String("call", step.Call),
		slog.Any("args", args),
	)

	return d.Registry.Do(step.Call, args...)
}

func (d *Declarative) test(cond *Condition, cfg *bootconfig.Config) (bool, error) {
	if cond.Config != "" {
		section, key := splitConfigRef(cond.Config)
		return cfg.Bool(section, key, false), nil
	}

	if cond.Capability != "" {
		ok, err := d.Registry.Test(cond.Capability, cond.Args...)
		if err != nil {
			return false, fmt.Errorf("condition: %w", err)
		}

		return ok, nil
	}

	return false, fmt.Errorf("%w: empty condition", ErrInvalidUnit)
}

func (s Step) usesConfig() bool {
	for _, arg := range s.Args {
		if configRefPattern.MatchString(arg) {
			return true
		}
	}

	return (s.When != nil && s.When.Config != "") ||
		(s.Unless != nil && s.Unless.Config != "")
}

// expand replaces "${section.key}" references with config values. Undefined
// keys are an error.
func expand(arg string, cfg *bootconfig.Config) (string, error) {
	var err error

	expanded := configRefPattern.ReplaceAllStringFunc(arg, func(ref string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(ref, "${"), "}")
		section, key := splitConfigRef(name)

		value, exists := cfg.Lookup(section, key)
		if !exists && err == nil {
			err = fmt.Errorf("%w: %s", ErrUndefinedValue, name)
		}

		return value
	})

	return expanded, err
}

// splitConfigRef splits "section.key" at the last dot. A reference without
// section refers to the default section.
func splitConfigRef(ref string) (string, string) {
	idx := strings.LastIndex(ref, ".")
	if idx < 0 {
		return bootconfig.DefaultSection, ref
	}

	return ref[:idx], ref[idx+1:]
}
