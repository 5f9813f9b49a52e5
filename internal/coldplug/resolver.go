// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coldplug

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// DefaultRoot is the sysfs directory all devices are found in.
	DefaultRoot = "/sys/devices"

	// DefaultModprobe is the modprobe binary used for resolving and loading.
	DefaultModprobe = "/sbin/modprobe"
)

// Runner runs external programs. See [subprocess.Runner].
type Runner interface {
	Exec(name string, args ...string) (int, error)
	Output(name string, args ...string) (int, []byte, error)
}

// Resolver resolves the modaliases of all present devices to kernel modules
// and loads them.
type Resolver struct {
	// Root is the directory tree scanned for modalias files.
	Root string

	// Modprobe is the path of the modprobe binary.
	Modprobe string

	// Runner runs modprobe.
	Runner Runner

	// State is shared by all resolvers of a boot.
	State *State
}

// NewResolver creates a new [Resolver] with default paths.
func NewResolver(state *State, runner Runner) *Resolver {
	return &Resolver{
		Root:     DefaultRoot,
		Modprobe: DefaultModprobe,
		Runner:   runner,
		State:    state,
	}
}

// Coldplug loads the kernel modules for all present devices.
//
// It does nothing once a coldplug completed. Modules that fail to load are
// logged but the coldplug is still considered complete so a broken driver
// does not stall the boot. Errors scanning the device tree or running
// modprobe are logged and returned. In that case a later call tries again.
func (r *Resolver) Coldplug() error {
	if r.State.Done() {
		slog.Info("Coldplug already done")
		return nil
	}

	err := r.coldplug()
	if err != nil {
		slog.Error("Coldplug failed", slog.Any("error", err))
		return fmt.Errorf("coldplug: %w", err)
	}

	r.State.markDone()
	slog.Info("Coldplug done")

	return nil
}

func (r *Resolver) coldplug() error {
	aliases, err := ScanModaliases(r.Root)
	if err != nil {
		return err
	}

	slog.Debug("Found modaliases", slog.Int("count", len(aliases)))

	modules, err := r.resolve(aliases)
	if err != nil {
		return err
	}

	slog.Info("Loading modules", slog.String("modules", strings.Join(modules, ", ")))

	return r.load(modules)
}

// resolve maps the modaliases to module names including their dependencies.
// Nothing is loaded.
func (r *Resolver) resolve(aliases []string) ([]string, error) {
	if len(aliases) == 0 {
		return nil, nil
	}

	args := append([]string{"-a", "-q", "-R"}, aliases...)

	exitCode, output, err := r.Runner.Output(r.Modprobe, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve modaliases: %w", err)
	}

	// Aliases without matching module make modprobe fail. This is expected
	// for most devices.
	if exitCode != 0 {
		slog.Debug("Modalias resolution incomplete", slog.Int("exit_code", exitCode))
	}

	modules := make(set)
	modules.add(strings.Fields(string(output))...)

	return modules.sorted(), nil
}

func (r *Resolver) load(modules []string) error {
	if len(modules) == 0 {
		return nil
	}

	args := append([]string{"-a", "-b"}, modules...)

	exitCode, err := r.Runner.Exec(r.Modprobe, args...)
	if err != nil {
		return fmt.Errorf("load modules: %w", err)
	}

	// TODO: Remember the modules that failed so a later coldplug can retry
	// just those instead of giving up on them for the rest of the boot.
	if exitCode != 0 {
		slog.Warn("Modprobe returned non-zero exit code",
			slog.Int("exit_code", exitCode))

		return nil
	}

	slog.Info("Modules loaded")

	return nil
}
