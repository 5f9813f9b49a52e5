// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package systemd

import "log/slog"

// DefaultSystemctl is the systemctl program used if none is set.
const DefaultSystemctl = "systemctl"

// Runner runs external programs.
type Runner interface {
	Run(name string, args ...string) int
}

// Manager enables and disables units using systemctl. Since systemd is not
// running yet, only the unit symlinks are changed.
type Manager struct {
	Runner    Runner
	Systemctl string
}

// Enable enables the named unit. It returns the exit code of systemctl.
func (m *Manager) Enable(name string) int {
	return m.toggle("enable", "enabled", name)
}

// Disable disables the named unit. It returns the exit code of systemctl.
func (m *Manager) Disable(name string) int {
	return m.toggle("disable", "disabled", name)
}

func (m *Manager) toggle(verb, state, name string) int {
	systemctl := m.Systemctl
	if systemctl == "" {
		systemctl = DefaultSystemctl
	}

	exitCode := m.Runner.Run(systemctl, verb, name)
	if exitCode != 0 {
		slog.Error("Failed to "+verb+" systemd service",
			slog.String("service", name),
			slog.Int("exit_code", exitCode),
		)

		return exitCode
	}

	slog.Info("Systemd service "+state, slog.String("service", name))

	return 0
}
