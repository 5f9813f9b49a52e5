// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coldplug

import "log/slog"

// Mock pretends to coldplug. It is used when running outside of the init role
// where loading kernel modules is neither possible nor wanted.
type Mock struct {
	State *State
}

// Coldplug marks the coldplug as done without touching the system.
func (m *Mock) Coldplug() error {
	if m.State.Done() {
		slog.Info("Coldplug already done")
		return nil
	}

	slog.Debug("Coldplug called (mock)")
	m.State.markDone()

	return nil
}
