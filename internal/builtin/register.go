// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package builtin

import (
	"log/slog"

	"github.com/aibor/genpack-init/capability"
)

// Register registers all native operations in the given registry and returns
// the number of newly added ones. Operations already registered are left
// alone, so registering twice is a no-op.
func Register(registry *capability.Registry, env Env) int {
	added := registry.Register(Capabilities(env)...)

	slog.Debug("Capabilities registered", slog.Int("added", added))

	return added
}
