// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package coldplug loads the kernel modules for all hardware present at boot.
//
// Every device the kernel knows about exposes a "modalias" file in sysfs.
// Their content is resolved to module names in a single modprobe invocation
// and the resulting set of modules is loaded in a second one. Modules that
// cannot be found or loaded do not fail the coldplug.
package coldplug
