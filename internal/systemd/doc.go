// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package systemd toggles systemd units of the system that is booted after
// hand-off.
package systemd
