// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shell provides an interactive shell for calling capabilities by
// hand. It is meant for debugging plugins on a running system.
package shell
