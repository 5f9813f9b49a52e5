// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package subprocess runs external programs synchronously and reports their
// exit codes.
//
// There are no timeouts and no cancellation. A program that never terminates
// blocks the caller forever.
package subprocess
