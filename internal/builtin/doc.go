// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package builtin binds the native operations of the init program into
// capabilities plugins can call.
//
// Operations that run external programs fail with an [exitcode.Error] if the
// program exits non-zero. Structured results are returned as "key=value"
// lines.
package builtin
