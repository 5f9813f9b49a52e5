// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI entry point of genpack-init outside of the init
// role. It handles flag parsing, environment overrides and error handling.
package cmd
