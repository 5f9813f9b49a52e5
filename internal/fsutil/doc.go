// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fsutil provides file ownership and permission tools and the well
// known locations of the appliance's file system layers.
package fsutil
