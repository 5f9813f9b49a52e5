// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootconfig

import "errors"

var (
	// ErrNotFound is returned if the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrParse is returned if the configuration file is malformed.
	ErrParse = errors.New("config file malformed")
)
