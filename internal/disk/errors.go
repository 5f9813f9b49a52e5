// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk

import "errors"

// ErrNoDevice is returned if the given device does not exist.
var ErrNoDevice = errors.New("no such device")
