// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package builtin

import "errors"

// ErrNotFound is returned by lookups that found nothing.
var ErrNotFound = errors.New("not found")
