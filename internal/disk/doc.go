// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package disk provides block device inspection and the provisioning tools
// plugins use to partition, format and mount disks.
//
// Provisioning operations run the usual command line tools and return their
// exit code. Whether a non-zero exit code is fatal is up to the caller.
package disk
