// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initramfs builds overlay CPIO archives carrying the genpack-init
// binary as "/init" and its plugin units. The kernel unpacks concatenated
// archives in order, so an overlay can be appended to an existing initramfs.
package initramfs
