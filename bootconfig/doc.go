// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bootconfig provides read-only access to the boot configuration file
// of the appliance.
//
// The file is an INI file with "[section]" headers. Lines before the first
// header belong to the section [DefaultSection]. Key names are case
// insensitive, section names are not. Lines starting with "#" or ";" are
// comments. Indented lines continue the value of the previous key.
//
//	debug = yes
//
//	[network]
//	hostname = appliance
//
// Plugins receive the loaded [Config] and must not rely on being able to
// change it.
package bootconfig
