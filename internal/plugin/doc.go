// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugin discovers and runs configuration units.
//
// A unit is a file in the plugin directory. Its kind is determined by the
// file extension. Every kind provides an optional entry point named
// "Configure" that takes either no argument or the boot configuration. Units
// run one after another in file name order. A failing unit does not prevent
// later ones from running.
package plugin
