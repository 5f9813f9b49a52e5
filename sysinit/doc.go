// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sysinit is the boot sequencer of genpack-init.
//
// When run as PID 1 by root, the process is in the init role: it loads the
// boot configuration, sets up logging, makes sure the kernel's virtual file
// systems are mounted, registers the native capabilities, runs all plugin
// units and finally hands control to the system's real init program. If no
// init program can be executed, the machine is halted. The hand-off happens
// regardless of failures in the preceding stages.
//
// Otherwise the process is in the debug role: the same stages run against
// test locations, coldplug is mocked by default and [Boot] returns an exit
// code instead of handing off.
package sysinit
