// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Init program of genpack appliances. Run as PID 1 by root it runs the
// configuration plugins and hands off to the system's init. See package
// sysinit for details.
package main

import (
	"os"

	"github.com/aibor/genpack-init/internal/cmd"
	"github.com/aibor/genpack-init/sysinit"
)

func main() {
	role := sysinit.DetectRole()
	if role == sysinit.RoleInit {
		// Does not return.
		sysinit.Boot(role, sysinit.InitOptions())
	}

	os.Exit(cmd.Run(os.Args[1:], cmd.IO{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
