// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

// Role determines how the boot sequence ends.
type Role int

const (
	// RoleDebug runs the stages and returns an exit code.
	RoleDebug Role = iota

	// RoleInit runs the stages and hands off to the real init program.
	RoleInit
)

func (r Role) String() string {
	if r == RoleInit {
		return "init"
	}

	return "debug"
}

// DetectRole returns [RoleInit] if the process has PID 1 and runs as root.
func DetectRole() Role {
	if getpid() == 1 && getuid() == 0 {
		return RoleInit
	}

	return RoleDebug
}
