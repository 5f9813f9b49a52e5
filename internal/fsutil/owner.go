// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fsutil

// Runner runs external programs.
type Runner interface {
	Run(name string, args ...string) int
}

// Tools changes ownership and permissions by running the coreutils programs.
type Tools struct {
	Runner Runner
}

// Chown changes the owner of the given paths. The group is optional.
func (t *Tools) Chown(user, group string, recursive bool, paths ...string) int {
	owner := user
	if group != "" {
		owner += ":" + group
	}

	return t.run("chown", owner, recursive, paths)
}

// Chgrp changes the group of the given paths.
func (t *Tools) Chgrp(group string, recursive bool, paths ...string) int {
	return t.run("chgrp", group, recursive, paths)
}

// Chmod changes the mode of the given paths. The mode may be anything chmod
// accepts, like "0644" or "u+x".
func (t *Tools) Chmod(mode string, recursive bool, paths ...string) int {
	return t.run("chmod", mode, recursive, paths)
}

func (t *Tools) run(command, value string, recursive bool, paths []string) int {
	args := make([]string, 0, len(paths)+2)

	if recursive {
		args = append(args, "-R")
	}

	args = append(args, value)
	args = append(args, paths...)

	return t.Runner.Run(command, args...)
}
