// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

func getpid() int {
	return unix.Getpid()
}

func getuid() int {
	return unix.Getuid()
}

func mount(path, source, fsType string) error {
	if source == "" {
		source = fsType
	}

	if err := unix.Mount(source, path, fsType, 0, ""); err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}

	return nil
}

// isMountPoint returns true if the given directory is on another device than
// its parent.
func isMountPoint(path string) (bool, error) {
	var stat, parentStat unix.Stat_t

	if err := unix.Stat(path, &stat); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := unix.Stat(filepath.Dir(path), &parentStat); err != nil {
		return false, fmt.Errorf("stat parent of %s: %w", path, err)
	}

	return stat.Dev != parentStat.Dev, nil
}

func execve(path string, argv []string, env []string) error {
	if err := unix.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}

	return nil
}

func halt() error {
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_HALT); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}

	return nil
}

// block never returns. PID 1 must not exit, or the kernel panics.
func block() {
	for {
		time.Sleep(time.Hour)
	}
}
