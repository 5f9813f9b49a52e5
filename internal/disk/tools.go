// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk

// Runner runs external programs. See [subprocess.Runner].
type Runner interface {
	Run(name string, args ...string) int
	Output(name string, args ...string) (int, []byte, error)
}

// Tools runs the disk provisioning programs.
type Tools struct {
	Runner Runner

	// Blkid is the blkid binary used for probing partitions. Defaults to
	// "blkid" looked up in PATH.
	Blkid string
}

func (t *Tools) blkid() string {
	if t.Blkid == "" {
		return "blkid"
	}

	return t.Blkid
}

// Parted runs a single parted command on the given disk.
func (t *Tools) Parted(disk, command string) int {
	return t.Runner.Run("parted", disk, command)
}

// Mkfs creates a file system of the given type on the given device. The label
// is optional.
func (t *Tools) Mkfs(device, fsType, label string) int {
	args := withLabel(label)
	args = append(args, device)

	return t.Runner.Run("mkfs."+fsType, args...)
}

// Mkswap formats the given device as swap space. The label is optional.
func (t *Tools) Mkswap(device, label string) int {
	args := withLabel(label)
	args = append(args, device)

	return t.Runner.Run("mkswap", args...)
}

// MountOptions are optional arguments for [Tools.Mount].
type MountOptions struct {
	// FSType is the file system type. Probed by mount if empty.
	FSType string

	// Options is the comma separated mount option list.
	Options string
}

// Mount mounts the given device on the given mount point.
func (t *Tools) Mount(device, mountpoint string, opts MountOptions) int {
	var args []string

	if opts.FSType != "" {
		args = append(args, "-t", opts.FSType)
	}

	if opts.Options != "" {
		args = append(args, "-o", opts.Options)
	}

	args = append(args, device, mountpoint)

	return t.Runner.Run("mount", args...)
}

// Umount unmounts the given mount point.
func (t *Tools) Umount(mountpoint string) int {
	return t.Runner.Run("umount", mountpoint)
}

func withLabel(label string) []string {
	if label == "" {
		return nil
	}

	return []string{"-L", label}
}
