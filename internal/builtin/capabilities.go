// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aibor/genpack-init/capability"
	"github.com/aibor/genpack-init/internal/disk"
	"github.com/aibor/genpack-init/internal/exitcode"
	"github.com/aibor/genpack-init/internal/fsutil"
)

const recursiveFlag = "-R"

// Capabilities returns all native operations bound to the given environment.
func Capabilities(env Env) []capability.Capability {
	env.withDefaults()

	caps := []capability.Capability{
		{
			Name: "coldplug",
			Fn: func(...string) (string, error) {
				return "", env.Coldplugger.Coldplug()
			},
		},
		{
			Name:    "load_module",
			Usage:   "<path> [params]",
			MinArgs: 1,
			MaxArgs: 2,
			Fn: func(args ...string) (string, error) {
				return "", env.LoadModule(args[0], optional(args, 1))
			},
		},
		{
			Name:    "get_block_device_info",
			Usage:   "<device>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn:      env.blockDeviceInfo,
		},
		{
			Name:    "get_partition_info",
			Usage:   "<device>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn:      env.partitionInfo,
		},
		{
			Name:    "parted",
			Usage:   "<disk> <command>",
			MinArgs: 2,
			MaxArgs: 2,
			Fn: func(args ...string) (string, error) {
				return "", exitcode.Check(env.diskTools().Parted(args[0], args[1]))
			},
		},
		{
			Name:    "mkfs",
			Usage:   "<device> <fstype> [label]",
			MinArgs: 2,
			MaxArgs: 3,
			Fn: func(args ...string) (string, error) {
				code := env.diskTools().Mkfs(args[0], args[1], optional(args, 2))
				return "", exitcode.Check(code)
			},
		},
		{
			Name:    "mkswap",
			Usage:   "<device> [label]",
			MinArgs: 1,
			MaxArgs: 2,
			Fn: func(args ...string) (string, error) {
				code := env.diskTools().Mkswap(args[0], optional(args, 1))
				return "", exitcode.Check(code)
			},
		},
		{
			Name:    "mount",
			Usage:   "<device> <mountpoint> [fstype] [options]",
			MinArgs: 2,
			MaxArgs: 4,
			Fn: func(args ...string) (string, error) {
				opts := disk.MountOptions{
					FSType:  optional(args, 2),
					Options: optional(args, 3),
				}
				code := env.diskTools().Mount(args[0], args[1], opts)

				return "", exitcode.Check(code)
			},
		},
		{
			Name:    "umount",
			Usage:   "<mountpoint>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				return "", exitcode.Check(env.diskTools().Umount(args[0]))
			},
		},
		permissionCapability("chown", "[-R] <user>[:<group>] <path>...",
			func(owner string, recursive bool, paths []string) int {
				user, group, _ := strings.Cut(owner, ":")
				return env.fsTools().Chown(user, group, recursive, paths...)
			},
		),
		permissionCapability("chgrp", "[-R] <group> <path>...",
			func(group string, recursive bool, paths []string) int {
				return env.fsTools().Chgrp(group, recursive, paths...)
			},
		),
		permissionCapability("chmod", "[-R] <mode> <path>...",
			func(mode string, recursive bool, paths []string) int {
				return env.fsTools().Chmod(mode, recursive, paths...)
			},
		),
		{
			Name:    "ensure_dir_exists",
			Usage:   "<path>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				return "", fsutil.EnsureDir(args[0])
			},
		},
		pathCapability("root_path", env.Layers.Root),
		pathCapability("boot_path", env.Layers.Boot),
		pathCapability("ro_path", env.Layers.RO),
		pathCapability("rw_path", env.Layers.RW),
		{
			Name: "is_raspberry_pi",
			Fn: func(...string) (string, error) {
				return capability.FormatBool(env.Probe.IsRaspberryPi()), nil
			},
		},
		{
			Name: "is_qemu",
			Fn: func(...string) (string, error) {
				return capability.FormatBool(env.Probe.IsQEMU()), nil
			},
		},
		{
			Name:    "read_qemu_firmware_config",
			Usage:   "<name>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				value, found, err := env.Probe.ReadQEMUFirmwareConfig(args[0])
				if err != nil {
					return "", err
				}

				if !found {
					return "", fmt.Errorf("firmware config %s: %w", args[0], ErrNotFound)
				}

				return value, nil
			},
		},
		{
			Name:    "enable_systemd_service",
			Usage:   "<unit>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				return "", exitcode.Check(env.systemd().Enable(args[0]))
			},
		},
		{
			Name:    "disable_systemd_service",
			Usage:   "<unit>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				return "", exitcode.Check(env.systemd().Disable(args[0]))
			},
		},
		{
			Name:    "link_up",
			Usage:   "<interface>",
			MinArgs: 1,
			MaxArgs: 1,
			Fn: func(args ...string) (string, error) {
				return "", env.LinkUp(args[0])
			},
		},
	}

	return caps
}

func (e *Env) blockDeviceInfo(args ...string) (string, error) {
	dev, err := e.ReadBlockDevice(args[0])
	if err != nil {
		return "", err
	}

	return formatFields(
		"logical_sector_size", strconv.FormatUint(uint64(dev.LogicalSectorSize), 10),
		"physical_sector_size", strconv.FormatUint(uint64(dev.PhysicalSectorSize), 10),
		"num_logical_sectors", strconv.FormatUint(dev.NumLogicalSectors, 10),
		"size", strconv.FormatUint(dev.Size(), 10),
		"size_human", dev.HumanSize(),
	), nil
}

func (e *Env) partitionInfo(args ...string) (string, error) {
	part, err := e.diskTools().ReadPartition(args[0])
	if err != nil {
		return "", err
	}

	return formatFields(
		"uuid", part.UUID,
		"label", part.Label,
		"type", part.Type,
	), nil
}

// permissionCapability builds a capability taking an optional leading "-R",
// a value and at least one path.
func permissionCapability(
	name, usage string,
	fn func(value string, recursive bool, paths []string) int,
) capability.Capability {
	return capability.Capability{
		Name:    name,
		Usage:   usage,
		MinArgs: 2,
		MaxArgs: capability.Unbounded,
		Fn: func(args ...string) (string, error) {
			recursive, args := cutRecursive(args)
			if len(args) < 2 {
				return "", &capability.ArgError{
					Name:  name,
					Given: len(args),
					Min:   2,
					Max:   capability.Unbounded,
				}
			}

			return "", exitcode.Check(fn(args[0], recursive, args[1:]))
		},
	}
}

func pathCapability(name, base string) capability.Capability {
	return capability.Capability{
		Name:    name,
		Usage:   "[path]...",
		MaxArgs: capability.Unbounded,
		Fn: func(args ...string) (string, error) {
			return fsutil.Join(base, args...), nil
		},
	}
}

// formatFields formats key value pairs as "key=value" lines. Pairs with
// empty value are omitted.
func formatFields(pairs ...string) string {
	var builder strings.Builder

	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}

		builder.WriteString(pairs[i])
		builder.WriteByte('=')
		builder.WriteString(pairs[i+1])
		builder.WriteByte('\n')
	}

	return builder.String()
}

func optional(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}

	return ""
}

func cutRecursive(args []string) (bool, []string) {
	if len(args) > 0 && args[0] == recursiveFlag {
		return true, args[1:]
	}

	return false, args
}
