// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/genpack-init/internal/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls    [][]string
	exitCode int
	output   string
	err      error
}

func (r *recorder) record(name string, args []string) {
	r.calls = append(r.calls, append([]string{name}, args...))
}

func (r *recorder) Run(name string, args ...string) int {
	r.record(name, args)
	return r.exitCode
}

func (r *recorder) Output(name string, args ...string) (int, []byte, error) {
	r.record(name, args)
	return r.exitCode, []byte(r.output), r.err
}

func TestTools(t *testing.T) {
	tests := []struct {
		name     string
		call     func(*disk.Tools) int
		expected []string
	}{
		{
			name:     "parted",
			call:     func(d *disk.Tools) int { return d.Parted("/dev/vda", "mklabel gpt") },
			expected: []string{"parted", "/dev/vda", "mklabel gpt"},
		},
		{
			name:     "mkfs",
			call:     func(d *disk.Tools) int { return d.Mkfs("/dev/vda1", "ext4", "") },
			expected: []string{"mkfs.ext4", "/dev/vda1"},
		},
		{
			name:     "mkfs with label",
			call:     func(d *disk.Tools) int { return d.Mkfs("/dev/vda1", "btrfs", "data") },
			expected: []string{"mkfs.btrfs", "-L", "data", "/dev/vda1"},
		},
		{
			name:     "mkswap",
			call:     func(d *disk.Tools) int { return d.Mkswap("/dev/vda2", "") },
			expected: []string{"mkswap", "/dev/vda2"},
		},
		{
			name:     "mkswap with label",
			call:     func(d *disk.Tools) int { return d.Mkswap("/dev/vda2", "swap") },
			expected: []string{"mkswap", "-L", "swap", "/dev/vda2"},
		},
		{
			name: "mount",
			call: func(d *disk.Tools) int {
				return d.Mount("/dev/vda1", "/mnt", disk.MountOptions{})
			},
			expected: []string{"mount", "/dev/vda1", "/mnt"},
		},
		{
			name: "mount with options",
			call: func(d *disk.Tools) int {
				return d.Mount("/dev/vda1", "/mnt", disk.MountOptions{
					FSType:  "ext4",
					Options: "ro,noatime",
				})
			},
			expected: []string{"mount", "-t", "ext4", "-o", "ro,noatime", "/dev/vda1", "/mnt"},
		},
		{
			name:     "umount",
			call:     func(d *disk.Tools) int { return d.Umount("/mnt") },
			expected: []string{"umount", "/mnt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recorder{exitCode: 3}
			tools := disk.Tools{Runner: runner}

			assert.Equal(t, 3, tt.call(&tools), "exit code must be passed through")
			assert.Equal(t, [][]string{tt.expected}, runner.calls)
		})
	}
}

func TestTools_ReadPartition(t *testing.T) {
	device := filepath.Join(t.TempDir(), "vda1")
	require.NoError(t, os.WriteFile(device, nil, 0o600))

	t.Run("found", func(t *testing.T) {
		runner := &recorder{
			output: "DEVNAME=" + device + "\nUUID=1c9e-4d1a\nLABEL=my\\ data\nTYPE=vfat\n",
		}
		tools := disk.Tools{Runner: runner, Blkid: "/sbin/blkid"}

		partition, err := tools.ReadPartition(device)
		require.NoError(t, err)

		expected := &disk.Partition{
			Name:  device,
			UUID:  "1c9e-4d1a",
			Label: "my data",
			Type:  "vfat",
		}
		assert.Equal(t, expected, partition)
		assert.Equal(t, [][]string{{"/sbin/blkid", "-p", "-o", "export", device}}, runner.calls)
	})

	t.Run("escaped labels", func(t *testing.T) {
		labels := map[string]string{
			`it\'s\ ok`:   "it's ok",
			`a\"b`:        `a"b`,
			`dangling\`:   `dangling\`,
			`plain-label`: "plain-label",
		}

		for escaped, expected := range labels {
			runner := &recorder{output: "LABEL=" + escaped + "\n"}
			tools := disk.Tools{Runner: runner}

			partition, err := tools.ReadPartition(device)
			require.NoError(t, err)
			assert.Equal(t, expected, partition.Label, escaped)
		}
	})

	t.Run("no signature", func(t *testing.T) {
		tools := disk.Tools{Runner: &recorder{exitCode: 2}}

		partition, err := tools.ReadPartition(device)
		require.NoError(t, err)
		assert.Equal(t, &disk.Partition{Name: device}, partition)
	})

	t.Run("blkid failure", func(t *testing.T) {
		tools := disk.Tools{Runner: &recorder{exitCode: 4}}

		_, err := tools.ReadPartition(device)
		require.Error(t, err)
	})

	t.Run("spawn failure", func(t *testing.T) {
		tools := disk.Tools{Runner: &recorder{exitCode: -1, err: assert.AnError}}

		_, err := tools.ReadPartition(device)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing device", func(t *testing.T) {
		runner := &recorder{}
		tools := disk.Tools{Runner: runner}

		_, err := tools.ReadPartition(device + "-missing")
		require.ErrorIs(t, err, disk.ErrNoDevice)
		assert.Empty(t, runner.calls)
	})
}

func TestReadBlockDevice(t *testing.T) {
	t.Run("missing device", func(t *testing.T) {
		_, err := disk.ReadBlockDevice(filepath.Join(t.TempDir(), "vdz"))
		require.ErrorIs(t, err, disk.ErrNoDevice)
	})

	t.Run("not a block device", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

		_, err := disk.ReadBlockDevice(path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, disk.ErrNoDevice)
	})
}

func TestBlockDevice_String(t *testing.T) {
	device := disk.BlockDevice{
		Name:               "/dev/vda",
		LogicalSectorSize:  512,
		PhysicalSectorSize: 4096,
		NumLogicalSectors:  41943040,
	}

	assert.Equal(t, uint64(21474836480), device.Size())
	assert.Equal(t, "20 GiB", device.HumanSize())
	assert.Equal(t,
		"/dev/vda: 20 GiB, 41943040 sectors, logical/physical sector size 512/4096",
		device.String(),
	)
}
