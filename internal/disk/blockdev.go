// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"unsafe"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// BlockDevice describes the geometry of a block device.
type BlockDevice struct {
	Name               string
	LogicalSectorSize  uint32
	PhysicalSectorSize uint32
	NumLogicalSectors  uint64
}

// Size returns the size of the device in bytes.
func (b BlockDevice) Size() uint64 {
	return b.NumLogicalSectors * uint64(b.LogicalSectorSize)
}

// HumanSize returns the size of the device in IEC units, like "20 GiB".
func (b BlockDevice) HumanSize() string {
	return humanize.IBytes(b.Size())
}

func (b BlockDevice) String() string {
	return fmt.Sprintf("%s: %s, %d sectors, logical/physical sector size %d/%d",
		b.Name,
		b.HumanSize(),
		b.NumLogicalSectors,
		b.LogicalSectorSize,
		b.PhysicalSectorSize,
	)
}

// ReadBlockDevice reads the geometry of the block device at the given path.
//
// Returns [ErrNoDevice] if the device does not exist.
func ReadBlockDevice(path string) (*BlockDevice, error) {
	device, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Block device not found", slog.String("path", path))
			return nil, fmt.Errorf("%s: %w", path, ErrNoDevice)
		}

		return nil, fmt.Errorf("open block device: %w", err)
	}
	defer device.Close()

	fd := int(device.Fd())

	logicalSectorSize, err := unix.IoctlGetUint32(fd, unix.BLKSSZGET)
	if err != nil {
		return nil, fmt.Errorf("ioctl BLKSSZGET %s: %w", path, err)
	}

	physicalSectorSize, err := unix.IoctlGetUint32(fd, unix.BLKPBSZGET)
	if err != nil {
		return nil, fmt.Errorf("ioctl BLKPBSZGET %s: %w", path, err)
	}

	size, err := ioctlGetUint64(fd, unix.BLKGETSIZE64)
	if err != nil {
		return nil, fmt.Errorf("ioctl BLKGETSIZE64 %s: %w", path, err)
	}

	if logicalSectorSize == 0 {
		return nil, fmt.Errorf("%s: zero logical sector size", path)
	}

	blockDevice := &BlockDevice{
		Name:               path,
		LogicalSectorSize:  logicalSectorSize,
		PhysicalSectorSize: physicalSectorSize,
		NumLogicalSectors:  size / uint64(logicalSectorSize),
	}

	slog.Debug("Block device read", slog.Any("device", blockDevice))

	return blockDevice, nil
}

func ioctlGetUint64(fd int, req uint) (uint64, error) {
	var value uint64

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(req),
		uintptr(unsafe.Pointer(&value)),
	)
	if errno != 0 {
		return 0, errno
	}

	return value, nil
}
