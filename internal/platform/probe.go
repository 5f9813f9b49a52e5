// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package platform

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
)

const (
	modelFile       = "sys/firmware/devicetree/base/model"
	vendorFile      = "sys/class/dmi/id/sys_vendor"
	qemuFwCfgByName = "sys/firmware/qemu_fw_cfg/by_name"
)

// ErrInvalidName is returned if a firmware config name is not a valid path.
var ErrInvalidName = errors.New("invalid name")

// Probe reads platform information from a file system rooted at "/".
type Probe struct {
	FS fs.FS
}

// NewProbe returns a [Probe] on the real root file system.
func NewProbe() *Probe {
	return &Probe{FS: os.DirFS("/")}
}

// IsRaspberryPi returns true if the device tree model names a Raspberry Pi.
func (p *Probe) IsRaspberryPi() bool {
	model, ok := p.firstLine(modelFile)
	if !ok {
		return false
	}

	// Device tree strings are NUL terminated.
	model = strings.TrimRight(model, "\x00")

	slog.Debug("Model", slog.String("model", model))

	return strings.HasPrefix(model, "Raspberry Pi")
}

// IsQEMU returns true if the DMI system vendor is QEMU.
func (p *Probe) IsQEMU() bool {
	vendor, ok := p.firstLine(vendorFile)
	if !ok {
		return false
	}

	slog.Debug("Vendor", slog.String("vendor", vendor))

	return vendor == "QEMU"
}

// ReadQEMUFirmwareConfig reads the raw content of the named QEMU firmware
// config entry, like "opt/com.example/setup". It returns false if the entry
// does not exist.
func (p *Probe) ReadQEMUFirmwareConfig(name string) (string, bool, error) {
	file := path.Join(qemuFwCfgByName, name, "raw")
	if !fs.ValidPath(name) || !strings.HasPrefix(file, qemuFwCfgByName+"/") {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	data, err := fs.ReadFile(p.FS, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Firmware config not found", slog.String("name", name))
			return "", false, nil
		}

		return "", false, fmt.Errorf("read firmware config: %w", err)
	}

	return string(data), true, nil
}

func (p *Probe) firstLine(name string) (string, bool) {
	data, err := fs.ReadFile(p.FS, name)
	if err != nil {
		slog.Debug("Not found", slog.String("path", "/"+name))
		return "", false
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return "", true
	}

	return scanner.Text(), true
}
