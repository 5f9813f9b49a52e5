// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package capability is the environment configuration plugins run in.
//
// The init program registers its native operations (coldplug, disk and file
// system provisioning, platform probes, systemd unit toggling) into the
// [Default] registry before any plugin runs. Compiled plugins call them by
// name:
//
//	func Configure(cfg *bootconfig.Config) error {
//		if err := capability.Do("coldplug"); err != nil {
//			return err
//		}
//
//		if cfg.Bool("_default", "ssh", false) {
//			return capability.Do("enable_systemd_service", "sshd.service")
//		}
//
//		return nil
//	}
//
// Declarative plugins and the debug shell use the same registry.
package capability
