// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package platform detects the hardware the appliance runs on and provides
// access to platform specific facilities.
package platform
