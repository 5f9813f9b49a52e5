// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"fmt"
	goplugin "plugin"
)

// OpenGoPlugin opens a compiled Go plugin and looks up its entry point.
//
// The plugin must be built with "-buildmode=plugin" against the same version
// of this module. It may export either a function or a variable holding a
// function or an implementation of [Configurer] or [NiladicConfigurer].
func OpenGoPlugin(path string) (any, bool, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("open go plugin: %w", err)
	}

	symbol, err := p.Lookup(EntryPointName)
	if err != nil {
		return nil, false, nil
	}

	return symbol, true, nil
}
