// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coldplug

// State records if the coldplug ran to completion.
//
// It is owned by the boot sequence and shared with every [Resolver] so the
// hardware is brought up only once per boot, no matter how many plugins ask
// for it.
type State struct {
	done bool
}

// Done returns true once a coldplug completed.
func (s *State) Done() bool {
	return s.done
}

func (s *State) markDone() {
	s.done = true
}
