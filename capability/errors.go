// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package capability

import (
	"errors"
	"fmt"
)

// ErrUnknown is returned if a capability is called that is not registered.
var ErrUnknown = errors.New("unknown capability")

// ArgError is returned if a capability is called with a number of arguments
// it does not accept.
type ArgError struct {
	Name  string
	Given int
	Min   int
	Max   int
}

func (e *ArgError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("%s: %d arguments given, at least %d required",
			e.Name, e.Given, e.Min)
	case e.Min == e.Max:
		return fmt.Sprintf("%s: %d arguments given, %d required",
			e.Name, e.Given, e.Min)
	default:
		return fmt.Sprintf("%s: %d arguments given, %d to %d accepted",
			e.Name, e.Given, e.Min, e.Max)
	}
}

func (*ArgError) Is(other error) bool {
	_, ok := other.(*ArgError)
	return ok
}
