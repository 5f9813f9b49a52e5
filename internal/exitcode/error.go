// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"errors"
	"fmt"
)

// Abnormal is the exit code used for processes that could not be created or
// did not exit on their own, e.g. because they were killed by a signal.
const Abnormal = -1

// Error is an exit code that is considered an error.
type Error int

func (e Error) Error() string {
	if e == Abnormal {
		return "abnormal process termination"
	}

	return fmt.Sprintf("non-zero exit code: %d", e)
}

func (Error) Is(other error) bool {
	_, ok := other.(Error)
	return ok
}

// Code returns the exit code as basic int type.
func (e Error) Code() int {
	return int(e)
}

// Check returns an [Error] for any non-zero exit code and nil otherwise.
func Check(exitCode int) error {
	if exitCode == 0 {
		return nil
	}

	return Error(exitCode)
}

// From returns an exit code based on the given error and if the error was an
// [Error].
//
// If the error is nil, the exit code is 0. If the error is an [Error] the exit
// code is the return value of [Error.Code]. Otherwise the exit code is
// [Abnormal].
func From(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var exitErr Error
	if errors.As(err, &exitErr) {
		return exitErr.Code(), true
	}

	return Abnormal, false
}
