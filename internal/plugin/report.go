// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

// Status is the outcome of running a unit.
type Status string

const (
	StatusRan     Status = "ran"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome of a single unit.
type Result struct {
	Unit   Unit
	Kind   EntryKind
	Status Status
	Err    error
}

// Report lists the results of all units of a run in the order they ran.
type Report []Result

// Count returns the number of units with the given status.
func (r Report) Count(status Status) int {
	var count int

	for _, result := range r {
		if result.Status == status {
			count++
		}
	}

	return count
}

// Failed returns the results of all failed units.
func (r Report) Failed() []Result {
	var failed []Result

	for _, result := range r {
		if result.Status == StatusFailed {
			failed = append(failed, result)
		}
	}

	return failed
}
