// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

// blkid exits with 2 if no known signature is found on the device.
const blkidNothingFound = 2

// Partition holds the identifiers found on a partition. Empty fields were
// not found.
type Partition struct {
	Name  string
	UUID  string
	Label string
	Type  string
}

// ReadPartition probes the given partition for file system signatures.
//
// Returns [ErrNoDevice] if the device does not exist. A device without any
// known signature results in a [Partition] with only the name set.
func (t *Tools) ReadPartition(path string) (*Partition, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoDevice)
		}

		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	exitCode, output, err := t.Runner.Output(t.blkid(), "-p", "-o", "export", path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}

	partition := &Partition{Name: path}

	switch exitCode {
	case 0:
	case blkidNothingFound:
		return partition, nil
	default:
		return nil, fmt.Errorf("probe %s: blkid exit code %d", path, exitCode)
	}

	values := parseExport(output)
	partition.UUID = values["UUID"]
	partition.Label = values["LABEL"]
	partition.Type = values["TYPE"]

	return partition, nil
}

// parseExport parses the KEY=value lines of "blkid -o export".
func parseExport(output []byte) map[string]string {
	values := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}

		values[strings.TrimSpace(key)] = unescape(value)
	}

	return values
}

// unescape removes the shell escaping blkid applies to values. Values that
// cannot be unescaped are returned as they are.
func unescape(value string) string {
	words, err := shellquote.Split(value)
	if err != nil {
		return value
	}

	return strings.Join(words, " ")
}
