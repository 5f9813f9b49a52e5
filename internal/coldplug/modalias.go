// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coldplug

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const modaliasFileName = "modalias"

type set map[string]struct{}

func (s set) add(values ...string) {
	for _, value := range values {
		if value != "" {
			s[value] = struct{}{}
		}
	}
}

func (s set) sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// ScanModaliases walks the given directory tree and collects the content of
// all files named "modalias". Symbolic links are not followed.
//
// The result is sorted and free of duplicates. Files and directories that
// cannot be read are skipped. Only a failure to read the root itself is
// returned as error.
func ScanModaliases(root string) ([]string, error) {
	aliases := make(set)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			// Unreadable sub directories are skipped, their siblings are
			// still visited.
			return nil
		}

		if entry.IsDir() || entry.Name() != modaliasFileName {
			return nil
		}

		aliases.add(readModalias(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return aliases.sorted(), nil
}

// readModalias returns the first token of the file or an empty string if the
// file cannot be read.
func readModalias(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
