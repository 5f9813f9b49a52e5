// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultLogFile is the log file of the init role. It is truncated on every
// boot.
const DefaultLogFile = "/var/log/genpack-init.log"

// SetupLogging sets the default logger to write to stderr and, if not empty,
// the given log file.
//
// The log file is truncated. If it cannot be opened, logging goes to stderr
// only and the returned error says why. The returned closer must be called
// once logging is done. It is never nil.
func SetupLogging(logFile string, stderr io.Writer, debug bool) (io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var (
		writer = stderr
		closer io.Closer = nopCloser{}
		err    error
	)

	if logFile != "" {
		var file *os.File

		file, err = openLogFile(logFile)
		if err == nil {
			writer = io.MultiWriter(file, stderr)
			closer = file
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		},
	)))

	return closer, err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
