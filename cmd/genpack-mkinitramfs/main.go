// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Builds an overlay CPIO archive carrying genpack-init as "/init" and the
// given plugin units. Append it to an existing initramfs:
//
//	genpack-mkinitramfs -o overlay.cpio -init ./genpack-init units/*.yaml
//	cat initramfs.img overlay.cpio > initramfs-genpack.img
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aibor/genpack-init/internal/initramfs"
)

var errNoFiles = errors.New("neither init file nor units given")

func run(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("genpack-mkinitramfs", flag.ContinueOnError)
	flagSet.SetOutput(stderr)

	output := flagSet.String("o", "-", "output file, \"-\" writes to stdout")
	initFile := flagSet.String("init", "", "genpack-init binary to add as /init")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *initFile == "" && flagSet.NArg() == 0 {
		return errNoFiles
	}

	overlay, err := initramfs.NewOverlay(*initFile)
	if err != nil {
		return fmt.Errorf("add init: %w", err)
	}

	if err := overlay.AddUnits(flagSet.Args()...); err != nil {
		return fmt.Errorf("add units: %w", err)
	}

	if *output == "-" {
		return overlay.WriteInto(stdout)
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	if err := overlay.WriteInto(file); err != nil {
		_ = os.Remove(file.Name())
		return fmt.Errorf("create archive: %w", err)
	}

	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
