// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/genpack-init/sysinit"
)

const (
	name = "genpack-init"

	usageMessage = `Usage of 'genpack-init':
    genpack-init [flags...]

Run as PID 1 by root, genpack-init runs all plugins in /usr/lib/genpack-init
and hands off to /sbin/init. Flags are ignored then.

Run in any other way, it runs the plugins of a test directory for debugging.
Coldplug is mocked unless disabled:
	genpack-init -config ./system.ini -plugins ./plugins -debug

Flag defaults can be changed with the environment variables
GENPACK_INIT_CONFIG, GENPACK_INIT_PLUGIN_DIR, GENPACK_INIT_LOG_FILE and
GENPACK_INIT_DEVICE_ROOT.
`
)

type flags struct {
	opts    sysinit.Options
	flagSet *flag.FlagSet

	version bool
	shell   bool
}

func newFlags(defaults envConfig, output io.Writer) *flags {
	flags := &flags{
		opts: sysinit.Options{
			ConfigFile:   defaults.ConfigFile,
			PluginDir:    defaults.PluginDir,
			LogFile:      defaults.LogFile,
			DeviceRoot:   defaults.DeviceRoot,
			MockColdplug: true,
		},
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected arguments", nil)
	}

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.opts.ConfigFile,
		"config",
		f.opts.ConfigFile,
		"boot configuration file",
	)

	flagSet.StringVar(
		&f.opts.PluginDir,
		"plugins",
		f.opts.PluginDir,
		"directory to load plugin units from",
	)

	flagSet.StringVar(
		&f.opts.LogFile,
		"log",
		f.opts.LogFile,
		"file to log to in addition to stderr. Truncated on start.",
	)

	flagSet.StringVar(
		&f.opts.DeviceRoot,
		"devices",
		f.opts.DeviceRoot,
		"directory tree scanned for modalias files (default /sys/devices)",
	)

	flagSet.BoolVar(
		&f.opts.MockColdplug,
		"mock-coldplug",
		f.opts.MockColdplug,
		"do not load kernel modules on coldplug",
	)

	flagSet.BoolVar(
		&f.shell,
		"shell",
		f.shell,
		"open an interactive shell after the plugins ran",
	)

	flagSet.BoolVar(
		&f.opts.Debug,
		"debug",
		f.opts.Debug,
		"enable debug output regardless of the config",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
