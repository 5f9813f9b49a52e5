// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/capability"
	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
)

const (
	prompt = "genpack-init> "

	// HistoryFileName is the name of the history file in the user's home
	// directory.
	HistoryFileName = ".genpack_init_history"
)

// Shell dispatches input lines to capabilities.
type Shell struct {
	Registry *capability.Registry
	Config   *bootconfig.Config
	Output   io.Writer
}

// Execute runs a single input line. Words are split like a POSIX shell does,
// without any expansion. It returns false if the shell should terminate.
func (s *Shell) Execute(line string) bool {
	words, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(s.Output, "Error:", err)
		return true
	}

	if len(words) == 0 {
		return true
	}

	cmd, args := words[0], words[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "list", "ls":
		s.printCapabilities()
	case "config":
		s.printConfig(args)
	case "quit", "exit", "q":
		return false
	default:
		s.call(cmd, args)
	}

	return true
}

func (s *Shell) call(name string, args []string) {
	result, err := s.Registry.Call(name, args...)
	if err != nil {
		if errors.Is(err, capability.ErrUnknown) {
			fmt.Fprintf(s.Output, "Unknown command: %s (type 'help' for commands)\n", name)
			return
		}

		fmt.Fprintln(s.Output, "Error:", err)

		return
	}

	if result == "" {
		return
	}

	fmt.Fprint(s.Output, result)

	if !strings.HasSuffix(result, "\n") {
		fmt.Fprintln(s.Output)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.Output, `Commands:
  help               - Show this help
  list               - List capabilities and their arguments
  config [section]   - Show the boot configuration
  <capability> args  - Call a capability, like: mount /dev/vda1 /mnt
  quit               - Leave the shell

Arguments may be quoted with ' or ".`)
}

func (s *Shell) printCapabilities() {
	writer := tabwriter.NewWriter(s.Output, 0, 0, 2, ' ', 0)

	for _, name := range s.Registry.Names() {
		c, _ := s.Registry.Lookup(name)
		fmt.Fprintf(writer, "  %s\t%s\n", name, c.Usage)
	}

	_ = writer.Flush()
}

func (s *Shell) printConfig(args []string) {
	sections := s.Config.Sections()
	if len(args) > 0 {
		sections = args
	}

	for _, section := range sections {
		fmt.Fprintf(s.Output, "[%s]\n", section)

		for _, key := range s.Config.Keys(section) {
			value, _ := s.Config.Lookup(section, key)
			fmt.Fprintf(s.Output, "%s = %s\n", key, value)
		}
	}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("quit"),
	}

	configItems := make([]readline.PrefixCompleterInterface, 0)
	for _, section := range s.Config.Sections() {
		configItems = append(configItems, readline.PcItem(section))
	}

	items = append(items, readline.PcItem("config", configItems...))

	for _, name := range s.Registry.Names() {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(items...)
}

// Run reads lines from the terminal until the user quits or closes the input.
// History is kept in the given file, if not empty.
func (s *Shell) Run(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	output := s.Output
	s.Output = rl.Stdout()

	defer func() { s.Output = output }()

	s.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}

			return nil
		}

		if !s.Execute(line) {
			return nil
		}
	}
}

// DefaultHistoryFile returns the history file in the user's home directory
// or an empty string if there is none.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, HistoryFileName)
}
