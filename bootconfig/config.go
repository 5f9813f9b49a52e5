// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// DefaultSection is the section keys before the first section header
	// belong to.
	DefaultSection = "_default"

	// FileName is the name of the configuration file in the boot partition.
	FileName = "system.ini"
)

// DefaultDirs are the candidate directories the configuration file is looked
// up in. The boot partition is preferred over the writable layer.
var DefaultDirs = []string{
	"/run/initramfs/boot",
	"/run/initramfs/rw",
}

// Config is a parsed configuration file.
//
// Methods are safe to call on a nil *Config, which behaves like an empty
// configuration.
type Config struct {
	file *ini.File
}

// Empty returns a configuration without any keys.
func Empty() *Config {
	return &Config{file: ini.Empty(loadOptions())}
}

// noChildSections is used as child section delimiter. Section names cannot
// contain a newline, so keys are never looked up in a parent section like
// "[net]" for "[net.eth0]".
const noChildSections = "\n"

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
		PreserveSurroundedQuote:    true,
		ChildSectionDelimiter:      noChildSections,
	}
}

// Parse parses the given content.
//
// A "[_default]" header is prepended so content without any section header
// is valid.
func Parse(data []byte) (*Config, error) {
	content := make([]byte, 0, len(DefaultSection)+3+len(data))
	content = append(content, "["+DefaultSection+"]\n"...)
	content = append(content, data...)

	file, err := ini.LoadSources(loadOptions(), content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &Config{file: file}, nil
}

// Load reads and parses the configuration file at the given path.
//
// The returned configuration is never nil. If the file does not exist or is
// malformed, an empty configuration is returned along with an error
// describing why. Callers are expected to log the error and carry on.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return Empty(), fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Empty(), fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Locate returns the path of the file with the given name in the first of
// the given directories that exists. If none exists, the path in the last
// directory is returned.
func Locate(dirs []string, name string) string {
	if len(dirs) == 0 {
		return name
	}

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return filepath.Join(dir, name)
		}
	}

	return filepath.Join(dirs[len(dirs)-1], name)
}

func (c *Config) key(section, key string) (*ini.Key, bool) {
	if c == nil || c.file == nil {
		return nil, false
	}

	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil, false
	}

	if !sec.HasKey(key) {
		return nil, false
	}

	return sec.Key(key), true
}

// Lookup returns the raw value of the given key and whether it exists.
func (c *Config) Lookup(section, key string) (string, bool) {
	k, exists := c.key(section, key)
	if !exists {
		return "", false
	}

	return k.String(), true
}

// Has returns true if the given key exists in the given section.
func (c *Config) Has(section, key string) bool {
	_, exists := c.key(section, key)
	return exists
}

// String returns the value of the given key or the fallback if it does not
// exist.
func (c *Config) String(section, key, fallback string) string {
	value, exists := c.Lookup(section, key)
	if !exists {
		return fallback
	}

	return value
}

// Bool returns the boolean value of the given key. The fallback is returned
// if the key does not exist or its value is not a boolean word.
//
// True words are "1", "t", "true", "y", "yes" and "on", false words are "0",
// "f", "false", "n", "no" and "off". Case does not matter.
func (c *Config) Bool(section, key string, fallback bool) bool {
	value, exists := c.Lookup(section, key)
	if !exists {
		return fallback
	}

	b, ok := ParseBool(value)
	if !ok {
		return fallback
	}

	return b
}

// Int returns the integer value of the given key. The fallback is returned if
// the key does not exist or its value is not an integer.
func (c *Config) Int(section, key string, fallback int) int {
	k, exists := c.key(section, key)
	if !exists {
		return fallback
	}

	i, err := k.Int()
	if err != nil {
		return fallback
	}

	return i
}

// Sections returns the names of all sections with at least one key in the
// order they appear in the file.
func (c *Config) Sections() []string {
	if c == nil || c.file == nil {
		return nil
	}

	var names []string

	for _, sec := range c.file.Sections() {
		if len(sec.Keys()) == 0 {
			continue
		}

		names = append(names, sec.Name())
	}

	return names
}

// Keys returns the key names of the given section in the order they appear in
// the file.
func (c *Config) Keys(section string) []string {
	if c == nil || c.file == nil {
		return nil
	}

	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil
	}

	return sec.KeyStrings()
}

// ParseBool parses a boolean word as accepted by [Config.Bool]. Unlike
// [ini.Key.Bool] any case is accepted, so "yEs" is true.
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	default:
		return false, false
	}
}
