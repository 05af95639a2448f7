// Package config loads INI-style key/value files into sections.
//
// Grammar:
//
//	# comment            ; comment
//	key = value          (keys before any header live in section "")
//	[section]
//	key: value           ("key = value" and "key: value" are equivalent)
//	name = "quoted"      (one pair of matching quotes is stripped)
//
// Section and key names are case-sensitive. A later duplicate key
// overwrites the earlier one. Any malformed line fails the whole load; no
// partially populated Config is ever returned.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrFileNotFound is returned by Load when the path does not exist.
	ErrFileNotFound = errors.New("config: file not found")
	// ErrParse is returned for malformed input; the message names the line.
	ErrParse = errors.New("config: parse error")
)

// Config holds parsed sections. It is read-only after Load/Parse and safe
// for concurrent reads.
type Config struct {
	sections map[string]map[string]string
	order    []string
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses INI text.
func Parse(text string) (*Config, error) {
	return parse(strings.NewReader(text))
}

func parse(r io.Reader) (*Config, error) {
	cfg := &Config{sections: make(map[string]map[string]string)}
	section := ""

	sc := bufio.NewScanner(r)
	lineno := 1
	for ; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if lineno == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case line == "", line[0] == '#', line[0] == ';':
			continue

		case line[0] == '[':
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%w: line %d: unterminated section header", ErrParse, lineno)
			}
			section = strings.TrimSpace(line[1 : len(line)-1])
			if section == "" {
				return nil, fmt.Errorf("%w: line %d: empty section name", ErrParse, lineno)
			}
			cfg.section(section)

		default:
			i := strings.IndexAny(line, "=:")
			if i < 0 {
				return nil, fmt.Errorf("%w: line %d: expected key = value", ErrParse, lineno)
			}
			key := strings.TrimSpace(line[:i])
			if key == "" {
				return nil, fmt.Errorf("%w: line %d: empty key", ErrParse, lineno)
			}
			cfg.section(section)[key] = unquote(strings.TrimSpace(line[i+1:]))
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: line too long", ErrParse, lineno)
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return cfg, nil
}

// section returns the named section, creating it on first use.
func (c *Config) section(name string) map[string]string {
	s, ok := c.sections[name]
	if !ok {
		s = make(map[string]string)
		c.sections[name] = s
		c.order = append(c.order, name)
	}
	return s
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Lookup returns the raw value and whether the key exists.
func (c *Config) Lookup(section, key string) (string, bool) {
	v, ok := c.sections[section][key]
	return v, ok
}

// String returns the value or def if the key is missing.
func (c *Config) String(section, key, def string) string {
	if v, ok := c.Lookup(section, key); ok {
		return v
	}
	return def
}

// Int returns the value parsed with Go integer literal syntax (0x, 0o,
// 0b prefixes and _ separators accepted),
// or def if the key is missing or not an integer.
func (c *Config) Int(section, key string, def int) int {
	v, ok := c.Lookup(section, key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 0, strconv.IntSize)
	if err != nil {
		return def
	}
	return int(n)
}

// Float returns the value parsed as a float64, or def.
func (c *Config) Float(section, key string, def float64) float64 {
	v, ok := c.Lookup(section, key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the value as a bool, or def. Accepts true/false, yes/no,
// on/off and 1/0, case-insensitively.
func (c *Config) Bool(section, key string, def bool) bool {
	v, ok := c.Lookup(section, key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return def
}

// HasKey reports whether section contains key.
func (c *Config) HasKey(section, key string) bool {
	_, ok := c.Lookup(section, key)
	return ok
}

// HasSection reports whether section appeared in the input.
func (c *Config) HasSection(section string) bool {
	_, ok := c.sections[section]
	return ok
}

// Sections returns section names in the order they first appeared.
func (c *Config) Sections() []string {
	return append([]string(nil), c.order...)
}
