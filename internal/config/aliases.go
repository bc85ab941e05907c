// Package config provides configuration file parsing for cooccur.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the cooccur config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/cooccur if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "cooccur"), nil
}

// AliasConfig maps raw item labels (as they appear in transaction data) to
// canonical item names. Point-of-sale exports frequently spell the same
// product several ways ("det", "detergent 2L"); aliases fold those into one
// label before any counting happens.
type AliasConfig struct {
	Aliases map[string]string
}

// LoadAliases reads the aliases file at {dir}/aliases and returns the parsed
// config. If the file does not exist, an empty config is returned without an
// error. Invalid or malformed lines are silently skipped.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	path := filepath.Join(dir, "aliases")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Expect exactly one "=" separating alias from canonical name.
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue // no "=" or "=" is first character — invalid, skip
		}

		alias := strings.TrimSpace(line[:idx])
		canonical := strings.TrimSpace(line[idx+1:])

		if alias == "" || canonical == "" {
			continue // either side is blank — invalid, skip
		}

		cfg.Aliases[alias] = canonical
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Canonical returns the canonical name for an item label, or the label
// itself when no alias is declared.
func (c *AliasConfig) Canonical(item string) string {
	if canonical, ok := c.Aliases[item]; ok {
		return canonical
	}
	return item
}
