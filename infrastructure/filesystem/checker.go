// Package filesystem holds small local-disk helpers shared by the adapters.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
)

// Checker answers file existence questions against the local disk
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists reports whether path is a regular file. A directory named like a
// lockfile does not count.
func (c *Checker) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ReadJSON decodes the JSON document at path into v
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
