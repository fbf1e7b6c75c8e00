// Package writer persists generated questions and answers as plain text.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteLines writes one value per line to path, creating parent directories
// as needed.
func WriteLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
