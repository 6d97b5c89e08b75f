package generator

import (
	"bytes"
	"os"
	"path/filepath"
)

// writeFile writes content to path, creating parent directories. It reports
// false without touching the file when the content is unchanged.
func writeFile(path string, content []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
