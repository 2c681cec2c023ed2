package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteDocument places an export artifact in dir under its deterministic
// filename. The write is atomic so a crash never leaves a half file.
func WriteDocument(dir string, doc Document) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}
	path := filepath.Join(dir, doc.Filename)
	if err := atomic.WriteFile(path, bytes.NewReader(doc.Content)); err != nil {
		return "", fmt.Errorf("write export %s: %w", doc.Filename, err)
	}
	return path, nil
}
