package export

import (
	"fmt"
	"os"
	"path/filepath"
)

type FileWriter struct {
	dir string
}

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

func (w *FileWriter) Dir() string {
	return w.dir
}

// Write stores data under name in the output directory. The content is
// written to a temporary file first, readers never see a partial document.
// An existing file of the same name is replaced.
func (w *FileWriter) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %w", err)
	}

	tmp, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync temp file %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod temp file %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename temp file %w", err)
	}
	return path, nil
}
