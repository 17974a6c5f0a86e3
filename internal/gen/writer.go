package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file next to its record.
// It creates missing directories.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := os.MkdirAll(dirOf(file), dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// StaleFiles returns the paths of files whose content on disk differs from
// the generated content, including files that do not exist yet.
func StaleFiles(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		onDisk, err := os.ReadFile(file.Path())
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, file.Path())
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", file.Path(), err)
		case !bytes.Equal(onDisk, file.Content):
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}

func dirOf(file GeneratedFile) string {
	if file.Dir == "" {
		return "."
	}

	return filepath.Clean(file.Dir)
}
