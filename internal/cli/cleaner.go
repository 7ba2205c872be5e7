package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
)

// Cleaner removes generated either_gen.go files. It only deletes files that
// carry the generated-code header, so a hand-written file with the same name
// survives a clean.
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles removes generated files under the given directory
// arguments and returns the paths it deleted
func (c *Cleaner) CleanGeneratedFiles(args []string) ([]string, error) {
	var removed []string

	for _, arg := range args {
		dirs, err := c.expand(arg)
		if err != nil {
			return removed, err
		}
		for _, dir := range dirs {
			path := filepath.Join(dir, models.GeneratedFileName)
			deleted, err := c.removeGenerated(path)
			if err != nil {
				return removed, err
			}
			if deleted {
				removed = append(removed, path)
			}
		}
	}

	return removed, nil
}

// expand resolves one argument into candidate directories. Unlike the
// generation scanner this also visits directories whose only Go file is the
// generated one.
func (c *Cleaner) expand(arg string) ([]string, error) {
	if !strings.HasSuffix(arg, "/...") && arg != "..." {
		return []string{filepath.Clean(arg)}, nil
	}

	baseDir := strings.TrimSuffix(arg, "...")
	baseDir = strings.TrimSuffix(baseDir, "/")
	if baseDir == "" {
		baseDir = "."
	}

	var dirs []string
	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if path != baseDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
			return filepath.SkipDir
		}
		dirs = append(dirs, filepath.Clean(path))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to scan %s", baseDir)
	}
	return dirs, nil
}

// removeGenerated deletes path when it exists and is a generated file
func (c *Cleaner) removeGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read %s", path)
	}

	if !strings.HasPrefix(string(content), models.GeneratedFileHeader) {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to remove %s", path)
	}
	return true, nil
}
