package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eithergen/eithergen/internal/errors"
	"github.com/eithergen/eithergen/internal/models"
)

// DirectoryScanner resolves the directory arguments of a run into the list
// of package directories to process. Arguments support Go-style "./..."
// suffixes for recursive scanning.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories expands the given arguments into directories that contain
// at least one non-test, non-generated Go file
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			result = append(result, dir)
		}
	}

	for _, rootDir := range rootDirs {
		if strings.HasSuffix(rootDir, "/...") || rootDir == "..." {
			baseDir := strings.TrimSuffix(rootDir, "...")
			baseDir = strings.TrimSuffix(baseDir, "/")
			if baseDir == "" {
				baseDir = "."
			}
			dirs, err := s.walk(baseDir)
			if err != nil {
				return nil, err
			}
			for _, dir := range dirs {
				add(dir)
			}
			continue
		}

		ok, err := s.hasGoFiles(rootDir)
		if err != nil {
			return nil, err
		}
		if ok {
			add(filepath.Clean(rootDir))
		}
	}

	sort.Strings(result)
	return result, nil
}

// walk collects every subdirectory with Go files, skipping hidden
// directories, vendor, and testdata
func (s *DirectoryScanner) walk(baseDir string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != baseDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}
		ok, err := s.hasGoFiles(path)
		if err != nil {
			return err
		}
		if ok {
			dirs = append(dirs, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to scan %s", baseDir)
	}
	return dirs, nil
}

// hasGoFiles reports whether a directory directly contains a Go source file
// worth parsing
func (s *DirectoryScanner) hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read directory %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == models.GeneratedFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}
