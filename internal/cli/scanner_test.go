package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eithergen/eithergen/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanDirectories_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "a.go"), "package a\n")
	writeFile(t, filepath.Join(root, "a", "b", "b.go"), "package b\n")
	writeFile(t, filepath.Join(root, "empty", "notes.txt"), "no go here\n")
	writeFile(t, filepath.Join(root, ".hidden", "h.go"), "package h\n")
	writeFile(t, filepath.Join(root, "vendor", "v.go"), "package v\n")
	writeFile(t, filepath.Join(root, "testdata", "td.go"), "package td\n")
	writeFile(t, filepath.Join(root, "_skip", "s.go"), "package s\n")

	dirs, err := NewDirectoryScanner().ScanDirectories([]string{root + "/..."})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
	}, dirs)
}

func TestScanDirectories_SingleDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg.go"), "package pkg\n")

	dirs, err := NewDirectoryScanner().ScanDirectories([]string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean(root)}, dirs)
}

func TestScanDirectories_SkipsTestOnlyAndGeneratedOnlyDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "testonly", "x_test.go"), "package x\n")
	writeFile(t, filepath.Join(root, "genonly", models.GeneratedFileName), "package g\n")
	writeFile(t, filepath.Join(root, "real", "r.go"), "package r\n")

	dirs, err := NewDirectoryScanner().ScanDirectories([]string{root + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real")}, dirs)
}

func TestScanDirectories_Deduplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg.go"), "package pkg\n")

	dirs, err := NewDirectoryScanner().ScanDirectories([]string{root, root + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean(root)}, dirs)
}

func TestScanDirectories_MissingDirectory(t *testing.T) {
	_, err := NewDirectoryScanner().ScanDirectories([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}
