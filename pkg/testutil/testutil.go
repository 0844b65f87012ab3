package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Tree describes a fixture file tree: relative path -> content.
// Keys ending in "/" create empty directories.
type Tree map[string]string

// CreateTree writes tree under root on the real filesystem and returns root.
func CreateTree(t *testing.T, root string, tree Tree) string {
	t.Helper()

	for rel, content := range tree {
		if strings.HasSuffix(rel, "/") {
			CreateDir(t, root, rel)
			continue
		}
		CreateFile(t, root, rel, content)
	}
	return root
}

// AddTree writes tree under root into the memory filesystem
func (m *MemoryFS) AddTree(t *testing.T, root string, tree Tree) *MemoryFS {
	t.Helper()

	if err := m.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}
	for rel, content := range tree {
		path := filepath.Join(root, rel)
		var err error
		if strings.HasSuffix(rel, "/") {
			err = m.MkdirAll(path, 0755)
		} else {
			err = m.WriteFile(path, []byte(content), 0644)
		}
		if err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
	}
	return m
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// CreateSymlink creates a symbolic link pointing to target.
// It fails the test if the symlink cannot be created.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	// Create parent directory for the link if needed
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// SkipOnWindows skips tests that rely on POSIX symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}
}
