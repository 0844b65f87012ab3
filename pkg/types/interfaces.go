package types

import (
	"io/fs"
)

// FS is the filesystem capability the walker and the markup analyzer consume.
// Only read operations are required; nothing in resgather writes to disk.
type FS interface {
	// Stat follows symlinks
	Stat(name string) (fs.FileInfo, error)

	// Lstat does not follow symlinks. For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)

	// ReadDir lists a directory, discriminating files, directories and symlinks
	// through DirEntry.Type()
	ReadDir(name string) ([]fs.DirEntry, error)

	ReadFile(name string) ([]byte, error)
}

// MarkupAnalyzer finds the scripts a markup file references directly.
type MarkupAnalyzer interface {
	// Analyze reads the markup file at filePath and returns the relative
	// paths of the scripts it references. relDir is the file's directory
	// relative to the resource root ("" for the root itself) and is used to
	// resolve relative script sources.
	Analyze(filePath, relDir string) ([]string, error)
}

// MarkupAnalyzerFunc adapts a plain function to MarkupAnalyzer
type MarkupAnalyzerFunc func(filePath, relDir string) ([]string, error)

// Analyze calls f(filePath, relDir)
func (f MarkupAnalyzerFunc) Analyze(filePath, relDir string) ([]string, error) {
	return f(filePath, relDir)
}
