package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxLinkHops bounds symlink resolution, as the OS does with ELOOP
const maxLinkHops = 40

// MemoryFS implements types.FS with in-memory storage.
// It is safe for concurrent use.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection
	errorPaths map[string]error

	// Statistics
	readDirCount int
	statCount    int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
	}
}

// normalizePath converts a path to absolute, slash-separated form
func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// resolve walks path component by component, following symlinks on every
// intermediate component and, when followLast is set, on the final one.
// It returns the node and the resolved path.
func (m *MemoryFS) resolve(op, path string, followLast bool) (*fileNode, string, error) {
	path = normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: err}
	}

	hops := 0
	current := "/"
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if part == "" {
			continue
		}
		next := current + part
		if current != "/" {
			next = current + "/" + part
		}

		node, ok := m.files[next]
		if !ok {
			return nil, "", &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
		}

		last := i == len(parts)-1
		if node.isLink && (!last || followLast) {
			hops++
			if hops > maxLinkHops {
				return nil, "", &fs.PathError{Op: op, Path: path, Err: errors.New("too many levels of symbolic links")}
			}
			target := node.linkDest
			if !strings.HasPrefix(filepath.ToSlash(target), "/") {
				target = filepath.Join(current, target)
			}
			target = normalizePath(target)
			// Restart from the link target with the remaining components
			rest := append(strings.Split(strings.TrimPrefix(target, "/"), "/"), parts[i+1:]...)
			parts = rest
			i = -1
			current = "/"
			continue
		}

		if !last && !node.isDir {
			return nil, "", &fs.PathError{Op: op, Path: path, Err: errors.New("not a directory")}
		}
		current = next
	}

	resolved := current
	if err, ok := m.errorPaths[resolved]; ok {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: err}
	}
	return m.files[resolved], resolved, nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	m.statCount++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.resolve("stat", name, true)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.resolve("lstat", name, false)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// ReadDir reads a directory and returns its entries sorted by name.
// Entry types are not followed: a symlink is reported as a symlink.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	m.readDirCount++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.resolve("readdirent", name, true)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// ReadFile reads the entire file content, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.resolve("open", name, true)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	parent, err := m.mkdirAll(filepath.ToSlash(filepath.Dir(path)), 0755)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[node.name] = node
	m.files[path] = node
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.mkdirAll(normalizePath(path), perm)
	return err
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) (*fileNode, error) {
	current := "/"
	currentNode := m.files["/"]

	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			continue
		}
		next := current + part
		if current != "/" {
			next = current + "/" + part
		}

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return nil, &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}
		currentNode.children[part] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return currentNode, nil
}

// Symlink creates a symbolic link at link pointing to target
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := normalizePath(link)
	if _, exists := m.files[linkPath]; exists {
		return &fs.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}

	parent, err := m.mkdirAll(filepath.ToSlash(filepath.Dir(linkPath)), 0755)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:     filepath.Base(linkPath),
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	parent.children[node.name] = node
	m.files[linkPath] = node
	return nil
}

// AddSpecial creates a node that is neither a file nor a directory
// (a named pipe), for exercising the walker's skip path
func (m *MemoryFS) AddSpecial(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	parent, err := m.mkdirAll(filepath.ToSlash(filepath.Dir(path)), 0755)
	if err != nil {
		return err
	}
	node := &fileNode{name: filepath.Base(path), mode: 0644 | os.ModeNamedPipe, modTime: time.Now()}
	parent.children[node.name] = node
	m.files[path] = node
	return nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[normalizePath(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (readDirs, stats int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readDirCount, m.statCount
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
