// Package testutil provides utilities for testing resgather components.
//
// Key components:
//   - MemoryFS: in-memory types.FS with symlinks and per-path error
//     injection, for fast and isolated walker tests
//   - Tree / CreateTree: declarative fixture trees, in memory or on disk
//
// Tests that need real permission bits or OS symlink semantics use
// t.TempDir() with the on-disk helpers instead.
package testutil
