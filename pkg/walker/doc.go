// Package walker implements the concurrent resource tree walk.
//
// Every entry of a directory is handled by its own goroutine. Files are
// classified, subdirectories are walked recursively, and each directory's
// partial Result is assembled only after all of its entries finish. Any
// filesystem failure cancels the remaining work and aborts the walk; the
// caller gets either a complete Result or an error.
//
// Relative paths, the keys of every bucket, are computed against the
// originally requested root (or a caller-supplied prefix) and always use
// forward slashes.
package walker
