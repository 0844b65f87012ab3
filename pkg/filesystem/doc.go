// Package filesystem provides filesystem implementations for resgather.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed adapter for tests and
// for callers that already hold an afero.Fs.
package filesystem
