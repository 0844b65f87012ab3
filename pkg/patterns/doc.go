// Package patterns holds the precompiled filename matchers used to
// classify resources: app icons (derived from the configured icon name),
// launch images, launch logos and the "inside a .bundle directory" test,
// plus the default directory and file ignore patterns.
//
// A Set is immutable once built and safe to share between goroutines.
package patterns
