// Package types defines the core types and interfaces shared by the
// resgather packages. This includes the FileRecord produced for every
// classified file, the Bucket enumeration, and the collaborator
// interfaces (FS, MarkupAnalyzer) the walker consumes.
package types
