// Package filesystem abstracts the storage that package metadata is read
// from and written to.
//
// Key interfaces:
//   - FileSystemProvider: reads, writes and lists package directories
//   - Directory: a directory that can be walked
//   - File: an individual file with metadata and content
//
// Implementations:
//   - OSFileSystem: the local disk
//   - MemoryFileSystem: in-memory storage for tests
package filesystem
