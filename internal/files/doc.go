// Package files groups the file-related sub-packages.
//
//   - filesystem: storage abstraction (OS and in-memory) used to load and
//     save package metadata and to walk package directories
package files
