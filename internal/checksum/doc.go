// Package checksum derives content package identifiers.
//
// A package directory is named after the MD5 hex digest of the package URL.
// Two digests are available:
//
//   - Raw checksum: digest of the exact bytes
//   - Normalized checksum: digest after trimming surrounding whitespace
//
// # Example Usage
//
//	id := checksum.New().CalculateNormalized([]byte("http://example.com/"))
//	dir := filepath.Join(root, id)
//
// # Thread Safety
//
// MD5 is safe for concurrent use by multiple goroutines.
package checksum
