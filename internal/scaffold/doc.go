// Package scaffold creates content package directories.
//
// A package directory is named after the MD5 digest of the package URL and
// holds the metadata document as info.json.
package scaffold
