package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Calculator computes content package identifiers.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum after trimming surrounding
	// whitespace, so a URL copied with a trailing newline keeps its identity.
	CalculateNormalized(content []byte) string
}

// MD5 implements Calculator with lowercase hex MD5 digests, the naming scheme
// used for package directories on the receiver.
//
// MD5 is a zero-size type and is safe for concurrent use by multiple goroutines.
type MD5 struct{}

// New creates a new MD5 based calculator.
func New() MD5 {
	return MD5{}
}

// CalculateRaw computes MD5 of raw content.
func (c MD5) CalculateRaw(content []byte) string {
	hash := md5.Sum(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes MD5 of the trimmed content.
func (c MD5) CalculateNormalized(content []byte) string {
	return c.CalculateRaw([]byte(strings.TrimSpace(string(content))))
}
