// Package hash provides the xxHash64 identifiers used for variable names and
// result-file fingerprints.
package hash

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// NormalizeName returns the canonical form of a record variable name: the
// fixed-width padding trimmed and case folded, so "  STREAM LEAKAGE" and
// "stream leakage" hash to the same id.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Fingerprint identifies one version of a file on disk by path, size and
// modification time.
func Fingerprint(path string, size int64, modUnixNano int64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(size, 10))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(modUnixNano, 10))

	return d.Sum64()
}
