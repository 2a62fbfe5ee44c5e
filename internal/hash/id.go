// Package hash wraps xxHash64 for the container's page-level integrity
// checks. The format spec treats the checksummed paged file as an external
// collaborator and only mandates "read/write at logical offsets with
// integrity verification" (spec §1); xxHash64 is the concrete algorithm
// this implementation picks for that trailer, chosen for its speed on the
// small (<=64KiB) page payloads the pagedfile package checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum64 computes the xxHash64 of a page's payload bytes.
func Checksum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
