// Package pagedfile implements the PagedFile collaborator that spec.md
// treats as an external interface: checksummed read/write at logical byte
// offsets, backed by a fixed-size paging scheme over a random-access
// store (an *os.File in production, an in-memory buffer in tests).
//
// Layout. The backing store is divided into fixed-size physical pages.
// Each page holds PageSize-8 bytes of logical content followed by an
// 8-byte xxHash64 trailer over that content. Logical offsets address the
// content bytes only, transparently skipping the trailers; physical
// offsets address the raw store including them. The file header and its
// own fields (signature, version, section offsets) live in physical page 0
// ahead of the first logical page.
//
// Checksum verification on read is governed by a ReadChecksumPolicy:
// never, sparse (verify every Nth page), or all.
package pagedfile
