// Package blob implements random-access byte storage for a Blob node
// (spec.md §3.1): caller-managed opaque bytes in their own binary section,
// addressed by (binarySectionLogicalStart, byteCount). Unlike a
// CompressedVector section, a Blob carries no packet framing, seek index,
// or per-record structure of its own — it is a flat byte range, and reads
// and writes map directly onto PagedFile.ReadAt/WriteAt.
package blob
