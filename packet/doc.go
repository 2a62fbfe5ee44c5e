// Package packet implements the three on-disk packet layouts that make up
// a CompressedVector binary section (spec.md §3.3/§4.4/§4.5): the
// SectionHeader that anchors a section, DataPacket (bytestream payloads
// for one chunk of records), IndexPacket (a seek-index tree node), and
// EmptyPacket (padding).
//
// All packets are capped at 64 KiB so that lengthMinus1 fits a uint16.
// Multi-byte fields are little-endian, matching the rest of the file
// format.
package packet
