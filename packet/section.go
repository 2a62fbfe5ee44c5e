package packet

import (
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
)

// SectionID identifies the kind of binary section a SectionHeader anchors.
// CompressedVector sections are the only kind this format defines.
const SectionIDCompressedVector = 1

// SectionHeaderSize is the fixed on-disk size of a SectionHeader.
const SectionHeaderSize = 1 + 7 + 8 + 8 + 8

// SectionHeader anchors a CompressedVector's binary section: its logical
// length and the physical offsets of its first data packet and its
// top-level (root) index packet.
type SectionHeader struct {
	SectionID            uint8
	SectionLogicalLength uint64
	DataPhysicalOffset   uint64
	IndexPhysicalOffset  uint64
}

// Marshal appends the section header's on-disk bytes to dst.
func (h SectionHeader) Marshal(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, h.SectionID)
	dst = append(dst, make([]byte, 7)...)
	dst = engine.AppendUint64(dst, h.SectionLogicalLength)
	dst = engine.AppendUint64(dst, h.DataPhysicalOffset)
	dst = engine.AppendUint64(dst, h.IndexPhysicalOffset)

	return dst
}

// UnmarshalSectionHeader parses a SectionHeader from its fixed on-disk
// layout.
func UnmarshalSectionHeader(data []byte) (SectionHeader, error) {
	if len(data) < SectionHeaderSize {
		return SectionHeader{}, errs.New(errs.KindBadFileSignature, "section header truncated: got %d bytes, want %d", len(data), SectionHeaderSize)
	}

	engine := endian.GetLittleEndianEngine()

	var h SectionHeader
	h.SectionID = data[0]
	h.SectionLogicalLength = engine.Uint64(data[8:16])
	h.DataPhysicalOffset = engine.Uint64(data[16:24])
	h.IndexPhysicalOffset = engine.Uint64(data[24:32])

	if h.SectionID != SectionIDCompressedVector {
		return SectionHeader{}, errs.New(errs.KindBadFileSignature, "unrecognized section id %d", h.SectionID)
	}

	return h, nil
}
