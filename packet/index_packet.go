package packet

import (
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// MaxIndexEntries is the maximum number of entries a single IndexPacket may
// hold (spec.md §3.3).
const MaxIndexEntries = 2048

// indexPacketHeaderSize is packetType + flags + lengthMinus1 + entryCount +
// indexLevel + 9 reserved bytes.
const indexPacketHeaderSize = 1 + 1 + 2 + 2 + 1 + 9

// indexEntrySize is one (chunkRecordNumber, chunkPhysicalOffset) pair.
const indexEntrySize = 8 + 8

// IndexEntry points a seek index level at one child: the first record
// number covered by the chunk, and that chunk's physical offset. At
// indexLevel 0 the chunk is a data packet; at higher levels it is another
// index packet.
type IndexEntry struct {
	ChunkRecordNumber   uint64
	ChunkPhysicalOffset uint64
}

// IndexPacket is one node of the seek-index tree covering a
// CompressedVector's data packets (spec.md §4.4 "Seek index build").
type IndexPacket struct {
	Flags      uint8
	IndexLevel uint8
	Entries    []IndexEntry
}

// Size returns the packet's total on-disk size in bytes.
func (p IndexPacket) Size() int {
	return indexPacketHeaderSize + len(p.Entries)*indexEntrySize
}

// Marshal appends the packet's on-disk bytes to dst.
func (p IndexPacket) Marshal(dst []byte) ([]byte, error) {
	if len(p.Entries) > MaxIndexEntries {
		return nil, errs.New(errs.KindInternalError, "index packet entry count %d exceeds %d limit", len(p.Entries), MaxIndexEntries)
	}
	size := p.Size()
	if size > MaxPacketSize {
		return nil, errs.New(errs.KindInternalError, "index packet size %d exceeds %d byte limit", size, MaxPacketSize)
	}

	engine := endian.GetLittleEndianEngine()

	dst = append(dst, uint8(format.PacketIndex), p.Flags)
	dst = engine.AppendUint16(dst, uint16(size-1)) //nolint:gosec
	dst = engine.AppendUint16(dst, uint16(len(p.Entries))) //nolint:gosec
	dst = append(dst, p.IndexLevel)
	dst = append(dst, make([]byte, 9)...)

	for _, e := range p.Entries {
		dst = engine.AppendUint64(dst, e.ChunkRecordNumber)
		dst = engine.AppendUint64(dst, e.ChunkPhysicalOffset)
	}

	return dst, nil
}

// UnmarshalIndexPacket parses an IndexPacket from its fixed+variable
// on-disk layout.
func UnmarshalIndexPacket(data []byte) (IndexPacket, error) {
	if len(data) < indexPacketHeaderSize {
		return IndexPacket{}, errs.New(errs.KindBadFileSignature, "index packet truncated: got %d bytes, want at least %d", len(data), indexPacketHeaderSize)
	}
	if format.PacketType(data[0]) != format.PacketIndex {
		return IndexPacket{}, errs.New(errs.KindBadFileSignature, "not an index packet: type %d", data[0])
	}

	engine := endian.GetLittleEndianEngine()

	p := IndexPacket{Flags: data[1]}
	lengthMinus1 := engine.Uint16(data[2:4])
	entryCount := int(engine.Uint16(data[4:6]))
	p.IndexLevel = data[6]
	total := int(lengthMinus1) + 1

	if total > len(data) {
		return IndexPacket{}, errs.New(errs.KindBadFileSignature, "index packet declares length %d, only %d bytes available", total, len(data))
	}
	if entryCount > MaxIndexEntries {
		return IndexPacket{}, errs.New(errs.KindBadFileSignature, "index packet entry count %d exceeds %d limit", entryCount, MaxIndexEntries)
	}

	pos := indexPacketHeaderSize
	p.Entries = make([]IndexEntry, 0, entryCount)
	for i := 0; i < entryCount; i++ {
		if pos+indexEntrySize > total {
			return IndexPacket{}, errs.New(errs.KindBadFileSignature, "index packet entry %d out of bounds", i)
		}
		p.Entries = append(p.Entries, IndexEntry{
			ChunkRecordNumber:   engine.Uint64(data[pos : pos+8]),
			ChunkPhysicalOffset: engine.Uint64(data[pos+8 : pos+16]),
		})
		pos += indexEntrySize
	}

	return p, nil
}
