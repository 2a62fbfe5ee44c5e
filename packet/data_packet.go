package packet

import (
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// MaxPacketSize is the largest on-disk size (in bytes) any packet may
// occupy; lengthMinus1 is a uint16 so the packet's total length fits in
// 16 bits (spec.md §3.3).
const MaxPacketSize = 64 * 1024

// dataPacketHeaderSize is packetType + flags + lengthMinus1 + bytestreamCount.
const dataPacketHeaderSize = 1 + 1 + 2 + 2

// DataPacket holds one chunk of records' worth of per-bytestream payloads.
// Bytestreams are concatenated in prototype-leaf order; every bytestream
// contributes an entry even if its payload for this packet is empty.
type DataPacket struct {
	Flags       uint8
	Bytestreams [][]byte
}

// Size returns the packet's total on-disk size in bytes.
func (p DataPacket) Size() int {
	n := dataPacketHeaderSize
	for _, b := range p.Bytestreams {
		n += 2 + len(b)
	}

	return n
}

// Marshal appends the packet's on-disk bytes to dst, failing if the result
// would exceed MaxPacketSize or any single bytestream exceeds 65535 bytes.
func (p DataPacket) Marshal(dst []byte) ([]byte, error) {
	size := p.Size()
	if size > MaxPacketSize {
		return nil, errs.New(errs.KindInternalError, "data packet size %d exceeds %d byte limit", size, MaxPacketSize)
	}
	if len(p.Bytestreams) > 0xFFFF {
		return nil, errs.New(errs.KindInternalError, "data packet bytestream count %d exceeds uint16 range", len(p.Bytestreams))
	}

	engine := endian.GetLittleEndianEngine()

	dst = append(dst, uint8(format.PacketData), p.Flags)
	dst = engine.AppendUint16(dst, uint16(size-1)) //nolint:gosec
	dst = engine.AppendUint16(dst, uint16(len(p.Bytestreams))) //nolint:gosec

	for _, b := range p.Bytestreams {
		if len(b) > 0xFFFF {
			return nil, errs.New(errs.KindInternalError, "bytestream payload length %d exceeds uint16 range", len(b))
		}
		dst = engine.AppendUint16(dst, uint16(len(b))) //nolint:gosec
		dst = append(dst, b...)
	}

	return dst, nil
}

// UnmarshalDataPacket parses a DataPacket from its fixed+variable on-disk
// layout. data must contain at least the full packet (Size() bytes); any
// trailing bytes are ignored by the caller.
func UnmarshalDataPacket(data []byte) (DataPacket, error) {
	if len(data) < dataPacketHeaderSize {
		return DataPacket{}, errs.New(errs.KindBadFileSignature, "data packet truncated: got %d bytes, want at least %d", len(data), dataPacketHeaderSize)
	}
	if format.PacketType(data[0]) != format.PacketData {
		return DataPacket{}, errs.New(errs.KindBadFileSignature, "not a data packet: type %d", data[0])
	}

	engine := endian.GetLittleEndianEngine()

	p := DataPacket{Flags: data[1]}
	lengthMinus1 := engine.Uint16(data[2:4])
	streamCount := int(engine.Uint16(data[4:6]))
	total := int(lengthMinus1) + 1

	if total > len(data) {
		return DataPacket{}, errs.New(errs.KindBadFileSignature, "data packet declares length %d, only %d bytes available", total, len(data))
	}

	pos := dataPacketHeaderSize
	p.Bytestreams = make([][]byte, 0, streamCount)
	for i := 0; i < streamCount; i++ {
		if pos+2 > total {
			return DataPacket{}, errs.New(errs.KindBadFileSignature, "data packet bytestream %d length prefix out of bounds", i)
		}
		streamLen := int(engine.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+streamLen > total {
			return DataPacket{}, errs.New(errs.KindBadFileSignature, "data packet bytestream %d payload out of bounds", i)
		}
		p.Bytestreams = append(p.Bytestreams, data[pos:pos+streamLen])
		pos += streamLen
	}

	return p, nil
}
