package packet

import (
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// emptyPacketHeaderSize is packetType + 1 reserved byte + lengthMinus1.
const emptyPacketHeaderSize = 1 + 1 + 2

// EmptyPacket pads a section out to an alignment boundary or to fill a
// gap left by an earlier allocation. It carries no payload.
type EmptyPacket struct {
	Length int
}

// Marshal appends the packet's on-disk bytes to dst: a header followed by
// Length-emptyPacketHeaderSize zero bytes.
func (p EmptyPacket) Marshal(dst []byte) ([]byte, error) {
	if p.Length < emptyPacketHeaderSize {
		return nil, errs.New(errs.KindInternalError, "empty packet length %d smaller than header size %d", p.Length, emptyPacketHeaderSize)
	}
	if p.Length > MaxPacketSize {
		return nil, errs.New(errs.KindInternalError, "empty packet length %d exceeds %d byte limit", p.Length, MaxPacketSize)
	}

	engine := endian.GetLittleEndianEngine()

	dst = append(dst, uint8(format.PacketEmpty), 0)
	dst = engine.AppendUint16(dst, uint16(p.Length-1)) //nolint:gosec
	dst = append(dst, make([]byte, p.Length-emptyPacketHeaderSize)...)

	return dst, nil
}

// UnmarshalEmptyPacket parses an EmptyPacket's header, recovering its
// total on-disk length without inspecting the padding bytes.
func UnmarshalEmptyPacket(data []byte) (EmptyPacket, error) {
	if len(data) < emptyPacketHeaderSize {
		return EmptyPacket{}, errs.New(errs.KindBadFileSignature, "empty packet truncated: got %d bytes, want at least %d", len(data), emptyPacketHeaderSize)
	}
	if format.PacketType(data[0]) != format.PacketEmpty {
		return EmptyPacket{}, errs.New(errs.KindBadFileSignature, "not an empty packet: type %d", data[0])
	}

	engine := endian.GetLittleEndianEngine()
	lengthMinus1 := engine.Uint16(data[2:4])

	return EmptyPacket{Length: int(lengthMinus1) + 1}, nil
}
