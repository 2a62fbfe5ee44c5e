package packet_test

import (
	"testing"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/packet"
	"github.com/stretchr/testify/require"
)

func TestDataPacket_RoundTrip(t *testing.T) {
	p := packet.DataPacket{
		Flags: 0x01,
		Bytestreams: [][]byte{
			{1, 2, 3},
			{},
			{4, 5, 6, 7, 8},
		},
	}

	data, err := p.Marshal(nil)
	require.NoError(t, err)
	require.Len(t, data, p.Size())

	got, err := packet.UnmarshalDataPacket(data)
	require.NoError(t, err)
	require.Equal(t, p.Flags, got.Flags)
	require.Equal(t, p.Bytestreams, got.Bytestreams)
}

func TestDataPacket_EmptyBytestreamsLegal(t *testing.T) {
	p := packet.DataPacket{Bytestreams: [][]byte{{}, {}}}

	data, err := p.Marshal(nil)
	require.NoError(t, err)

	got, err := packet.UnmarshalDataPacket(data)
	require.NoError(t, err)
	require.Len(t, got.Bytestreams, 2)
	require.Empty(t, got.Bytestreams[0])
}

func TestDataPacket_Marshal_RejectsOversize(t *testing.T) {
	p := packet.DataPacket{Bytestreams: [][]byte{make([]byte, packet.MaxPacketSize)}}

	_, err := p.Marshal(nil)
	require.Error(t, err)
}

func TestUnmarshalDataPacket_RejectsWrongType(t *testing.T) {
	p := packet.IndexPacket{}
	data, err := p.Marshal(nil)
	require.NoError(t, err)

	_, err = packet.UnmarshalDataPacket(data)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindBadFileSignature))
}

func TestUnmarshalDataPacket_RejectsOutOfBoundsStream(t *testing.T) {
	p := packet.DataPacket{Bytestreams: [][]byte{{1, 2, 3}}}
	data, err := p.Marshal(nil)
	require.NoError(t, err)

	_, err = packet.UnmarshalDataPacket(data[:len(data)-1])
	require.Error(t, err)
}
