package packet_test

import (
	"testing"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/packet"
	"github.com/stretchr/testify/require"
)

func TestIndexPacket_RoundTrip(t *testing.T) {
	p := packet.IndexPacket{
		Flags:      0,
		IndexLevel: 1,
		Entries: []packet.IndexEntry{
			{ChunkRecordNumber: 0, ChunkPhysicalOffset: 4096},
			{ChunkRecordNumber: 1000, ChunkPhysicalOffset: 65536},
		},
	}

	data, err := p.Marshal(nil)
	require.NoError(t, err)
	require.Len(t, data, p.Size())

	got, err := packet.UnmarshalIndexPacket(data)
	require.NoError(t, err)
	require.Equal(t, p.IndexLevel, got.IndexLevel)
	require.Equal(t, p.Entries, got.Entries)
}

func TestIndexPacket_Marshal_RejectsTooManyEntries(t *testing.T) {
	p := packet.IndexPacket{Entries: make([]packet.IndexEntry, packet.MaxIndexEntries+1)}

	_, err := p.Marshal(nil)
	require.Error(t, err)
}

func TestUnmarshalIndexPacket_RejectsWrongType(t *testing.T) {
	p := packet.EmptyPacket{Length: 20}
	data, err := p.Marshal(nil)
	require.NoError(t, err)

	_, err = packet.UnmarshalIndexPacket(data)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindBadFileSignature))
}
