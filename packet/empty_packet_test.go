package packet_test

import (
	"testing"

	"github.com/go-e57/e57fmt/packet"
	"github.com/stretchr/testify/require"
)

func TestEmptyPacket_RoundTrip(t *testing.T) {
	p := packet.EmptyPacket{Length: 512}

	data, err := p.Marshal(nil)
	require.NoError(t, err)
	require.Len(t, data, 512)

	got, err := packet.UnmarshalEmptyPacket(data)
	require.NoError(t, err)
	require.Equal(t, p.Length, got.Length)
}

func TestEmptyPacket_Marshal_RejectsTooSmall(t *testing.T) {
	p := packet.EmptyPacket{Length: 2}

	_, err := p.Marshal(nil)
	require.Error(t, err)
}
