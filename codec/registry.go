package codec

import (
	"github.com/go-e57/e57fmt/compress"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// Name is a codec-name string as stored in a field's entry of a
// CompressedVector's codecs Vector.
type Name string

const (
	Bitpack     Name = "bitpack"
	ZstdBitpack Name = "zstd+bitpack"
	LZ4Bitpack  Name = "lz4+bitpack"
	S2Bitpack   Name = "s2+bitpack"
)

var byName = map[Name]format.CompressionType{
	Bitpack:     format.CompressionNone,
	ZstdBitpack: format.CompressionZstd,
	LZ4Bitpack:  format.CompressionLZ4,
	S2Bitpack:   format.CompressionS2,
}

// Lookup resolves a codec-name string to the compress.Codec that wraps the
// bitpack-encoded bytestream for fields using it. An empty name resolves to
// Bitpack (no compression), matching spec.md's "default is CompressionNone."
func Lookup(name Name) (compress.Codec, error) {
	if name == "" {
		name = Bitpack
	}

	ct, ok := byName[name]
	if !ok {
		return nil, errs.New(errs.KindInternalError, "unknown codec name %q", name)
	}

	return compress.GetCodec(ct)
}

// Compress wraps payload, the bitpack-encoded bytestream for one field of
// one data packet, with the compressor named name.
func Compress(name Name, payload []byte) ([]byte, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return c.Compress(payload)
}

// Decompress reverses Compress.
func Decompress(name Name, payload []byte) ([]byte, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return c.Decompress(payload)
}
