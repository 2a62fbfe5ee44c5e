package pagedfile

import (
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
)

// Signature is the fixed 8-byte magic that opens every file (spec.md §3.3).
var Signature = [8]byte{'E', '5', '7', 'F', 'M', 'T', 0, 0}

// HeaderSize is the on-disk size of Header in bytes.
const HeaderSize = 8 + 4 + 4 + 8 + 8 + 8 + 4

// Header is the fixed file header: 8-byte signature, major/minor version,
// filePhysicalLength, xmlPhysicalOffset, xmlLogicalLength, pageSize. All
// multi-byte fields are little-endian on disk.
type Header struct {
	Signature          [8]byte
	Major              uint32
	Minor              uint32
	FilePhysicalLength uint64
	XMLPhysicalOffset  uint64
	XMLLogicalLength   uint64
	PageSize           uint32
}

// Marshal appends the header's on-disk bytes to dst.
func (h Header) Marshal(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, h.Signature[:]...)
	dst = engine.AppendUint32(dst, h.Major)
	dst = engine.AppendUint32(dst, h.Minor)
	dst = engine.AppendUint64(dst, h.FilePhysicalLength)
	dst = engine.AppendUint64(dst, h.XMLPhysicalOffset)
	dst = engine.AppendUint64(dst, h.XMLLogicalLength)
	dst = engine.AppendUint32(dst, h.PageSize)

	return dst
}

// UnmarshalHeader parses a Header from its fixed on-disk layout, failing
// with errs.KindBadFileSignature if the magic doesn't match.
func UnmarshalHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.New(errs.KindBadFileSignature, "header truncated: got %d bytes, want %d", len(data), HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()

	var h Header
	copy(h.Signature[:], data[0:8])
	if h.Signature != Signature {
		return Header{}, errs.New(errs.KindBadFileSignature, "unrecognized signature %q", h.Signature)
	}

	h.Major = engine.Uint32(data[8:12])
	h.Minor = engine.Uint32(data[12:16])
	h.FilePhysicalLength = engine.Uint64(data[16:24])
	h.XMLPhysicalOffset = engine.Uint64(data[24:32])
	h.XMLLogicalLength = engine.Uint64(data[32:40])
	h.PageSize = engine.Uint32(data[40:44])

	return h, nil
}
