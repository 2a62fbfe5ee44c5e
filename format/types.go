// Package format defines the small closed enumerations shared across the
// node, codec, and packet layers: node variant tags, floating point
// precision, the page checksum policy, and per-field compression selection.
package format

// NodeKind identifies which of the eight Node variants a node is.
type NodeKind uint8

const (
	KindStructure NodeKind = iota + 1
	KindVector
	KindCompressedVector
	KindInteger
	KindScaledInteger
	KindFloat
	KindString
	KindBlob
)

func (k NodeKind) String() string {
	switch k {
	case KindStructure:
		return "Structure"
	case KindVector:
		return "Vector"
	case KindCompressedVector:
		return "CompressedVector"
	case KindInteger:
		return "Integer"
	case KindScaledInteger:
		return "ScaledInteger"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBlob:
		return "Blob"
	default:
		return "Unknown"
	}
}

// IsContainer reports whether the kind holds children (Structure, Vector,
// CompressedVector).
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindStructure, KindVector, KindCompressedVector:
		return true
	default:
		return false
	}
}

// Precision is the floating point width of a Float node.
type Precision uint8

const (
	Single Precision = iota + 1
	Double
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// ByteSize returns the on-disk width of a value at this precision.
func (p Precision) ByteSize() int {
	if p == Single {
		return 4
	}

	return 8
}

// PacketType identifies which of the three on-disk packet layouts a packet
// uses (spec.md §3.3).
type PacketType uint8

const (
	PacketData PacketType = iota + 1
	PacketIndex
	PacketEmpty
)

func (t PacketType) String() string {
	switch t {
	case PacketData:
		return "Data"
	case PacketIndex:
		return "Index"
	case PacketEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// ReadChecksumPolicy governs how aggressively the PagedFile collaborator
// verifies per-page trailer checksums on read.
type ReadChecksumPolicy uint8

const (
	// ChecksumNever skips all checksum verification (fastest, least safe).
	ChecksumNever ReadChecksumPolicy = iota + 1
	// ChecksumSparse verifies a subset of pages (every Nth page).
	ChecksumSparse
	// ChecksumAll verifies every page read (slowest, safest).
	ChecksumAll
)

func (p ReadChecksumPolicy) String() string {
	switch p {
	case ChecksumNever:
		return "never"
	case ChecksumSparse:
		return "sparse"
	case ChecksumAll:
		return "all"
	default:
		return "unknown"
	}
}

// CompressionType selects the optional bytestream compressor applied on top
// of the default bitpack/float/string codec for a field, chosen per leaf by
// the caller through vector.WithCodec (spec §9, "Codec extensibility"). The
// default (no WithCodec option for the leaf) is CompressionNone.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota + 1
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
