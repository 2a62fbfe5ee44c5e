package node

import "github.com/go-e57/e57fmt/format"

// nodeID indexes into a File's arena. -1 means "no node" (unset parent,
// unset prototype, etc.).
type nodeID int32

const noID nodeID = -1

// childEntry pairs a contained node's arena id with its key (element name
// or, for Vector children, decimal index string) inside the parent.
type childEntry struct {
	id  nodeID
	key string
}

// structureData holds a Structure's ordered, uniquely-named children.
type structureData struct {
	order []childEntry
}

// vectorData holds a Vector's contiguous, index-keyed children and its
// homogeneity policy.
type vectorData struct {
	children      []nodeID
	heterogeneous bool
}

// compressedVectorData holds a CompressedVector's two schema children plus
// its runtime bookkeeping fields.
type compressedVectorData struct {
	prototype nodeID
	codecs    nodeID

	recordCount               uint64
	binarySectionLogicalStart uint64
}

// integerData backs an Integer leaf.
type integerData struct {
	value, min, max int64
}

// scaledIntegerData backs a ScaledInteger leaf; logical value = raw*scale+offset.
type scaledIntegerData struct {
	raw, min, max int64
	scale, offset float64
}

// floatData backs a Float leaf.
type floatData struct {
	value, min, max float64
	precision       format.Precision
}

// stringData backs a String leaf.
type stringData struct {
	value string
}

// blobData backs a Blob leaf: caller-managed opaque bytes in their own
// binary section, distinct from a CompressedVector's record section.
type blobData struct {
	byteCount                  uint64
	binarySectionLogicalStart  uint64
	binarySectionLogicalLength uint64
}

// nodeEntry is one arena slot. Exactly one variant-payload field is
// non-nil, selected by kind.
type nodeEntry struct {
	kind     format.NodeKind
	name     string // element name within parent ("" for the root and detached nodes)
	parentID nodeID
	attached bool

	structure *structureData
	vector    *vectorData
	cvector   *compressedVectorData
	integer   *integerData
	scaled    *scaledIntegerData
	float     *floatData
	str       *stringData
	blob      *blobData
}
