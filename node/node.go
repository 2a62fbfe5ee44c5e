package node

import (
	"strconv"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// Node is a handle to one arena slot in a File. The zero Node is not
// valid; use File's Root/New*/Get to obtain one.
type Node struct {
	file *File
	id   nodeID
}

// IsZero reports whether n is the zero Node (no backing File).
func (n Node) IsZero() bool { return n.file == nil }

func (n Node) entry() *nodeEntry { return n.file.entry(n.id) }

// Kind returns the node's variant.
func (n Node) Kind() format.NodeKind { return n.entry().kind }

// Name returns the node's element name within its parent ("" if detached
// or root).
func (n Node) Name() string { return n.entry().name }

// Attached reports whether the node is reachable from its File's root.
func (n Node) Attached() bool { return n.entry().attached }

// Parent returns the node's container, or the zero Node and false if n is
// detached or is the root.
func (n Node) Parent() (Node, bool) {
	pid := n.entry().parentID
	if pid == noID {
		return Node{}, false
	}

	return Node{file: n.file, id: pid}, true
}

// --- scalar accessors ---

// IntegerValue returns the Integer leaf's value and bounds. Panics if n is
// not an Integer; callers should check Kind() first.
func (n Node) IntegerValue() (value, min, max int64) {
	d := n.entry().integer

	return d.value, d.min, d.max
}

// ScaledIntegerRaw returns the ScaledInteger leaf's raw stored value, bounds,
// scale and offset.
func (n Node) ScaledIntegerRaw() (raw, min, max int64, scale, offset float64) {
	d := n.entry().scaled

	return d.raw, d.min, d.max, d.scale, d.offset
}

// ScaledIntegerValue returns the ScaledInteger leaf's logical real value:
// raw*scale + offset.
func (n Node) ScaledIntegerValue() float64 {
	d := n.entry().scaled

	return float64(d.raw)*d.scale + d.offset
}

// FloatValue returns the Float leaf's value, bounds and precision.
func (n Node) FloatValue() (value, min, max float64, precision format.Precision) {
	d := n.entry().float

	return d.value, d.min, d.max, d.precision
}

// StringValue returns the String leaf's value.
func (n Node) StringValue() string {
	return n.entry().str.value
}

// BlobByteCount returns the Blob leaf's declared byte length.
func (n Node) BlobByteCount() uint64 {
	return n.entry().blob.byteCount
}

// ChildCount returns the number of children of a Structure or Vector node,
// or the fixed 2 for a CompressedVector (prototype, codecs). Returns 0 for
// scalar variants.
func (n Node) ChildCount() int {
	e := n.entry()
	switch e.kind {
	case format.KindStructure:
		return len(e.structure.order)
	case format.KindVector:
		return len(e.vector.children)
	case format.KindCompressedVector:
		return 2
	default:
		return 0
	}
}

// Children returns a Structure's or Vector's children in document order
// (the empty slice for scalar variants and CompressedVector, which exposes
// its fixed prototype/codecs pair through Prototype/Codecs instead).
func (n Node) Children() []Node {
	e := n.entry()
	switch e.kind {
	case format.KindStructure:
		out := make([]Node, len(e.structure.order))
		for i, c := range e.structure.order {
			out[i] = Node{file: n.file, id: c.id}
		}

		return out
	case format.KindVector:
		out := make([]Node, len(e.vector.children))
		for i, cid := range e.vector.children {
			out[i] = Node{file: n.file, id: cid}
		}

		return out
	default:
		return nil
	}
}

// IsHeterogeneous reports whether a Vector node allows children of mixed
// type. Meaningless (returns false) for non-Vector nodes.
func (n Node) IsHeterogeneous() bool {
	e := n.entry()
	if e.kind != format.KindVector {
		return false
	}

	return e.vector.heterogeneous
}

// BlobSectionLength returns a Blob leaf's binary section length in bytes.
func (n Node) BlobSectionLength() uint64 {
	return n.entry().blob.binarySectionLogicalLength
}

// SetBlobSectionLength records a Blob's binary section length, called once
// its bytes have been written.
func (n Node) SetBlobSectionLength(length uint64) error {
	e := n.entry()
	if e.kind != format.KindBlob {
		return errs.New(errs.KindInternalError, "SetBlobSectionLength on kind %s", e.kind)
	}
	e.blob.binarySectionLogicalLength = length

	return nil
}

// Child returns the Structure/Vector child at key (element name or decimal
// index), or false if absent.
func (n Node) Child(key string) (Node, bool) {
	e := n.entry()
	switch e.kind {
	case format.KindStructure:
		for _, c := range e.structure.order {
			if c.key == key {
				return Node{file: n.file, id: c.id}, true
			}
		}
	case format.KindVector:
		for i, cid := range e.vector.children {
			if strconv.Itoa(i) == key {
				return Node{file: n.file, id: cid}, true
			}
		}
	case format.KindCompressedVector:
		switch key {
		case "prototype":
			return Node{file: n.file, id: e.cvector.prototype}, true
		case "codecs":
			return Node{file: n.file, id: e.cvector.codecs}, true
		}
	}

	return Node{}, false
}

// Prototype returns a CompressedVector's prototype subtree.
func (n Node) Prototype() Node {
	return Node{file: n.file, id: n.entry().cvector.prototype}
}

// Codecs returns a CompressedVector's codecs Vector.
func (n Node) Codecs() Node {
	return Node{file: n.file, id: n.entry().cvector.codecs}
}

// RecordCount returns a CompressedVector's runtime record count.
func (n Node) RecordCount() uint64 {
	return n.entry().cvector.recordCount
}

// BinarySectionLogicalStart returns a CompressedVector's (or Blob's) data
// section offset.
func (n Node) BinarySectionLogicalStart() uint64 {
	e := n.entry()
	if e.kind == format.KindBlob {
		return e.blob.binarySectionLogicalStart
	}

	return e.cvector.binarySectionLogicalStart
}

// SetRecordCount is called by CompressedVectorWriter.close() to publish the
// final record count.
func (n Node) SetRecordCount(count uint64) error {
	e := n.entry()
	if e.kind != format.KindCompressedVector {
		return errs.New(errs.KindInternalError, "SetRecordCount on non-CompressedVector node %q", n.Name())
	}
	e.cvector.recordCount = count

	return nil
}

// SetBinarySectionLogicalStart records where a CompressedVector's or Blob's
// binary section begins.
func (n Node) SetBinarySectionLogicalStart(offset uint64) error {
	e := n.entry()
	switch e.kind {
	case format.KindCompressedVector:
		e.cvector.binarySectionLogicalStart = offset
	case format.KindBlob:
		e.blob.binarySectionLogicalStart = offset
	default:
		return errs.New(errs.KindInternalError, "SetBinarySectionLogicalStart on kind %s", e.kind)
	}

	return nil
}
