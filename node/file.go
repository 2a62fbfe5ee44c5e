package node

import (
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// File owns the metadata tree's arena, its root Structure, and the
// namespace registry. It is the File-level entity of §3.2: the on-disk
// bookkeeping (PagedFile handle, XML offsets) is layered on top by
// e57fmt.File, which pairs a *File with a pagedfile.PagedFile rather than
// duplicating the tree.
type File struct {
	name string

	arena  []nodeEntry
	rootID nodeID

	namespaces *namespaceRegistry
}

// New creates an empty File with a fresh, attached, empty root Structure.
func New(name string) *File {
	f := &File{
		name:       name,
		namespaces: newNamespaceRegistry(),
	}
	f.rootID = f.alloc(nodeEntry{
		kind:      format.KindStructure,
		parentID:  noID,
		attached:  true,
		structure: &structureData{},
	})

	return f
}

// Name returns the file name this tree was opened or created for.
func (f *File) Name() string { return f.name }

// Root returns the root Structure node.
func (f *File) Root() Node { return Node{file: f, id: f.rootID} }

// RegisterNamespace adds an extension namespace (prefix, uri) pair.
func (f *File) RegisterNamespace(prefix, uri string) error {
	return f.namespaces.Register(prefix, uri)
}

// ResolveNamespace returns the uri registered for prefix.
func (f *File) ResolveNamespace(prefix string) (string, bool) {
	return f.namespaces.Resolve(prefix)
}

// KnownNamespacePrefix reports whether prefix is registered (the empty
// prefix always counts as known).
func (f *File) KnownNamespacePrefix(prefix string) bool {
	return f.namespaces.KnownPrefix(prefix)
}

// NamespacePrefix returns the prefix registered for uri.
func (f *File) NamespacePrefix(uri string) (string, bool) {
	return f.namespaces.Prefix(uri)
}

// Namespaces returns the registered extension namespaces in registration
// order.
func (f *File) Namespaces() []Namespace {
	entries := f.namespaces.Entries()
	out := make([]Namespace, len(entries))
	for i, e := range entries {
		out[i] = Namespace{Prefix: e.prefix, URI: e.uri}
	}

	return out
}

// Namespace is one registered extension namespace, exposed read-only
// outside the package.
type Namespace struct {
	Prefix string
	URI    string
}

func (f *File) alloc(e nodeEntry) nodeID {
	f.arena = append(f.arena, e)

	return nodeID(len(f.arena) - 1)
}

func (f *File) entry(id nodeID) *nodeEntry {
	return &f.arena[id]
}

// --- detached node factories ---
//
// Each factory allocates a new arena slot with parentID unset and attached
// false. The node becomes part of the visible tree only once passed to
// Set or Append.

// NewStructure creates a detached, empty Structure node.
func (f *File) NewStructure() Node {
	id := f.alloc(nodeEntry{kind: format.KindStructure, parentID: noID, structure: &structureData{}})

	return Node{file: f, id: id}
}

// NewVector creates a detached, empty Vector node. heterogeneous disables
// the homogeneous type-equivalence check on Append.
func (f *File) NewVector(heterogeneous bool) Node {
	id := f.alloc(nodeEntry{kind: format.KindVector, parentID: noID, vector: &vectorData{heterogeneous: heterogeneous}})

	return Node{file: f, id: id}
}

// NewCompressedVector creates a detached CompressedVector node with the
// given prototype and codecs subtrees. Both must already belong to this
// File and be detached; they are attached as the CompressedVector's fixed
// schema children.
func (f *File) NewCompressedVector(prototype, codecs Node) (Node, error) {
	if prototype.file != f || codecs.file != f {
		return Node{}, errs.New(errs.KindInternalError, "prototype/codecs belong to a different File")
	}
	if prototype.entry().attached {
		return Node{}, errs.New(errs.KindAlreadySet, "prototype already attached")
	}
	if codecs.entry().attached {
		return Node{}, errs.New(errs.KindAlreadySet, "codecs already attached")
	}

	id := f.alloc(nodeEntry{
		kind:     format.KindCompressedVector,
		parentID: noID,
		cvector: &compressedVectorData{
			prototype: prototype.id,
			codecs:    codecs.id,
		},
	})

	prototype.entry().parentID = id
	prototype.entry().name = "prototype"
	codecs.entry().parentID = id
	codecs.entry().name = "codecs"

	return Node{file: f, id: id}, nil
}

// NewInteger creates a detached Integer leaf. min <= value <= max is the
// caller's responsibility; violating it is a programming error, not a
// recoverable one, since no wire bytes are involved yet.
func (f *File) NewInteger(value, min, max int64) Node {
	id := f.alloc(nodeEntry{kind: format.KindInteger, parentID: noID, integer: &integerData{value: value, min: min, max: max}})

	return Node{file: f, id: id}
}

// NewScaledInteger creates a detached ScaledInteger leaf from a raw stored
// value; its logical value is raw*scale + offset (see ScaledIntegerValue).
func (f *File) NewScaledInteger(raw, min, max int64, scale, offset float64) Node {
	id := f.alloc(nodeEntry{kind: format.KindScaledInteger, parentID: noID, scaled: &scaledIntegerData{
		raw: raw, min: min, max: max, scale: scale, offset: offset,
	}})

	return Node{file: f, id: id}
}

// NewFloat creates a detached Float leaf. NaN values are rejected.
func (f *File) NewFloat(value, min, max float64, precision format.Precision) (Node, error) {
	if value != value { //nolint:staticcheck // explicit NaN check, not a comparison bug
		return Node{}, errs.New(errs.KindValueOutOfBounds, "Float value is NaN")
	}

	id := f.alloc(nodeEntry{kind: format.KindFloat, parentID: noID, float: &floatData{value: value, min: min, max: max, precision: precision}})

	return Node{file: f, id: id}, nil
}

// NewString creates a detached String leaf.
func (f *File) NewString(value string) Node {
	id := f.alloc(nodeEntry{kind: format.KindString, parentID: noID, str: &stringData{value: value}})

	return Node{file: f, id: id}
}

// NewBlob creates a detached Blob leaf of byteCount bytes. The binary
// section backing it is allocated by blob.NewWriter and written through
// the blob package's reader/writer, not at construction time.
func (f *File) NewBlob(byteCount uint64) Node {
	id := f.alloc(nodeEntry{kind: format.KindBlob, parentID: noID, blob: &blobData{byteCount: byteCount}})

	return Node{file: f, id: id}
}
