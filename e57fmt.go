// Package e57fmt provides a reader/writer for the ASTM E57 3D imaging
// container format: a hierarchical metadata tree (Structure, Vector,
// CompressedVector, and scalar leaves) serialized as XML, paired with
// binary sections holding bit-packed CompressedVector records and Blob
// bytes.
//
// # Basic usage
//
// Creating a file and writing a CompressedVector section:
//
//	f, err := e57fmt.Create("scan.e57", store)
//	root := f.Root()
//	tree := f.Tree()
//	proto := tree.NewStructure()
//	proto.Set("cartesianX", tree.NewInteger(0, -1000, 1000), true)
//	codecs := tree.NewVector(true)
//	cv, err := tree.NewCompressedVector(proto, codecs)
//	root.Set("points", cv, true)
//
//	w, err := vector.NewWriter(cv, f.PagedFile(), bindings)
//	w.Write(n)
//	w.Close()
//	f.Close()
//
// Opening an existing file walks the metadata tree the same way; the
// node package's Get/Children navigate it, and vector.NewReader resumes a
// CompressedVector section for reading.
//
// This package is a thin top-level convenience wrapper around node, xmltree
// and pagedfile, the same way the package surface of this module's teacher
// wraps its blob package: for advanced control over paging options or
// checksum policy, construct a pagedfile.PagedFile directly and pass it to
// node/xmltree/vector/blob yourself.
package e57fmt

import (
	"github.com/go-e57/e57fmt/node"
	"github.com/go-e57/e57fmt/pagedfile"
	"github.com/go-e57/e57fmt/xmltree"
)

// File pairs a node.File's in-memory metadata tree with the PagedFile
// backing its binary sections. Close is its only commit point and Cancel
// its discard path (spec.md §5): nothing written to the tree or to a
// CompressedVectorWriter/blob.Writer is durable until Close succeeds.
type File struct {
	tree *node.File
	pf   *pagedfile.PagedFile

	closed bool
}

// Create initializes a brand-new E57 file named name over store.
func Create(name string, store pagedfile.Store, opts ...pagedfile.Option) (*File, error) {
	pf, err := pagedfile.Create(store, opts...)
	if err != nil {
		return nil, err
	}

	return &File{tree: node.New(name), pf: pf}, nil
}

// Open reads an existing E57 file's header and metadata XML from store.
func Open(store pagedfile.Store, opts ...pagedfile.Option) (*File, error) {
	pf, err := pagedfile.Open(store, opts...)
	if err != nil {
		return nil, err
	}

	header := pf.Header()
	xmlBuf := make([]byte, header.XMLLogicalLength)
	if len(xmlBuf) > 0 {
		if err := pf.ReadAt(xmlBuf, header.XMLPhysicalOffset); err != nil {
			return nil, err
		}
	}

	tree := node.New("")
	if err := xmltree.Unmarshal(tree, xmlBuf); err != nil {
		return nil, err
	}

	return &File{tree: tree, pf: pf}, nil
}

// Root returns the file's root Structure node.
func (f *File) Root() node.Node { return f.tree.Root() }

// Tree returns the file's underlying node.File, for callers that need
// File.NewInteger/NewStructure/... node-construction factories.
func (f *File) Tree() *node.File { return f.tree }

// PagedFile returns the file's binary-section collaborator, for passing to
// vector.NewWriter/NewReader and blob.NewWriter/NewReader.
func (f *File) PagedFile() *pagedfile.PagedFile { return f.pf }

// Close serializes the current metadata tree to XML, writes it to a fresh
// section, and finalizes the PagedFile header. It is the sole point at
// which any node tree mutation or binary-section write made since Open or
// Create becomes durable.
func (f *File) Close() error {
	if f.closed {
		return nil
	}

	xmlBuf, err := xmltree.Marshal(f.tree)
	if err != nil {
		return err
	}

	offset := f.pf.Allocate(uint64(len(xmlBuf)))
	if len(xmlBuf) > 0 {
		if err := f.pf.WriteAt(xmlBuf, offset); err != nil {
			return err
		}
	}
	f.pf.SetXMLSection(offset, uint64(len(xmlBuf)))

	if err := f.pf.Close(); err != nil {
		return err
	}

	f.closed = true

	return nil
}

// Cancel discards every mutation made since Open or Create: the PagedFile
// is marked closed without rewriting its header, so a reader reopening the
// same store sees the file exactly as it was before this session began.
func (f *File) Cancel() error {
	if f.closed {
		return nil
	}
	f.closed = true

	return f.pf.Cancel()
}

// Closed reports whether Close or Cancel has already run.
func (f *File) Closed() bool { return f.closed }
