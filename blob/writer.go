package blob

import (
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
	"github.com/go-e57/e57fmt/pagedfile"
)

// Writer provides random-access writes into a Blob node's binary section.
type Writer struct {
	n  node.Node
	pf *pagedfile.PagedFile
}

// NewWriter reserves n.BlobByteCount() bytes in pf for a freshly created
// Blob node and returns a Writer over that section. n must not already
// have a binary section (it must come straight from File.NewBlob).
func NewWriter(n node.Node, pf *pagedfile.PagedFile) (*Writer, error) {
	if n.Kind() != format.KindBlob {
		return nil, errs.New(errs.KindInternalError, "blob.NewWriter on kind %s", n.Kind())
	}

	offset := pf.Allocate(n.BlobByteCount())
	if err := n.SetBinarySectionLogicalStart(offset); err != nil {
		return nil, err
	}
	if err := n.SetBlobSectionLength(n.BlobByteCount()); err != nil {
		return nil, err
	}

	return &Writer{n: n, pf: pf}, nil
}

// WriteAt writes p into the Blob's bytes starting at offset. The range
// [offset, offset+len(p)) must fall within [0, n.BlobByteCount()).
func (w *Writer) WriteAt(offset uint64, p []byte) error {
	if err := checkRange(w.n, offset, len(p)); err != nil {
		return err
	}

	return w.pf.WriteAt(p, w.n.BinarySectionLogicalStart()+offset)
}

func checkRange(n node.Node, offset uint64, length int) error {
	if length < 0 {
		return errs.New(errs.KindValueOutOfBounds, "negative length %d", length)
	}

	end := offset + uint64(length)
	if end < offset || end > n.BlobByteCount() {
		return errs.New(errs.KindValueOutOfBounds, "blob range [%d, %d) exceeds byte count %d", offset, end, n.BlobByteCount())
	}

	return nil
}
