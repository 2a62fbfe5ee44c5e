package blob

import (
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
	"github.com/go-e57/e57fmt/pagedfile"
)

// Reader provides random-access reads from a Blob node's binary section.
type Reader struct {
	n  node.Node
	pf *pagedfile.PagedFile
}

// NewReader returns a Reader over n's already-allocated binary section (set
// by NewWriter when the Blob was written, or by xmltree when the Blob was
// parsed from an existing file's metadata).
func NewReader(n node.Node, pf *pagedfile.PagedFile) (*Reader, error) {
	if n.Kind() != format.KindBlob {
		return nil, errs.New(errs.KindInternalError, "blob.NewReader on kind %s", n.Kind())
	}

	return &Reader{n: n, pf: pf}, nil
}

// ReadAt fills dst from the Blob's bytes starting at offset. The range
// [offset, offset+len(dst)) must fall within [0, n.BlobByteCount()).
func (r *Reader) ReadAt(offset uint64, dst []byte) error {
	if err := checkRange(r.n, offset, len(dst)); err != nil {
		return err
	}

	return r.pf.ReadAt(dst, r.n.BinarySectionLogicalStart()+offset)
}
