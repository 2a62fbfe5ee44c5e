package pagedfile

import (
	"io"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/internal/hash"
	"github.com/go-e57/e57fmt/internal/options"
)

// Store is the random-access backing a PagedFile reads and writes pages
// against. *os.File satisfies it directly.
type Store interface {
	io.ReaderAt
	io.WriterAt
}

// PagedFile is the checksummed, paged read/write collaborator described by
// spec.md §3.3/§4.6/§6 as an external interface. It translates logical
// byte offsets (the content an E57 section sees) to physical offsets in
// Store (content plus per-page xxHash64 trailers).
type PagedFile struct {
	store Store

	header      Header
	contentSize uint32 // header.PageSize - trailerSize

	checksumPolicy format.ReadChecksumPolicy
	sparseRate     int
	pagesRead      uint64

	nextLogical uint64 // bump allocator cursor for new binary sections
	closed      bool
}

const trailerSize = 8

// Create initializes a new, empty PagedFile over store: writes the header
// page and positions the allocator at logical offset 0.
func Create(store Store, opts ...Option) (*PagedFile, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h := Header{
		Signature:          Signature,
		Major:              1,
		Minor:              0,
		FilePhysicalLength: uint64(cfg.pageSize),
		PageSize:           cfg.pageSize,
	}

	buf := h.Marshal(make([]byte, 0, HeaderSize))
	if uint32(len(buf)) > cfg.pageSize {
		return nil, errs.New(errs.KindInternalError, "page size %d too small for header", cfg.pageSize)
	}
	buf = append(buf, make([]byte, int(cfg.pageSize)-len(buf))...)

	if _, err := store.WriteAt(buf, 0); err != nil {
		return nil, errs.Wrap(errs.KindFileWrite, err, "writing file header")
	}

	return &PagedFile{
		store:          store,
		header:         h,
		contentSize:    cfg.pageSize - trailerSize,
		checksumPolicy: cfg.checksumPolicy,
		sparseRate:     cfg.sparseRate,
	}, nil
}

// Open reads and validates an existing PagedFile's header from store.
func Open(store Store, opts ...Option) (*PagedFile, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	raw := make([]byte, HeaderSize)
	if _, err := store.ReadAt(raw, 0); err != nil {
		return nil, errs.Wrap(errs.KindFileOpen, err, "reading file header")
	}

	h, err := UnmarshalHeader(raw)
	if err != nil {
		return nil, err
	}
	if h.Major != 1 {
		return nil, errs.New(errs.KindUnsupportedVersion, "major version %d not supported", h.Major)
	}

	// Conservative high-water mark: the first logical byte past every page
	// already written, as recorded by FilePhysicalLength.
	var nextLogical uint64
	if h.PageSize > trailerSize {
		if pages := h.FilePhysicalLength / uint64(h.PageSize); pages > 1 {
			nextLogical = (pages - 1) * uint64(h.PageSize-trailerSize)
		}
	}

	return &PagedFile{
		store:          store,
		header:         h,
		contentSize:    h.PageSize - trailerSize,
		checksumPolicy: cfg.checksumPolicy,
		sparseRate:     cfg.sparseRate,
		nextLogical:    nextLogical,
	}, nil
}

// Header returns the current file header.
func (pf *PagedFile) Header() Header { return pf.header }

// SetXMLSection records where the metadata XML lives, called by File.close()
// after (re)serializing the tree.
func (pf *PagedFile) SetXMLSection(physicalOffset, logicalLength uint64) {
	pf.header.XMLPhysicalOffset = physicalOffset
	pf.header.XMLLogicalLength = logicalLength
}

// Allocate reserves n logical bytes for a new binary section (a
// CompressedVector's packets or a Blob's bytes) and returns the starting
// logical offset. It is a simple bump allocator; sections are never
// reclaimed within one open file (spec.md §4.4 "Failure semantics").
func (pf *PagedFile) Allocate(n uint64) uint64 {
	start := pf.nextLogical
	pf.nextLogical += n

	return start
}

func (pf *PagedFile) physicalPageStart(pageIndex uint64) uint64 {
	return uint64(pf.header.PageSize) + pageIndex*uint64(pf.header.PageSize)
}

func (pf *PagedFile) shouldVerify() bool {
	switch pf.checksumPolicy {
	case format.ChecksumAll:
		return true
	case format.ChecksumSparse:
		return pf.pagesRead%uint64(pf.sparseRate) == 0
	default:
		return false
	}
}

// ReadAt fills dst with the logical bytes starting at logicalOffset,
// verifying per-page xxHash64 trailers according to the configured
// ReadChecksumPolicy.
func (pf *PagedFile) ReadAt(dst []byte, logicalOffset uint64) error {
	if pf.closed {
		return errs.New(errs.KindFileNotOpen, "PagedFile is closed")
	}

	remaining := dst
	offset := logicalOffset

	for len(remaining) > 0 {
		pageIndex := offset / uint64(pf.contentSize)
		inPage := uint32(offset % uint64(pf.contentSize))

		page := make([]byte, pf.header.PageSize)
		physStart := pf.physicalPageStart(pageIndex)
		_, err := pf.store.ReadAt(page, int64(physStart)) //nolint:gosec
		if err != nil && err != io.EOF {
			return errs.Wrap(errs.KindFileRead, err, "reading page %d", pageIndex)
		}
		pf.pagesRead++
		if pf.shouldVerify() {
			content := page[:pf.contentSize]
			trailer := page[pf.contentSize : pf.contentSize+trailerSize]
			want := hash.Checksum64(content)
			got := uint64(trailer[0]) | uint64(trailer[1])<<8 | uint64(trailer[2])<<16 | uint64(trailer[3])<<24 |
				uint64(trailer[4])<<32 | uint64(trailer[5])<<40 | uint64(trailer[6])<<48 | uint64(trailer[7])<<56
			if got != want {
				return errs.New(errs.KindChecksumMismatch, "page %d checksum mismatch", pageIndex)
			}
		}

		avail := pf.contentSize - inPage
		take := uint32(len(remaining)) //nolint:gosec
		if take > avail {
			take = avail
		}
		copy(remaining[:take], page[inPage:inPage+take])

		remaining = remaining[take:]
		offset += uint64(take)
	}

	return nil
}

// WriteAt writes src as the logical bytes starting at logicalOffset,
// recomputing and rewriting each touched page's xxHash64 trailer.
func (pf *PagedFile) WriteAt(src []byte, logicalOffset uint64) error {
	if pf.closed {
		return errs.New(errs.KindFileNotOpen, "PagedFile is closed")
	}

	remaining := src
	offset := logicalOffset

	for len(remaining) > 0 {
		pageIndex := offset / uint64(pf.contentSize)
		inPage := uint32(offset % uint64(pf.contentSize))

		page := make([]byte, pf.header.PageSize)
		physStart := pf.physicalPageStart(pageIndex)
		_, err := pf.store.ReadAt(page, int64(physStart)) //nolint:gosec
		if err != nil && err != io.EOF {
			return errs.Wrap(errs.KindFileRead, err, "reading page %d for read-modify-write", pageIndex)
		}
		avail := pf.contentSize - inPage
		take := uint32(len(remaining)) //nolint:gosec
		if take > avail {
			take = avail
		}
		copy(page[inPage:inPage+take], remaining[:take])

		sum := hash.Checksum64(page[:pf.contentSize])
		trailer := page[pf.contentSize : pf.contentSize+trailerSize]
		for i := range 8 {
			trailer[i] = byte(sum >> (8 * i))
		}

		if _, err := pf.store.WriteAt(page, int64(physStart)); err != nil { //nolint:gosec
			return errs.Wrap(errs.KindFileWrite, err, "writing page %d", pageIndex)
		}

		end := physStart + uint64(pf.header.PageSize)
		if end > pf.header.FilePhysicalLength {
			pf.header.FilePhysicalLength = end
		}

		remaining = remaining[take:]
		offset += uint64(take)
	}

	return nil
}

// Close finalizes the header (writing the final FilePhysicalLength/XML
// section fields) and marks the PagedFile unusable. This is the commit
// point; see Cancel for the discard path.
func (pf *PagedFile) Close() error {
	if pf.closed {
		return nil
	}

	buf := pf.header.Marshal(make([]byte, 0, HeaderSize))
	buf = append(buf, make([]byte, int(pf.header.PageSize)-len(buf))...)
	if _, err := pf.store.WriteAt(buf, 0); err != nil {
		return errs.Wrap(errs.KindFileWrite, err, "writing final header")
	}

	pf.closed = true

	return nil
}

// Cancel discards pending state and marks the PagedFile closed without
// rewriting the header, leaving the backing store in its pre-open state
// from this PagedFile's point of view (spec.md §5 "Cancellation").
func (pf *PagedFile) Cancel() error {
	pf.closed = true

	return nil
}
