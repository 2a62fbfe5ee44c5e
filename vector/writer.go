package vector

import (
	"github.com/go-e57/e57fmt/binding"
	"github.com/go-e57/e57fmt/codec"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/internal/pool"
	"github.com/go-e57/e57fmt/node"
	"github.com/go-e57/e57fmt/packet"
	"github.com/go-e57/e57fmt/pagedfile"
)

// sealMargin bounds how close a packet's staged size is allowed to get to
// packet.MaxPacketSize before Write seals it, leaving headroom for the
// next record's worst-case growth across every channel. Point-cloud scalar
// fields (8-byte floats, varint-length-prefixed short strings) comfortably
// fit this margin; a prototype with pathologically large String leaves
// could in principle exceed it, which is out of scope here (see DESIGN.md).
const sealMargin = 512

type writerChannel struct {
	enc       leafEncoder
	binding   *binding.BufferBinding
	codecName codec.Name
}

// Writer is a CompressedVectorWriter (spec.md §4.4): it drives one
// BufferBinding per prototype leaf through that leaf's bitpack encoder,
// seals DataPackets at the 64 KiB boundary, and on Close builds the
// seek-index tree and patches the section header.
type Writer struct {
	cv  node.Node
	pf  *pagedfile.PagedFile
	chs []writerChannel

	headerOffset   uint64
	sectionEnd     uint64
	leafEntries    []packet.IndexEntry
	packetStartRec uint64
	currentRecords int
	totalRecords   uint64

	closed bool
	failed bool
}

// NewWriter constructs a Writer over cv (a CompressedVector node) and
// bindings, which must cover every leaf of cv.Prototype(). It reserves a
// new binary section in pf and records its start in cv.
func NewWriter(cv node.Node, pf *pagedfile.PagedFile, bindings []*binding.BufferBinding, opts ...Option) (*Writer, error) {
	cfg := newConfig(opts)

	leaves, err := prototypeLeaves(cv)
	if err != nil {
		return nil, err
	}

	chs := make([]writerChannel, len(leaves))
	for i, leaf := range leaves {
		b := bindingFor(bindings, leaf.Name())
		if b == nil {
			return nil, errs.New(errs.KindBufferSizeMismatch, "no buffer binding for prototype leaf %q", leaf.Name())
		}
		var precision format.Precision
		if leaf.Kind() == format.KindFloat {
			_, _, _, precision = leaf.FloatValue()
		}
		if err := b.CheckAgainstKind(leaf.Kind(), precision); err != nil {
			return nil, err
		}
		enc, err := newLeafEncoder(leaf)
		if err != nil {
			return nil, err
		}
		chs[i] = writerChannel{enc: enc, binding: b, codecName: cfg.codecFor(leaf.Name())}
	}

	headerOffset := pf.Allocate(uint64(packet.SectionHeaderSize))
	if err := cv.SetBinarySectionLogicalStart(headerOffset); err != nil {
		return nil, err
	}

	return &Writer{
		cv:           cv,
		pf:           pf,
		chs:          chs,
		headerOffset: headerOffset,
		sectionEnd:   headerOffset + uint64(packet.SectionHeaderSize),
	}, nil
}

// dataPacketHeaderSize mirrors the unexported constant of the same name in
// package packet: packetType + flags + lengthMinus1 + bytestreamCount.
const dataPacketHeaderSize = 1 + 1 + 2 + 2

func (w *Writer) stagedSize() int {
	n := dataPacketHeaderSize
	for _, ch := range w.chs {
		n += 2 + ch.enc.stagedBytes()
	}
	return n
}

// Write pulls n records from every bound channel's BufferBinding, in
// lockstep, appending each to its leaf's bitpack encoder and sealing a
// DataPacket whenever the staged payload nears the 64 KiB packet limit.
func (w *Writer) Write(n int) error {
	if w.failed {
		return errs.New(errs.KindWriterNotOpen, "writer previously failed")
	}
	if w.closed {
		return errs.New(errs.KindWriterNotOpen, "writer is closed")
	}

	for i := 0; i < n; i++ {
		if w.currentRecords > 0 && w.stagedSize() >= packet.MaxPacketSize-sealMargin {
			if err := w.sealPacket(); err != nil {
				w.failed = true
				return err
			}
		}

		for _, ch := range w.chs {
			if err := ch.enc.appendFromBinding(ch.binding); err != nil {
				w.failed = true
				return err
			}
		}
		w.currentRecords++
		w.totalRecords++
	}

	return nil
}

// sealPacket flushes every channel's staged bytes into one DataPacket and
// writes it to the file. Flushing (rather than draining) at every seal, not
// only at close, pads each bit-packed Integer/ScaledInteger leaf's trailing
// partial byte with zeros, so no record ever straddles two data packets:
// every packet's bytestream, for every channel, holds a whole number of
// complete records starting at bit 0. That keeps the shared seek index
// (one chunkRecordNumber/chunkPhysicalOffset pair per packet) valid for
// every leaf, and lets a seek into any packet decode from a fresh decoder
// with no prior bit state to reconstruct.
func (w *Writer) sealPacket() error {
	streams := make([][]byte, len(w.chs))
	for i, ch := range w.chs {
		compressed, err := codec.Compress(ch.codecName, ch.enc.flush())
		if err != nil {
			return err
		}
		streams[i] = compressed
	}

	dp := packet.DataPacket{Bytestreams: streams}
	staging := pool.GetPacketBuffer()
	defer pool.PutPacketBuffer(staging)

	buf, err := dp.Marshal(staging.Bytes())
	if err != nil {
		return err
	}

	offset := w.pf.Allocate(uint64(len(buf)))
	if err := w.pf.WriteAt(buf, offset); err != nil {
		return err
	}

	w.leafEntries = append(w.leafEntries, packet.IndexEntry{
		ChunkRecordNumber:   w.packetStartRec,
		ChunkPhysicalOffset: offset,
	})
	w.packetStartRec += uint64(w.currentRecords)
	w.currentRecords = 0
	w.sectionEnd = offset + uint64(len(buf))

	return nil
}

// buildIndexTree writes the seek-index tree bottom-up from w.leafEntries
// (each already a (startRecord, physicalOffset) pointer at a data packet)
// and returns the physical offset of its single root IndexPacket.
func (w *Writer) buildIndexTree() (uint64, error) {
	if len(w.leafEntries) == 0 {
		ip := packet.IndexPacket{IndexLevel: 0}
		return w.writeIndexPacket(ip)
	}

	level := uint8(0)
	current := w.leafEntries
	for {
		chunks := chunkEntries(current, packet.MaxIndexEntries)
		next := make([]packet.IndexEntry, 0, len(chunks))
		for _, chunk := range chunks {
			ip := packet.IndexPacket{IndexLevel: level, Entries: chunk}
			offset, err := w.writeIndexPacket(ip)
			if err != nil {
				return 0, err
			}
			next = append(next, packet.IndexEntry{
				ChunkRecordNumber:   chunk[0].ChunkRecordNumber,
				ChunkPhysicalOffset: offset,
			})
		}
		if len(next) == 1 {
			return next[0].ChunkPhysicalOffset, nil
		}
		current = next
		level++
	}
}

func (w *Writer) writeIndexPacket(ip packet.IndexPacket) (uint64, error) {
	staging := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(staging)

	buf, err := ip.Marshal(staging.Bytes())
	if err != nil {
		return 0, err
	}
	offset := w.pf.Allocate(uint64(len(buf)))
	if err := w.pf.WriteAt(buf, offset); err != nil {
		return 0, err
	}
	w.sectionEnd = offset + uint64(len(buf))
	return offset, nil
}

func chunkEntries(entries []packet.IndexEntry, size int) [][]packet.IndexEntry {
	var chunks [][]packet.IndexEntry
	for len(entries) > 0 {
		n := size
		if n > len(entries) {
			n = len(entries)
		}
		chunks = append(chunks, entries[:n])
		entries = entries[n:]
	}
	return chunks
}

// Close flushes any partial packet, builds the seek-index tree, patches the
// section header, and records the final record count on cv. It is the
// writer's sole commit point: nothing written before Close is visible to a
// reader opening the CompressedVector, since cv.RecordCount and the XML
// tree around it are only updated here.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if w.failed {
		return errs.New(errs.KindWriterNotOpen, "writer previously failed, nothing was committed")
	}

	if w.currentRecords > 0 {
		if err := w.sealPacket(); err != nil {
			w.failed = true
			return err
		}
	}

	dataOffset := uint64(0)
	if len(w.leafEntries) > 0 {
		dataOffset = w.leafEntries[0].ChunkPhysicalOffset
	}

	indexOffset, err := w.buildIndexTree()
	if err != nil {
		w.failed = true
		return err
	}

	header := packet.SectionHeader{
		SectionID:            packet.SectionIDCompressedVector,
		SectionLogicalLength: w.sectionEnd - w.headerOffset,
		DataPhysicalOffset:   dataOffset,
		IndexPhysicalOffset:  indexOffset,
	}
	buf := header.Marshal(nil)
	if err := w.pf.WriteAt(buf, w.headerOffset); err != nil {
		w.failed = true
		return err
	}

	if err := w.cv.SetRecordCount(w.totalRecords); err != nil {
		return err
	}

	w.closed = true
	return nil
}
