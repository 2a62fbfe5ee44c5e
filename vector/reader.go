package vector

import (
	"github.com/go-e57/e57fmt/binding"
	"github.com/go-e57/e57fmt/cache"
	"github.com/go-e57/e57fmt/codec"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
	"github.com/go-e57/e57fmt/packet"
	"github.com/go-e57/e57fmt/pagedfile"
)

type readerChannel struct {
	leaf         node.Node
	dec          leafDecoder
	binding      *binding.BufferBinding // nil: leaf not bound, its bytestream is skipped
	codecName    codec.Name
	currentBytes []byte
}

// Reader is a CompressedVectorReader (spec.md §4.5): it walks the
// seek-index tree built by Writer, fetches data packets through a
// PacketCache, and feeds each bound leaf's decoder from its bytestream.
// Unbound prototype leaves are skipped entirely: since DataPacket
// delineates every bytestream by an explicit length prefix, a leaf that
// was never matched to a binding simply never has its bytes touched.
type Reader struct {
	cv    node.Node
	pf    *pagedfile.PagedFile
	cache *cache.PacketCache
	chs   []readerChannel

	recordCount uint64
	packets     []packet.IndexEntry // level-0 seek index entries, in order

	cursor            uint64
	packetIdx         int
	currentHandle     *cache.Handle
	currentPacketLeft int
	closed            bool
}

// NewReader constructs a Reader over cv and bindings, a possibly-strict
// subset of cv.Prototype()'s leaves. c is used to fetch both the seek
// index and the data packets it points at.
func NewReader(cv node.Node, pf *pagedfile.PagedFile, c *cache.PacketCache, bindings []*binding.BufferBinding, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts)

	leaves, err := prototypeLeaves(cv)
	if err != nil {
		return nil, err
	}

	chs := make([]readerChannel, len(leaves))
	for i, leaf := range leaves {
		b := bindingFor(bindings, leaf.Name())
		if b != nil {
			var precision format.Precision
			if leaf.Kind() == format.KindFloat {
				_, _, _, precision = leaf.FloatValue()
			}
			if err := b.CheckAgainstKind(leaf.Kind(), precision); err != nil {
				return nil, err
			}
		}
		// Constructed once here purely to surface an unsupported-kind error
		// at open time; loadPacket rebuilds a fresh decoder per packet.
		if _, err := newLeafDecoder(leaf); err != nil {
			return nil, err
		}
		chs[i] = readerChannel{leaf: leaf, binding: b, codecName: cfg.codecFor(leaf.Name())}
	}

	headerBuf := make([]byte, packet.SectionHeaderSize)
	if err := pf.ReadAt(headerBuf, cv.BinarySectionLogicalStart()); err != nil {
		return nil, err
	}
	header, err := packet.UnmarshalSectionHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	entries, err := collectLeafEntries(c, header.IndexPhysicalOffset)
	if err != nil {
		return nil, err
	}

	return &Reader{
		cv:          cv,
		pf:          pf,
		cache:       c,
		chs:         chs,
		recordCount: cv.RecordCount(),
		packets:     entries,
	}, nil
}

// collectLeafEntries walks the seek-index tree rooted at offset, returning
// its level-0 entries (each pointing at an actual data packet) in order.
func collectLeafEntries(c *cache.PacketCache, offset uint64) ([]packet.IndexEntry, error) {
	h, err := c.Lock(offset)
	if err != nil {
		return nil, err
	}
	ip, err := packet.UnmarshalIndexPacket(h.Bytes())
	h.Release()
	if err != nil {
		return nil, err
	}

	if ip.IndexLevel == 0 {
		return ip.Entries, nil
	}

	var all []packet.IndexEntry
	for _, e := range ip.Entries {
		children, err := collectLeafEntries(c, e.ChunkPhysicalOffset)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
	}
	return all, nil
}

func (r *Reader) recordsInPacket(idx int) uint64 {
	if idx+1 < len(r.packets) {
		return r.packets[idx+1].ChunkRecordNumber - r.packets[idx].ChunkRecordNumber
	}
	return r.recordCount - r.packets[idx].ChunkRecordNumber
}

func (r *Reader) releaseCurrent() {
	if r.currentHandle != nil {
		r.currentHandle.Release()
		r.currentHandle = nil
	}
}

// loadPacket fetches the data packet at r.packets[idx] and points each
// channel's currentBytes at its bytestream, holding the cache lock until
// the packet's records are fully consumed. Each bound channel gets a fresh
// decoder: since the writer flushes every leaf's encoder at every seal
// (sealPacket), a data packet's bytestream never carries a straddling
// record's bits forward from (or back to) a neighboring packet, so there is
// no decoder state to preserve across a packet boundary. Rebuilding the
// decoder here, rather than reusing one constructed at NewReader, is also
// what makes Seek correct: jumping straight to packet idx starts decoding
// at that packet's own record 0, bit 0.
func (r *Reader) loadPacket(idx int) error {
	r.releaseCurrent()

	h, err := r.cache.Lock(r.packets[idx].ChunkPhysicalOffset)
	if err != nil {
		return err
	}
	dp, err := packet.UnmarshalDataPacket(h.Bytes())
	if err != nil {
		h.Release()
		return err
	}
	if len(dp.Bytestreams) != len(r.chs) {
		h.Release()
		return errs.New(errs.KindBadFileSignature, "data packet has %d bytestreams, prototype has %d leaves", len(dp.Bytestreams), len(r.chs))
	}

	for i := range r.chs {
		ch := &r.chs[i]
		if ch.binding == nil {
			continue
		}
		raw, err := codec.Decompress(ch.codecName, dp.Bytestreams[i])
		if err != nil {
			h.Release()
			return err
		}
		dec, err := newLeafDecoder(ch.leaf)
		if err != nil {
			h.Release()
			return err
		}
		ch.dec = dec
		ch.currentBytes = raw
	}
	r.currentHandle = h
	r.currentPacketLeft = int(r.recordsInPacket(idx))

	return nil
}

// Read decodes up to max records into the bound channels' BufferBindings,
// stopping early if a binding runs out of capacity (output-blocked) or no
// more records remain. It returns the number of records actually produced.
func (r *Reader) Read(max int) (int, error) {
	if r.closed {
		return 0, errs.New(errs.KindReaderNotOpen, "reader is closed")
	}

	produced := 0
	for produced < max {
		if r.currentPacketLeft == 0 {
			if r.packetIdx >= len(r.packets) {
				break
			}
			if err := r.loadPacket(r.packetIdx); err != nil {
				return produced, err
			}
			r.packetIdx++
		}

		want := max - produced
		if want > r.currentPacketLeft {
			want = r.currentPacketLeft
		}
		for i := range r.chs {
			ch := &r.chs[i]
			if ch.binding == nil || ch.binding.Representation() == binding.RepString {
				// A String binding's backing slice grows on every
				// SetNextString, so it has no fixed ahead-of-time capacity
				// to throttle against (binding/strings.go).
				continue
			}
			if room := ch.binding.Capacity() - ch.binding.NextIndex(); room < want {
				want = room
			}
		}
		if want <= 0 {
			break
		}

		// Every bound channel must produce exactly want values: packets are
		// sealed record-aligned for every leaf, so a well-formed file never
		// has one channel fall behind another within the same packet. Track
		// each channel's actual produced count anyway, and advance the
		// reader's shared cursor by the minimum rather than assuming want,
		// so a corrupt or malformed file desyncs loudly instead of silently
		// leaving a trailing record zeroed in one channel.
		advance := -1
		for i := range r.chs {
			ch := &r.chs[i]
			if ch.binding == nil {
				continue
			}
			consumed, got, err := ch.dec.decodeAndStore(ch.currentBytes, want, ch.binding)
			if err != nil {
				return produced, err
			}
			ch.currentBytes = ch.currentBytes[consumed:]
			if advance == -1 {
				advance = got
			} else if got != advance {
				return produced, errs.New(errs.KindBadFileSignature, "data packet channels produced mismatched record counts (%d vs %d)", advance, got)
			}
		}
		if advance == -1 {
			advance = want // no bound channels: nothing to decode, just advance the cursor
		}
		if advance == 0 {
			return produced, errs.New(errs.KindBadFileSignature, "data packet produced no records for %d requested", want)
		}

		r.currentPacketLeft -= advance
		produced += advance
		r.cursor += uint64(advance)

		if r.currentPacketLeft == 0 {
			r.releaseCurrent()
		}
	}

	return produced, nil
}

// Seek repositions the reader so the next Read call starts at recordNumber:
// it consults the seek index for the chunk with the largest
// chunkRecordNumber <= recordNumber, loads that packet (which rebuilds every
// bound channel's decoder fresh against that packet's own bytestream), then
// fast-forwards past the records before recordNumber within that chunk.
func (r *Reader) Seek(recordNumber uint64) error {
	if r.closed {
		return errs.New(errs.KindReaderNotOpen, "reader is closed")
	}
	if recordNumber > r.recordCount {
		return errs.New(errs.KindValueOutOfBounds, "record %d exceeds record count %d", recordNumber, r.recordCount)
	}
	if len(r.packets) == 0 {
		r.releaseCurrent()
		r.cursor = 0
		r.packetIdx = 0
		r.currentPacketLeft = 0
		return nil
	}

	idx := 0
	for i, e := range r.packets {
		if e.ChunkRecordNumber <= recordNumber {
			idx = i
		} else {
			break
		}
	}

	if err := r.loadPacket(idx); err != nil {
		return err
	}
	r.packetIdx = idx + 1

	skip := int(recordNumber - r.packets[idx].ChunkRecordNumber)
	for i := range r.chs {
		ch := &r.chs[i]
		if ch.binding == nil {
			continue // unbound leaf: loadPacket built no decoder for it
		}
		ch.binding.Rewind()
		if skip == 0 {
			continue
		}
		consumed, err := ch.dec.discard(ch.currentBytes, skip)
		if err != nil {
			return err
		}
		ch.currentBytes = ch.currentBytes[consumed:]
	}

	r.currentPacketLeft -= skip
	r.cursor = recordNumber

	return nil
}

// Close releases the reader's cache lock, if any. It does not close the
// underlying PagedFile or PacketCache, which may be shared with other
// readers and writers.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.releaseCurrent()
	r.closed = true
	return nil
}
