package cache

import (
	"container/list"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/pagedfile"
)

// packetHeaderPrefixSize is the packetType+flags/reserved+lengthMinus1
// prefix shared by all three packet layouts (spec.md §3.3); reading just
// this much tells a PacketCache how many more bytes to fetch.
const packetHeaderPrefixSize = 4

type entry struct {
	offset    uint64
	data      []byte
	lockCount int
}

// Handle pins one cached packet's bytes resident until Release is called.
type Handle struct {
	cache  *PacketCache
	offset uint64
}

// Bytes returns the packet's bytes. Valid until Release.
func (h *Handle) Bytes() []byte {
	return h.cache.entries[h.offset].Value.(*entry).data
}

// Release drops this handle's lock on the packet. The bytes remain
// cached (and may still be read by Bytes via a fresh Lock) until evicted.
func (h *Handle) Release() {
	h.cache.unlock(h.offset)
}

// PacketCache is a fixed-capacity LRU over packet bytes read from one
// PagedFile.
type PacketCache struct {
	pf       *pagedfile.PagedFile
	capacity int

	order   *list.List // front = most recently used
	entries map[uint64]*list.Element
}

// New constructs a PacketCache with room for capacity resident packets,
// reading misses from pf.
func New(pf *pagedfile.PagedFile, capacity int) *PacketCache {
	if capacity < 1 {
		capacity = 1
	}

	return &PacketCache{
		pf:       pf,
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[uint64]*list.Element, capacity),
	}
}

// Lock returns a handle over the packet at logical offset, reading it
// from the PagedFile on a cache miss and evicting the least-recently-used
// unlocked entry if the cache is full. It is a fatal caller error (not a
// transient condition) to request a new packet while every slot is
// locked; callers must hold at most capacity simultaneous locks.
func (c *PacketCache) Lock(offset uint64) (*Handle, error) {
	if el, ok := c.entries[offset]; ok {
		c.order.MoveToFront(el)
		el.Value.(*entry).lockCount++

		return &Handle{cache: c, offset: offset}, nil
	}

	if len(c.entries) >= c.capacity {
		if err := c.evictOne(); err != nil {
			return nil, err
		}
	}

	data, err := c.readPacket(offset)
	if err != nil {
		return nil, err
	}

	el := c.order.PushFront(&entry{offset: offset, data: data, lockCount: 1})
	c.entries[offset] = el

	return &Handle{cache: c, offset: offset}, nil
}

func (c *PacketCache) unlock(offset uint64) {
	el, ok := c.entries[offset]
	if !ok {
		return
	}
	e := el.Value.(*entry)
	if e.lockCount > 0 {
		e.lockCount--
	}
}

// evictOne removes the least-recently-used entry with a zero lock count.
func (c *PacketCache) evictOne() error {
	for el := c.order.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if e.lockCount == 0 {
			c.order.Remove(el)
			delete(c.entries, e.offset)

			return nil
		}
	}

	return errs.New(errs.KindInternalError, "packet cache exhausted: all %d slots locked", c.capacity)
}

func (c *PacketCache) readPacket(offset uint64) ([]byte, error) {
	prefix := make([]byte, packetHeaderPrefixSize)
	if err := c.pf.ReadAt(prefix, offset); err != nil {
		return nil, err
	}

	lengthMinus1 := uint16(prefix[2]) | uint16(prefix[3])<<8
	total := int(lengthMinus1) + 1

	data := make([]byte, total)
	copy(data, prefix)
	if total > packetHeaderPrefixSize {
		if err := c.pf.ReadAt(data[packetHeaderPrefixSize:], offset+packetHeaderPrefixSize); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// Len reports how many packets are currently resident.
func (c *PacketCache) Len() int { return len(c.entries) }
