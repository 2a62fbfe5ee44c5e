// Package cache implements PacketCache, a fixed-N-slot LRU of packet
// bytes keyed by logical offset into a PagedFile (spec.md §4.6). Readers
// lock a packet for the duration of a decode pass and release it when
// done; the least-recently-used unlocked slot is evicted to make room for
// a miss. Locking every slot at once is a caller error, not a transient
// condition to retry: the single-reader-per-File concurrency model means
// a PacketCache's own bookkeeping is plain counters, never mutexes
// (spec.md §5).
package cache
