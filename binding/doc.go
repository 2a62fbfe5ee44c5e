// Package binding implements BufferBinding, the zero-copy link between a
// caller-owned, possibly strided array and one scalar leaf of a
// CompressedVector's prototype (spec.md §4.2).
//
// A binding never allocates or copies the caller's backing array: it
// holds an unsafe.Pointer to its first element, an element stride in
// bytes, and a capacity, then reads/writes through that pointer with
// GetNext*/SetNext*. String leaves are the exception — they bind to a
// *[]string handle instead of a raw pointer, since strings are not
// fixed-width.
//
// Binding a representation to a field narrower or wider than it (e.g. a
// []int32 to an Integer leaf whose values fit int64) requires doConversion;
// binding a real-valued slice to a ScaledInteger leaf requires doScaling.
// Both are opt-in: without them a representation mismatch fails at bind
// time via CheckAgainstKind rather than silently truncating at read time.
package binding
