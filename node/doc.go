// Package node implements the typed metadata tree: the eight Node variants
// (Structure, Vector, CompressedVector, Integer, ScaledInteger, Float,
// String, Blob), their structural invariants, and path-based navigation.
//
// Nodes are not individually heap-owned. Each File holds an arena (a slice
// of nodeEntry) and every Node a caller sees is a lightweight (file, id)
// handle into that arena. A node is constructed detached (parentID -1,
// attached false) via one of File's New* factories and later spliced into
// the tree with Set or Append, which is the only way attached flips to
// true. Attachment is one-way: attach-once arena ownership replaces the
// shared-pointer/weak-reference scheme of the format's reference
// implementation, so a cycle would require re-attaching an already-attached
// node, which Set/Append reject outright (errs.KindAlreadySet).
//
// Structural dispatch (PathName, IsDefined, setAttachedRecursive) branches
// on the Kind tag rather than using an interface per variant; per-variant
// state lives in small value types (integerData, floatData, ...) referenced
// from nodeEntry, keeping the arena itself a single contiguous slice.
package node
