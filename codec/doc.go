// Package codec implements the codec-name dispatch point spec.md §9 reserves
// for per-field compression on top of the default bit-packed integer/raw
// float/length-prefixed string encoding: a name string, stored per field in
// a CompressedVector's codecs Vector, selects which compress.Codec (if any)
// wraps that field's bitpack-encoded bytestream before it's staged into a
// data packet.
//
// The default, unnamed codec ("bitpack") applies no compression, so
// spec.md's invariant 6 (exact round-trip for Integer/Float leaves) holds
// for any field that doesn't opt into one of the named variants.
package codec
