// Package bitpack implements the default per-field bytestream codec for
// compressed-vector records (spec §4.3): bit-packed integers, float
// passthrough, and length-prefixed strings.
//
// Bit order is little-endian within a byte (least-significant-bit first),
// matching the on-disk container format. Flush pads an encoder's bitstream
// to a byte boundary; package vector calls it at every packet seal, so each
// data packet carries its own padded bitstream and no value runs across a
// packet boundary. A decoder carries leftover sub-byte state across calls
// so it can resume mid-value when fed the next window of the same
// bytestream (spec §4.3 "Decoder contract").
package bitpack
