package bitpack

import "math/bits"

// BitsNeeded returns the number of bits required to represent every integer
// in [min, max] as an unsigned offset from min (spec §4.3).
//
//	(0,0)                    -> 0
//	(0,1)                    -> 1
//	(-1,1)                   -> 2
//	(0,255)                  -> 8
//	(MinInt64,MaxInt64)      -> 64
func BitsNeeded(min, max int64) uint {
	if min == max {
		return 0
	}

	// span = max-min+1 computed as unsigned to avoid int64 overflow when
	// min == MinInt64 and max == MaxInt64.
	span := uint64(max) - uint64(min) + 1
	if span == 0 {
		// max-min+1 overflowed (full int64 range): needs all 64 bits.
		return 64
	}

	n := uint(bits.Len64(span - 1))
	if n == 0 {
		n = 1
	}

	return n
}
