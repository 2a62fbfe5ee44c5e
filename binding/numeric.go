package binding

import (
	"math"

	"github.com/go-e57/e57fmt/errs"
)

func (b *BufferBinding) readNativeInt64(i int) (int64, error) {
	p := b.elementPointer(i)
	switch b.rep {
	case RepInt8:
		return int64(*(*int8)(p)), nil
	case RepUint8:
		return int64(*(*uint8)(p)), nil
	case RepInt16:
		return int64(*(*int16)(p)), nil
	case RepUint16:
		return int64(*(*uint16)(p)), nil
	case RepInt32:
		return int64(*(*int32)(p)), nil
	case RepUint32:
		return int64(*(*uint32)(p)), nil
	case RepInt64:
		return *(*int64)(p), nil
	case RepUint64:
		u := *(*uint64)(p)
		if u > math.MaxInt64 {
			return 0, errs.New(errs.KindValueOutOfBounds, "buffer %q: uint64 value %d overflows int64", b.path, u)
		}

		return int64(u), nil
	case RepBool:
		if *(*bool)(p) {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, b.mismatch()
	}
}

func (b *BufferBinding) readNativeFloat64(i int) (float64, error) {
	p := b.elementPointer(i)
	switch b.rep {
	case RepSingle:
		return float64(*(*float32)(p)), nil
	case RepDouble:
		return *(*float64)(p), nil
	default:
		return 0, b.mismatch()
	}
}

func (b *BufferBinding) writeNativeInt64(i int, v int64) error {
	p := b.elementPointer(i)
	switch b.rep {
	case RepInt8:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows int8", b.path, v)
		}
		*(*int8)(p) = int8(v)
	case RepUint8:
		if v < 0 || v > math.MaxUint8 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows uint8", b.path, v)
		}
		*(*uint8)(p) = uint8(v)
	case RepInt16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows int16", b.path, v)
		}
		*(*int16)(p) = int16(v)
	case RepUint16:
		if v < 0 || v > math.MaxUint16 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows uint16", b.path, v)
		}
		*(*uint16)(p) = uint16(v)
	case RepInt32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows int32", b.path, v)
		}
		*(*int32)(p) = int32(v)
	case RepUint32:
		if v < 0 || v > math.MaxUint32 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d overflows uint32", b.path, v)
		}
		*(*uint32)(p) = uint32(v)
	case RepInt64:
		*(*int64)(p) = v
	case RepUint64:
		if v < 0 {
			return errs.New(errs.KindValueOutOfBounds, "buffer %q: negative value %d for uint64", b.path, v)
		}
		*(*uint64)(p) = uint64(v)
	case RepBool:
		*(*bool)(p) = v != 0
	default:
		return b.mismatch()
	}

	return nil
}

func (b *BufferBinding) writeNativeFloat64(i int, v float64) error {
	p := b.elementPointer(i)
	switch b.rep {
	case RepSingle:
		*(*float32)(p) = float32(v)
	case RepDouble:
		*(*float64)(p) = v
	default:
		return b.mismatch()
	}

	return nil
}

// GetNextInt64 reads the next value for an Integer leaf bounded by
// [min,max]. Without doConversion, only an exact int64 representation is
// accepted; with it, any integer representation widens/narrows (range
// checked) and a float representation truncates toward zero after a
// range check against [min,max] performed in floating point.
func (b *BufferBinding) GetNextInt64(min, max int64) (int64, error) {
	if b.nextIndex >= b.capacity {
		return 0, b.exhausted()
	}
	idx := b.nextIndex

	var v int64
	switch {
	case b.rep.isIntegral():
		raw, err := b.readNativeInt64(idx)
		if err != nil {
			return 0, err
		}
		v = raw
	case b.rep.isFloat() && b.doConversion:
		f, err := b.readNativeFloat64(idx)
		if err != nil {
			return 0, err
		}
		if f < float64(min) || f > float64(max) {
			return 0, errs.New(errs.KindValueOutOfBounds, "buffer %q: value %g out of range [%d,%d]", b.path, f, min, max)
		}
		v = int64(f)
		b.nextIndex++

		return v, nil
	default:
		return 0, b.mismatch()
	}

	if !b.doConversion && b.rep != RepInt64 {
		return 0, b.mismatch()
	}
	if v < min || v > max {
		return 0, errs.New(errs.KindValueOutOfBounds, "buffer %q: value %d out of range [%d,%d]", b.path, v, min, max)
	}
	b.nextIndex++

	return v, nil
}

// SetNextInt64 is the reader-side counterpart of GetNextInt64: it stores a
// decoded Integer value into caller memory.
func (b *BufferBinding) SetNextInt64(v int64) error {
	if b.nextIndex >= b.capacity {
		return b.exhausted()
	}

	idx := b.nextIndex
	var err error
	switch {
	case b.rep.isIntegral():
		if !b.doConversion && b.rep != RepInt64 {
			return b.mismatch()
		}
		err = b.writeNativeInt64(idx, v)
	case b.rep.isFloat() && b.doConversion:
		// Exact only for |v| <= 2^53; beyond that this stores the nearest
		// representable float.
		err = b.writeNativeFloat64(idx, float64(v))
	default:
		err = b.mismatch()
	}
	if err != nil {
		return err
	}
	b.nextIndex++

	return nil
}

// GetNextFloat64 reads the next value for a Float leaf. Without
// doConversion, only the representation matching precision is accepted;
// with it, any integer representation converts exactly for magnitudes up
// to 2^53.
func (b *BufferBinding) GetNextFloat64(wantSingle bool) (float64, error) {
	if b.nextIndex >= b.capacity {
		return 0, b.exhausted()
	}
	idx := b.nextIndex

	want := RepDouble
	if wantSingle {
		want = RepSingle
	}

	var v float64
	switch {
	case b.rep.isFloat():
		if !b.doConversion && b.rep != want {
			return 0, b.mismatch()
		}
		f, err := b.readNativeFloat64(idx)
		if err != nil {
			return 0, err
		}
		v = f
	case b.rep.isIntegral() && b.doConversion:
		iv, err := b.readNativeInt64(idx)
		if err != nil {
			return 0, err
		}
		v = float64(iv)
	default:
		return 0, b.mismatch()
	}
	b.nextIndex++

	return v, nil
}

// SetNextFloat64 is the reader-side counterpart of GetNextFloat64.
func (b *BufferBinding) SetNextFloat64(v float64, wantSingle bool) error {
	if b.nextIndex >= b.capacity {
		return b.exhausted()
	}

	want := RepDouble
	if wantSingle {
		want = RepSingle
	}

	idx := b.nextIndex
	var err error
	switch {
	case b.rep.isFloat():
		if !b.doConversion && b.rep != want {
			return b.mismatch()
		}
		err = b.writeNativeFloat64(idx, v)
	case b.rep.isIntegral() && b.doConversion:
		err = b.writeNativeInt64(idx, int64(math.Trunc(v)))
	default:
		err = b.mismatch()
	}
	if err != nil {
		return err
	}
	b.nextIndex++

	return nil
}

// GetNextScaledRaw reads the next real value for a ScaledInteger leaf
// (requires doScaling), range-checks it against [scaledMin,scaledMax],
// and returns the raw integer round((v-offset)/scale).
func (b *BufferBinding) GetNextScaledRaw(scaledMin, scaledMax float64) (int64, error) {
	if !b.doScaling {
		return 0, b.mismatch()
	}
	if b.nextIndex >= b.capacity {
		return 0, b.exhausted()
	}

	v, err := b.readNativeFloat64(b.nextIndex)
	if err != nil {
		return 0, err
	}
	if v < scaledMin || v > scaledMax {
		return 0, errs.New(errs.KindValueOutOfBounds, "buffer %q: value %g out of range [%g,%g]", b.path, v, scaledMin, scaledMax)
	}

	raw := round((v - b.offset) / b.scale)
	b.nextIndex++

	return raw, nil
}

// SetNextScaledRaw is the reader-side counterpart of GetNextScaledRaw: it
// stores raw*scale+offset into caller memory.
func (b *BufferBinding) SetNextScaledRaw(raw int64) error {
	if !b.doScaling {
		return b.mismatch()
	}
	if b.nextIndex >= b.capacity {
		return b.exhausted()
	}

	v := float64(raw)*b.scale + b.offset
	if err := b.writeNativeFloat64(b.nextIndex, v); err != nil {
		return err
	}
	b.nextIndex++

	return nil
}
