package binding

import (
	"unsafe"

	"github.com/go-e57/e57fmt/errs"
)

// BufferBinding is a strided, zero-copy view over one contiguous caller
// array bound to one path in a CompressedVector's prototype.
type BufferBinding struct {
	path string
	rep  MemoryRepresentation

	base     unsafe.Pointer // nil for RepString
	stride   int            // bytes between successive elements
	capacity int            // element count

	strings *[]string // backing handle for RepString

	doConversion bool
	doScaling    bool
	scale        float64
	offset       float64

	nextIndex int
}

// Option configures a BufferBinding at bind time.
type Option func(*BufferBinding)

// WithConversion allows widening/narrowing numeric conversions between the
// binding's memory representation and the bound field's logical type.
func WithConversion() Option {
	return func(b *BufferBinding) { b.doConversion = true }
}

// WithScaling marks the binding as carrying scaled real values for a
// ScaledInteger field, converted to/from raw via scale and offset.
func WithScaling(scale, offset float64) Option {
	return func(b *BufferBinding) {
		b.doScaling = true
		b.scale = scale
		b.offset = offset
	}
}

// Bind constructs a binding over a raw strided array. base must point at
// the first element; stride is the byte distance between successive
// elements and must be >= the representation's element size. Use the
// typed BindXxxSlice helpers instead of calling this directly from Go code.
func Bind(path string, rep MemoryRepresentation, base unsafe.Pointer, capacity, stride int, opts ...Option) (*BufferBinding, error) {
	if rep == RepString {
		return nil, errs.New(errs.KindBadBuffer, "Bind does not support RepString; use BindStrings")
	}
	size := rep.elementSize()
	if stride < size {
		return nil, errs.New(errs.KindBadBuffer, "stride %d smaller than element size %d for %s", stride, size, rep)
	}

	b := &BufferBinding{path: path, rep: rep, base: base, stride: stride, capacity: capacity}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// BindStrings constructs a binding over a growable sequence of strings.
// The writer side reads up to len(*values) entries; the reader side
// appends to *values.
func BindStrings(path string, values *[]string, opts ...Option) (*BufferBinding, error) {
	b := &BufferBinding{path: path, rep: RepString, strings: values, capacity: len(*values)}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

func (b *BufferBinding) Path() string                         { return b.path }
func (b *BufferBinding) Representation() MemoryRepresentation { return b.rep }
func (b *BufferBinding) Capacity() int                        { return b.capacity }
func (b *BufferBinding) Stride() int                          { return b.stride }
func (b *BufferBinding) NextIndex() int                       { return b.nextIndex }
func (b *BufferBinding) DoConversion() bool                   { return b.doConversion }
func (b *BufferBinding) DoScaling() bool                      { return b.doScaling }

// Rewind resets the sequential cursor to the start of the bound array.
func (b *BufferBinding) Rewind() { b.nextIndex = 0 }

// CheckCompatible requires b and other to agree on path, representation,
// capacity, conversion/scaling flags, and stride (spec.md §4.2), used when
// a writer/reader is handed a replacement buffer set mid-stream.
func (b *BufferBinding) CheckCompatible(other *BufferBinding) error {
	if b.path != other.path || b.rep != other.rep || b.capacity != other.capacity ||
		b.doConversion != other.doConversion || b.doScaling != other.doScaling || b.stride != other.stride {
		return errs.New(errs.KindBufferSizeMismatch, "buffer %q incompatible with its replacement", b.path)
	}

	return nil
}

func (b *BufferBinding) elementPointer(i int) unsafe.Pointer {
	return unsafe.Add(b.base, i*b.stride) //nolint:gosec
}

func (b *BufferBinding) exhausted() error {
	return errs.New(errs.KindBadBuffer, "buffer %q exhausted at index %d of %d", b.path, b.nextIndex, b.capacity)
}

func (b *BufferBinding) mismatch() error {
	return errs.New(errs.KindTypeMismatch, "buffer %q: representation %s not usable here", b.path, b.rep)
}

func round(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}

	return int64(f - 0.5)
}
