package vector

import (
	"github.com/go-e57/e57fmt/binding"
	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/internal/bitpack"
	"github.com/go-e57/e57fmt/node"
)

// leafEncoder stages one prototype leaf's values into its bitpack
// bytestream as the writer pulls records from the bound BufferBinding.
// flush is called at every packet seal, not just at close, so every
// packet's bytestream ends on a whole-byte, whole-record boundary.
type leafEncoder interface {
	appendFromBinding(b *binding.BufferBinding) error
	stagedBytes() int
	flush() []byte
}

// leafDecoder decodes one prototype leaf's bytestream, feeding decoded
// values to the bound BufferBinding (decodeAndStore) or discarding them
// while still advancing past them (discard, used by seek).
type leafDecoder interface {
	decodeAndStore(data []byte, want int, b *binding.BufferBinding) (consumed, produced int, err error)
	discard(data []byte, want int) (consumed int, err error)
}

type integerCodec struct {
	min, max             int64
	scaled               bool
	scaledMin, scaledMax float64
}

type integerLeafEncoder struct {
	integerCodec
	enc *bitpack.IntegerEncoder
}

func (e *integerLeafEncoder) appendFromBinding(b *binding.BufferBinding) error {
	var raw int64
	var err error
	if e.scaled {
		raw, err = b.GetNextScaledRaw(e.scaledMin, e.scaledMax)
	} else {
		raw, err = b.GetNextInt64(e.min, e.max)
	}
	if err != nil {
		return err
	}
	e.enc.Append(raw)
	return nil
}

func (e *integerLeafEncoder) stagedBytes() int { return e.enc.AvailableBytes() }
func (e *integerLeafEncoder) flush() []byte    { return e.enc.Flush() }

type integerLeafDecoder struct {
	integerCodec
	dec *bitpack.IntegerDecoder
}

func (d *integerLeafDecoder) decodeAndStore(data []byte, want int, b *binding.BufferBinding) (int, int, error) {
	values, consumed, err := d.dec.Decode(data, want)
	if err != nil {
		return consumed, 0, err
	}
	for _, v := range values {
		if d.scaled {
			err = b.SetNextScaledRaw(v)
		} else {
			err = b.SetNextInt64(v)
		}
		if err != nil {
			return consumed, 0, err
		}
	}
	return consumed, len(values), nil
}

func (d *integerLeafDecoder) discard(data []byte, want int) (int, error) {
	_, consumed, err := d.dec.Decode(data, want)
	return consumed, err
}

type floatLeafEncoder struct {
	codec      *bitpack.FloatCodec
	wantSingle bool
	buf        []byte
}

func (e *floatLeafEncoder) appendFromBinding(b *binding.BufferBinding) error {
	v, err := b.GetNextFloat64(e.wantSingle)
	if err != nil {
		return err
	}
	e.buf = e.codec.AppendTo(e.buf, v)
	return nil
}

func (e *floatLeafEncoder) stagedBytes() int { return len(e.buf) }
func (e *floatLeafEncoder) drain() []byte {
	out := e.buf
	e.buf = nil
	return out
}
func (e *floatLeafEncoder) flush() []byte { return e.drain() }

type floatLeafDecoder struct {
	codec      *bitpack.FloatCodec
	wantSingle bool
}

func (d *floatLeafDecoder) decodeAndStore(data []byte, want int, b *binding.BufferBinding) (int, int, error) {
	values, consumed, err := d.codec.Decode(data, want)
	if err != nil {
		return consumed, 0, err
	}
	for _, v := range values {
		if err := b.SetNextFloat64(v, d.wantSingle); err != nil {
			return consumed, 0, err
		}
	}
	return consumed, len(values), nil
}

func (d *floatLeafDecoder) discard(data []byte, want int) (int, error) {
	_, consumed, err := d.codec.Decode(data, want)
	return consumed, err
}

type stringLeafEncoder struct {
	enc *bitpack.StringEncoder
}

func (e *stringLeafEncoder) appendFromBinding(b *binding.BufferBinding) error {
	v, err := b.GetNextString()
	if err != nil {
		return err
	}
	e.enc.Append(v)
	return nil
}

func (e *stringLeafEncoder) stagedBytes() int { return e.enc.AvailableBytes() }
func (e *stringLeafEncoder) flush() []byte    { return e.enc.Flush() }

type stringLeafDecoder struct {
	dec *bitpack.StringDecoder
}

func (d *stringLeafDecoder) decodeAndStore(data []byte, want int, b *binding.BufferBinding) (int, int, error) {
	values, consumed, err := d.dec.Decode(data, want)
	if err != nil {
		return consumed, 0, err
	}
	for _, v := range values {
		if err := b.SetNextString(v); err != nil {
			return consumed, 0, err
		}
	}
	return consumed, len(values), nil
}

func (d *stringLeafDecoder) discard(data []byte, want int) (int, error) {
	_, consumed, err := d.dec.Decode(data, want)
	return consumed, err
}

// newLeafEncoder builds the encoder for one prototype leaf, keyed by its
// NodeKind.
func newLeafEncoder(leaf node.Node) (leafEncoder, error) {
	switch leaf.Kind() {
	case format.KindInteger:
		_, min, max := leaf.IntegerValue()
		return &integerLeafEncoder{
			integerCodec: integerCodec{min: min, max: max},
			enc:          bitpack.NewIntegerEncoder(min, max),
		}, nil
	case format.KindScaledInteger:
		_, min, max, scale, offset := leaf.ScaledIntegerRaw()
		return &integerLeafEncoder{
			integerCodec: integerCodec{
				min: min, max: max, scaled: true,
				scaledMin: float64(min)*scale + offset,
				scaledMax: float64(max)*scale + offset,
			},
			enc: bitpack.NewIntegerEncoder(min, max),
		}, nil
	case format.KindFloat:
		_, _, _, precision := leaf.FloatValue()
		return &floatLeafEncoder{
			codec:      bitpack.NewFloatCodec(precision, endian.GetLittleEndianEngine()),
			wantSingle: precision == format.Single,
		}, nil
	case format.KindString:
		return &stringLeafEncoder{enc: bitpack.NewStringEncoder()}, nil
	default:
		return nil, errs.New(errs.KindTypeMismatch, "prototype leaf %q has unsupported kind %v", leaf.Name(), leaf.Kind())
	}
}

// newLeafDecoder builds the decoder for one prototype leaf, keyed by its
// NodeKind.
func newLeafDecoder(leaf node.Node) (leafDecoder, error) {
	switch leaf.Kind() {
	case format.KindInteger:
		_, min, max := leaf.IntegerValue()
		return &integerLeafDecoder{
			integerCodec: integerCodec{min: min, max: max},
			dec:          bitpack.NewIntegerDecoder(min, max),
		}, nil
	case format.KindScaledInteger:
		_, min, max, scale, offset := leaf.ScaledIntegerRaw()
		return &integerLeafDecoder{
			integerCodec: integerCodec{
				min: min, max: max, scaled: true,
				scaledMin: float64(min)*scale + offset,
				scaledMax: float64(max)*scale + offset,
			},
			dec: bitpack.NewIntegerDecoder(min, max),
		}, nil
	case format.KindFloat:
		_, _, _, precision := leaf.FloatValue()
		return &floatLeafDecoder{
			codec:      bitpack.NewFloatCodec(precision, endian.GetLittleEndianEngine()),
			wantSingle: precision == format.Single,
		}, nil
	case format.KindString:
		return &stringLeafDecoder{dec: bitpack.NewStringDecoder()}, nil
	default:
		return nil, errs.New(errs.KindTypeMismatch, "prototype leaf %q has unsupported kind %v", leaf.Name(), leaf.Kind())
	}
}

// prototypeLeaves returns cv.Prototype()'s immediate children in
// declaration order. Nested structures within a prototype are out of
// scope: real-world CompressedVector prototypes are a flat field list
// (cartesianX, cartesianY, intensity, ...), and the bitpack codecs this
// package drives only handle the four scalar leaf kinds.
func prototypeLeaves(cv node.Node) ([]node.Node, error) {
	proto := cv.Prototype()
	if proto.Kind() != format.KindStructure {
		return nil, errs.New(errs.KindTypeMismatch, "CompressedVector prototype must be a Structure, got %v", proto.Kind())
	}
	return proto.Children(), nil
}

func bindingFor(bindings []*binding.BufferBinding, path string) *binding.BufferBinding {
	for _, b := range bindings {
		if b.Path() == path {
			return b
		}
	}
	return nil
}
