package binding

import "unsafe"

func bindSlice[T any](path string, data []T, rep MemoryRepresentation, opts ...Option) (*BufferBinding, error) {
	var base unsafe.Pointer
	if len(data) > 0 {
		base = unsafe.Pointer(&data[0])
	}

	return Bind(path, rep, base, len(data), int(unsafe.Sizeof(data[0])), opts...) //nolint:gosec
}

func BindInt8Slice(path string, data []int8, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepInt8, opts...)
}

func BindUint8Slice(path string, data []uint8, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepUint8, opts...)
}

func BindInt16Slice(path string, data []int16, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepInt16, opts...)
}

func BindUint16Slice(path string, data []uint16, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepUint16, opts...)
}

func BindInt32Slice(path string, data []int32, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepInt32, opts...)
}

func BindUint32Slice(path string, data []uint32, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepUint32, opts...)
}

func BindInt64Slice(path string, data []int64, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepInt64, opts...)
}

func BindUint64Slice(path string, data []uint64, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepUint64, opts...)
}

func BindBoolSlice(path string, data []bool, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepBool, opts...)
}

func BindFloat32Slice(path string, data []float32, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepSingle, opts...)
}

func BindFloat64Slice(path string, data []float64, opts ...Option) (*BufferBinding, error) {
	return bindSlice(path, data, RepDouble, opts...)
}
