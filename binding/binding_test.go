package binding_test

import (
	"testing"

	"github.com/go-e57/e57fmt/binding"
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/stretchr/testify/require"
)

func TestBindInt32Slice_GetNextInt64_ExactMatch(t *testing.T) {
	data := []int32{1, 2, 3}
	b, err := binding.BindInt32Slice("x", data, binding.WithConversion())
	require.NoError(t, err)

	require.NoError(t, b.CheckAgainstKind(format.KindInteger, 0))

	for _, want := range data {
		got, err := b.GetNextInt64(-100, 100)
		require.NoError(t, err)
		require.Equal(t, int64(want), got)
	}

	_, err = b.GetNextInt64(-100, 100)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindBadBuffer))
}

func TestBindInt32Slice_Rewind(t *testing.T) {
	data := []int32{7, 8}
	b, err := binding.BindInt32Slice("x", data, binding.WithConversion())
	require.NoError(t, err)

	_, err = b.GetNextInt64(0, 100)
	require.NoError(t, err)
	b.Rewind()

	got, err := b.GetNextInt64(0, 100)
	require.NoError(t, err)
	require.Equal(t, int64(7), got)
}

func TestBindInt64Slice_GetNextInt64_RangeCheck(t *testing.T) {
	data := []int64{500}
	b, err := binding.BindInt64Slice("x", data)
	require.NoError(t, err)

	_, err = b.GetNextInt64(0, 100)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindValueOutOfBounds))
}

func TestCheckAgainstKind_Integer_RejectsWithoutConversion(t *testing.T) {
	data := []int32{1}
	b, err := binding.BindInt32Slice("x", data)
	require.NoError(t, err)

	err = b.CheckAgainstKind(format.KindInteger, 0)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindTypeMismatch))
}

func TestCheckAgainstKind_Integer_AllowsWithConversion(t *testing.T) {
	data := []int32{1}
	b, err := binding.BindInt32Slice("x", data, binding.WithConversion())
	require.NoError(t, err)

	require.NoError(t, b.CheckAgainstKind(format.KindInteger, 0))
}

func TestFloatBinding_RoundTrip(t *testing.T) {
	data := []float64{1.5, -2.25}
	b, err := binding.BindFloat64Slice("x", data)
	require.NoError(t, err)
	require.NoError(t, b.CheckAgainstKind(format.KindFloat, format.Double))

	for _, want := range data {
		got, err := b.GetNextFloat64(false)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFloatBinding_PrecisionMismatchWithoutConversion(t *testing.T) {
	data := []float32{1.5}
	b, err := binding.BindFloat32Slice("x", data)
	require.NoError(t, err)

	err = b.CheckAgainstKind(format.KindFloat, format.Double)
	require.Error(t, err)
}

func TestScaledIntegerBinding_RoundTrip(t *testing.T) {
	data := []float64{10.0, 10.5}
	b, err := binding.BindFloat64Slice("x", data, binding.WithScaling(0.5, 0))
	require.NoError(t, err)
	require.NoError(t, b.CheckAgainstKind(format.KindScaledInteger, 0))

	raw, err := b.GetNextScaledRaw(0, 100)
	require.NoError(t, err)
	require.Equal(t, int64(20), raw)

	raw, err = b.GetNextScaledRaw(0, 100)
	require.NoError(t, err)
	require.Equal(t, int64(21), raw)
}

func TestScaledIntegerBinding_RejectsOutOfRange(t *testing.T) {
	data := []float64{1000.0}
	b, err := binding.BindFloat64Slice("x", data, binding.WithScaling(1, 0))
	require.NoError(t, err)

	_, err = b.GetNextScaledRaw(0, 100)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindValueOutOfBounds))
}

func TestStringBinding_WriterSide(t *testing.T) {
	data := []string{"a", "b"}
	b, err := binding.BindStrings("x", &data)
	require.NoError(t, err)
	require.NoError(t, b.CheckAgainstKind(format.KindString, 0))

	got, err := b.GetNextString()
	require.NoError(t, err)
	require.Equal(t, "a", got)
}

func TestStringBinding_ReaderSideGrows(t *testing.T) {
	var data []string
	b, err := binding.BindStrings("x", &data)
	require.NoError(t, err)

	require.NoError(t, b.SetNextString("hello"))
	require.NoError(t, b.SetNextString("world"))
	require.Equal(t, []string{"hello", "world"}, data)
}

func TestCheckCompatible(t *testing.T) {
	a, err := binding.BindInt32Slice("x", []int32{1, 2})
	require.NoError(t, err)
	b, err := binding.BindInt32Slice("x", []int32{3, 4})
	require.NoError(t, err)
	require.NoError(t, a.CheckCompatible(b))

	c, err := binding.BindInt32Slice("y", []int32{3, 4})
	require.NoError(t, err)
	require.Error(t, a.CheckCompatible(c))
}
