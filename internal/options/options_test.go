package options_test

import (
	"errors"
	"testing"

	"github.com/go-e57/e57fmt/internal/options"
	"github.com/stretchr/testify/require"
)

type config struct {
	value int
}

func TestApply_RunsInOrder(t *testing.T) {
	cfg := &config{}

	setTo := func(v int) *options.Func[*config] {
		return options.NoError(func(c *config) { c.value = v })
	}

	require.NoError(t, options.Apply(cfg, setTo(1), setTo(2), setTo(3)))
	require.Equal(t, 3, cfg.value)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &config{}
	boom := errors.New("boom")

	failing := options.New(func(c *config) error { return boom })
	setTo5 := options.NoError(func(c *config) { c.value = 5 })

	err := options.Apply(cfg, failing, setTo5)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cfg.value)
}
