package vector

import "github.com/go-e57/e57fmt/codec"

// config holds the per-leaf codec-name selections passed to NewWriter and
// NewReader. The codecs Vector's own on-disk shape is one of spec.md §9's
// open questions ("design reserves a dispatch point keyed by codec-name
// string" without specifying how the Vector's children map to it), so
// selection here is taken directly from the caller rather than parsed out
// of cv.Codecs() at this layer.
type config struct {
	codecs map[string]codec.Name
}

func newConfig(opts []Option) *config {
	cfg := &config{codecs: map[string]codec.Name{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a Writer or Reader at construction time.
type Option func(*config)

// WithCodec selects the named codec for one prototype leaf's bytestream,
// wrapping its bitpack-encoded bytes with codec.Compress/Decompress. Leaves
// with no WithCodec option use codec.Bitpack (no extra compression).
func WithCodec(leafPath string, name codec.Name) Option {
	return func(cfg *config) { cfg.codecs[leafPath] = name }
}

func (cfg *config) codecFor(leafPath string) codec.Name {
	return cfg.codecs[leafPath]
}
