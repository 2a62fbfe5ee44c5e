package pagedfile

import (
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/internal/options"
)

// DefaultPageSize is used by Create when WithPageSize is not given.
const DefaultPageSize = 4096

// Option configures a PagedFile at Open/Create time.
type Option = options.Option[*config]

type config struct {
	pageSize       uint32
	checksumPolicy format.ReadChecksumPolicy
	sparseRate     int
}

func defaultConfig() *config {
	return &config{
		pageSize:       DefaultPageSize,
		checksumPolicy: format.ChecksumAll,
		sparseRate:     8,
	}
}

// WithPageSize sets the page size used by Create. Must be a multiple of
// 1024 and at least 1024 (spec.md §6). Ignored by Open, which reads the
// page size back from the existing header.
func WithPageSize(size uint32) Option {
	return options.New(func(c *config) error {
		if size < 1024 || size%1024 != 0 {
			return errs.New(errs.KindInternalError, "page size %d must be a multiple of 1024, >= 1024", size)
		}
		c.pageSize = size

		return nil
	})
}

// WithChecksumPolicy sets how aggressively ReadAt verifies page trailers.
func WithChecksumPolicy(policy format.ReadChecksumPolicy) Option {
	return options.NoError(func(c *config) {
		c.checksumPolicy = policy
	})
}

// WithSparseRate sets the 1-in-N page sampling rate used by
// format.ChecksumSparse. The external format standard doesn't pin this
// down (spec.md §9 Open Questions); 8 is a reasonable default.
func WithSparseRate(n int) Option {
	return options.NoError(func(c *config) {
		if n > 0 {
			c.sparseRate = n
		}
	})
}
