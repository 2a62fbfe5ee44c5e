package binding

import (
	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// CheckAgainstKind validates, at bind time, that this binding's
// representation and flags are usable against a prototype leaf of the
// given kind and (for Float) precision. Without doConversion/doScaling a
// representation mismatch is rejected here rather than at the first
// GetNext/SetNext call (spec.md §4.2 "Without doConversion, a type
// mismatch is an error at bind time").
func (b *BufferBinding) CheckAgainstKind(kind format.NodeKind, precision format.Precision) error {
	switch kind {
	case format.KindInteger:
		if b.doScaling {
			return b.mismatch()
		}
		if !b.doConversion {
			if b.rep != RepInt64 {
				return b.mismatch()
			}

			return nil
		}
		if b.rep.isIntegral() || b.rep.isFloat() {
			return nil
		}

		return b.mismatch()

	case format.KindScaledInteger:
		if !b.doScaling {
			return errs.New(errs.KindTypeMismatch, "buffer %q: ScaledInteger leaf requires WithScaling", b.path)
		}
		if !b.rep.isFloat() {
			return b.mismatch()
		}

		return nil

	case format.KindFloat:
		if b.doScaling {
			return b.mismatch()
		}
		want := RepDouble
		if precision == format.Single {
			want = RepSingle
		}
		if !b.doConversion {
			if b.rep != want {
				return b.mismatch()
			}

			return nil
		}
		if b.rep.isFloat() || b.rep.isIntegral() {
			return nil
		}

		return b.mismatch()

	case format.KindString:
		if b.rep != RepString {
			return b.mismatch()
		}

		return nil

	default:
		return errs.New(errs.KindNotContainer, "path %q does not resolve to a bindable scalar leaf", b.path)
	}
}
