package node

import (
	"strconv"
	"strings"

	"github.com/go-e57/e57fmt/errs"
)

// segment is one element of a parsed path: either a named element
// (optionally namespace-prefixed) or a decimal index into a Vector.
type segment struct {
	name    string
	prefix  string
	isIndex bool
	index   int
}

// parsePath splits a path string into segments and reports whether it was
// absolute (leading '/'). Each element must be a legal NCName (with an
// optional "prefix:" namespace) or a non-negative decimal index.
func parsePath(path string) (segments []segment, absolute bool, err error) {
	if path == "" {
		return nil, false, errs.New(errs.KindBadPath, "empty path")
	}

	absolute = path[0] == '/'
	trimmed := path
	if absolute {
		trimmed = trimmed[1:]
	}
	trimmed = strings.TrimSuffix(trimmed, "/")

	if trimmed == "" {
		return nil, absolute, nil
	}

	parts := strings.Split(trimmed, "/")
	segments = make([]segment, 0, len(parts))
	for _, p := range parts {
		seg, serr := parseSegment(p)
		if serr != nil {
			return nil, false, serr
		}
		segments = append(segments, seg)
	}

	return segments, absolute, nil
}

func parseSegment(p string) (segment, error) {
	if p == "" {
		return segment{}, errs.New(errs.KindBadPath, "empty path element")
	}

	if n, err := strconv.Atoi(p); err == nil {
		if n < 0 {
			return segment{}, errs.New(errs.KindBadPath, "negative index %q", p)
		}

		return segment{isIndex: true, index: n, name: p}, nil
	}

	prefix := ""
	local := p
	if i := strings.IndexByte(p, ':'); i >= 0 {
		prefix = p[:i]
		local = p[i+1:]
		if !isNCName(prefix) {
			return segment{}, errs.New(errs.KindBadPath, "illegal namespace prefix %q", prefix)
		}
	}

	if !isNCName(local) {
		return segment{}, errs.New(errs.KindBadPath, "illegal element name %q", p)
	}

	return segment{name: local, prefix: prefix}, nil
}

// isNCName reports whether s is a legal XML NCName: a letter or underscore
// followed by letters, digits, '-', '_', or '.'.
func isNCName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return true
}

// qualifiedName renders a segment's key as it appears in a container
// ("prefix:name", a bare name, or a decimal index).
func (s segment) qualifiedName() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	if s.prefix != "" {
		return s.prefix + ":" + s.name
	}

	return s.name
}
