package node

import "github.com/go-e57/e57fmt/errs"

// namespaceEntry is one registered (prefix, uri) pair.
type namespaceEntry struct {
	prefix string
	uri    string
}

// namespaceRegistry holds the ordered list of extension namespaces declared
// on a File, plus the two uniqueness indexes the format requires: no prefix
// may be registered twice, and no uri may be registered under two prefixes.
type namespaceRegistry struct {
	entries  []namespaceEntry
	byPrefix map[string]int // prefix -> index into entries
	byURI    map[string]int // uri -> index into entries
}

func newNamespaceRegistry() *namespaceRegistry {
	return &namespaceRegistry{
		byPrefix: make(map[string]int),
		byURI:    make(map[string]int),
	}
}

// Register adds a (prefix, uri) pair, failing if either half collides with
// an existing entry.
func (r *namespaceRegistry) Register(prefix, uri string) error {
	if _, ok := r.byPrefix[prefix]; ok {
		return errs.New(errs.KindBadXML, "namespace prefix %q already registered", prefix)
	}
	if _, ok := r.byURI[uri]; ok {
		return errs.New(errs.KindBadXML, "namespace uri %q already registered", uri)
	}

	r.byPrefix[prefix] = len(r.entries)
	r.byURI[uri] = len(r.entries)
	r.entries = append(r.entries, namespaceEntry{prefix: prefix, uri: uri})

	return nil
}

// Resolve returns the uri registered for prefix.
func (r *namespaceRegistry) Resolve(prefix string) (string, bool) {
	idx, ok := r.byPrefix[prefix]
	if !ok {
		return "", false
	}

	return r.entries[idx].uri, true
}

// Prefix returns the prefix registered for uri.
func (r *namespaceRegistry) Prefix(uri string) (string, bool) {
	idx, ok := r.byURI[uri]
	if !ok {
		return "", false
	}

	return r.entries[idx].prefix, true
}

// KnownPrefix reports whether prefix is registered, the empty prefix always
// counts as known (the default/no namespace).
func (r *namespaceRegistry) KnownPrefix(prefix string) bool {
	if prefix == "" {
		return true
	}
	_, ok := r.byPrefix[prefix]

	return ok
}

// Entries returns the registered namespaces in registration order.
func (r *namespaceRegistry) Entries() []namespaceEntry {
	out := make([]namespaceEntry, len(r.entries))
	copy(out, r.entries)

	return out
}
