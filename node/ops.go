package node

import (
	"strconv"
	"strings"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
)

// Get resolves path against the File's root. See Node.Resolve for the
// relative form.
func (f *File) Get(path string) (Node, error) {
	return f.Root().Resolve(path)
}

// IsDefined reports whether path resolves to an existing node.
func (f *File) IsDefined(path string) bool {
	_, err := f.Get(path)
	return err == nil
}

// Resolve walks path starting at n (an absolute path ignores n and starts
// at the File root), returning errs.KindBadPath for a malformed path,
// errs.KindNotContainer if an intermediate element is a scalar, or
// errs.KindPathUndefined if traversal reaches a missing element.
func (n Node) Resolve(path string) (Node, error) {
	segs, absolute, err := parsePath(path)
	if err != nil {
		return Node{}, err
	}

	cur := n
	if absolute {
		cur = n.file.Root()
	}

	for _, seg := range segs {
		if !isInsertableContainer(cur.Kind()) && cur.Kind() != format.KindCompressedVector {
			return Node{}, errs.New(errs.KindNotContainer, "%q is not a container", cur.Name())
		}

		next, ok := cur.Child(seg.qualifiedName())
		if !ok {
			return Node{}, errs.New(errs.KindPathUndefined, "no element %q", seg.qualifiedName())
		}
		cur = next
	}

	return cur, nil
}

// PathName returns n's absolute path from its File's root, or "" if n is
// detached.
func (n Node) PathName() string {
	if n.id == n.file.rootID {
		return "/"
	}
	if !n.Attached() {
		return ""
	}

	var parts []string
	cur := n
	for {
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		parts = append(parts, childKey(parent, cur.id))
		cur = parent
	}

	// parts were collected leaf-to-root; reverse into root-to-leaf order.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return "/" + strings.Join(parts, "/")
}

// childKey returns the key under which childID is stored in parent.
func childKey(parent Node, childID nodeID) string {
	e := parent.entry()
	switch e.kind {
	case format.KindStructure:
		for _, c := range e.structure.order {
			if c.id == childID {
				return c.key
			}
		}
	case format.KindVector:
		for i, cid := range e.vector.children {
			if cid == childID {
				return strconv.Itoa(i)
			}
		}
	case format.KindCompressedVector:
		if e.cvector.prototype == childID {
			return "prototype"
		}
		if e.cvector.codecs == childID {
			return "codecs"
		}
	}

	return ""
}

// Set inserts child at path (resolved against n for relative paths, or the
// File root for absolute ones). If autoPathCreate, missing intermediate
// Structures are created. Set validates the entire operation before
// mutating anything, so a failed call leaves the tree unchanged.
func (n Node) Set(path string, child Node, autoPathCreate bool) error {
	segs, absolute, err := parsePath(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return errs.New(errs.KindBadPath, "path has no elements")
	}
	if child.file != n.file {
		return errs.New(errs.KindInternalError, "child belongs to a different File")
	}
	if child.Attached() {
		return errs.New(errs.KindAlreadySet, "node already attached at %q", child.PathName())
	}

	origin := n
	if absolute {
		origin = n.file.Root()
	}

	intermediate := segs[:len(segs)-1]
	terminal := segs[len(segs)-1]

	cur := origin
	createFrom := -1
	for i, seg := range intermediate {
		if !isInsertableContainer(cur.Kind()) {
			return errs.New(errs.KindNotContainer, "%q is not a container", cur.PathName())
		}

		next, ok := cur.Child(seg.qualifiedName())
		if ok {
			cur = next
			continue
		}
		if !autoPathCreate {
			return errs.New(errs.KindPathUndefined, "no element %q", seg.qualifiedName())
		}
		if cur.Kind() != format.KindStructure {
			return errs.New(errs.KindNotContainer, "cannot auto-create a path element under a %s", cur.Kind())
		}

		createFrom = i
		break // every remaining intermediate segment will land under a freshly created, empty Structure
	}

	if createFrom == -1 {
		if !isInsertableContainer(cur.Kind()) {
			return errs.New(errs.KindNotContainer, "%q is not a container", cur.PathName())
		}
		if err := checkInsert(cur, terminal, child); err != nil {
			return err
		}
	}

	// Commit: create any missing intermediate Structures, then attach child.
	cur = origin
	for i, seg := range intermediate {
		if createFrom >= 0 && i < createFrom {
			next, _ := cur.Child(seg.qualifiedName())
			cur = next
			continue
		}
		if createFrom == -1 {
			next, _ := cur.Child(seg.qualifiedName())
			cur = next
			continue
		}

		fresh := cur.file.NewStructure()
		if err := attachChild(cur, seg.qualifiedName(), fresh); err != nil {
			return errs.Wrap(errs.KindInternalError, err, "auto-creating %q", seg.qualifiedName())
		}
		cur = fresh
	}

	return attachChild(cur, terminal.qualifiedName(), child)
}

// Append inserts child under the next auto-numbered key (the decimal
// stringification of the current child count) of a Structure or Vector
// container.
func (n Node) Append(child Node) error {
	if child.file != n.file {
		return errs.New(errs.KindInternalError, "child belongs to a different File")
	}
	if child.Attached() {
		return errs.New(errs.KindAlreadySet, "node already attached")
	}
	if !isInsertableContainer(n.Kind()) {
		return errs.New(errs.KindNotContainer, "%q is not a Structure or Vector", n.PathName())
	}

	key := strconv.Itoa(n.ChildCount())
	if err := checkInsert(n, segment{isIndex: true, index: n.ChildCount(), name: key}, child); err != nil {
		return err
	}

	return attachChild(n, key, child)
}

// checkInsert validates a terminal insertion of child as key under cur
// without mutating anything: AlreadyDefined if key exists, TypeMismatch for
// a homogeneous Vector whose existing children aren't equivalent to child.
func checkInsert(cur Node, key segment, child Node) error {
	if _, ok := cur.Child(key.qualifiedName()); ok {
		return errs.New(errs.KindAlreadyDefined, "%q already defined", key.qualifiedName())
	}

	if cur.Kind() == format.KindVector {
		vd := cur.entry().vector
		if !vd.heterogeneous && len(vd.children) > 0 {
			first := Node{file: cur.file, id: vd.children[0]}
			if !IsTypeEquivalent(first, child) {
				return errs.New(errs.KindTypeMismatch, "child not type-equivalent to vector[0]")
			}
		}
	}

	return nil
}

// attachChild splices child into cur under key, setting parent/name links
// and marking the subtree attached if cur already is.
func attachChild(cur Node, key string, child Node) error {
	e := cur.entry()
	switch e.kind {
	case format.KindStructure:
		e.structure.order = append(e.structure.order, childEntry{id: child.id, key: key})
	case format.KindVector:
		e.vector.children = append(e.vector.children, child.id)
	default:
		return errs.New(errs.KindNotContainer, "%q cannot hold children", cur.PathName())
	}

	ce := child.entry()
	ce.parentID = cur.id
	ce.name = key

	if cur.Attached() {
		child.setAttachedRecursive()
	}

	return nil
}

// setAttachedRecursive marks n and its entire subtree attached. Called when
// a subtree is spliced under an already-attached container, or under a
// CompressedVector's prototype/codecs at construction.
func (n Node) setAttachedRecursive() {
	e := n.entry()
	if e.attached {
		return
	}
	e.attached = true

	switch e.kind {
	case format.KindStructure:
		for _, c := range e.structure.order {
			(Node{file: n.file, id: c.id}).setAttachedRecursive()
		}
	case format.KindVector:
		for _, cid := range e.vector.children {
			(Node{file: n.file, id: cid}).setAttachedRecursive()
		}
	case format.KindCompressedVector:
		(Node{file: n.file, id: e.cvector.prototype}).setAttachedRecursive()
		(Node{file: n.file, id: e.cvector.codecs}).setAttachedRecursive()
	}
}

func isInsertableContainer(k format.NodeKind) bool {
	return k == format.KindStructure || k == format.KindVector
}

// IsTypeEquivalent reports whether a and b have the same variant and,
// for scalars, identical bounds/scale/offset/precision, or, for
// containers, the same child names each pairwise equivalent. Element
// names, values, and attachment status are not compared (spec §3.1).
func IsTypeEquivalent(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	ae, be := a.entry(), b.entry()
	switch ae.kind {
	case format.KindInteger:
		return ae.integer.min == be.integer.min && ae.integer.max == be.integer.max
	case format.KindScaledInteger:
		return ae.scaled.min == be.scaled.min && ae.scaled.max == be.scaled.max &&
			ae.scaled.scale == be.scaled.scale && ae.scaled.offset == be.scaled.offset
	case format.KindFloat:
		return ae.float.min == be.float.min && ae.float.max == be.float.max && ae.float.precision == be.float.precision
	case format.KindString, format.KindBlob:
		return true
	case format.KindStructure:
		if len(ae.structure.order) != len(be.structure.order) {
			return false
		}
		for i, c := range ae.structure.order {
			if c.key != be.structure.order[i].key {
				return false
			}
			if !IsTypeEquivalent(Node{file: a.file, id: c.id}, Node{file: b.file, id: be.structure.order[i].id}) {
				return false
			}
		}

		return true
	case format.KindVector:
		if ae.vector.heterogeneous != be.vector.heterogeneous {
			return false
		}
		if len(ae.vector.children) != len(be.vector.children) {
			return false
		}
		for i, cid := range ae.vector.children {
			if !IsTypeEquivalent(Node{file: a.file, id: cid}, Node{file: b.file, id: be.vector.children[i]}) {
				return false
			}
		}

		return true
	case format.KindCompressedVector:
		return IsTypeEquivalent(a.Prototype(), b.Prototype())
	default:
		return false
	}
}
