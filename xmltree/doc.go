// Package xmltree implements the XML projection of a node tree described
// by spec.md §4.1 as "contract only": each node variant serializes as an
// element with a fixed tag (for Structure children, the child's own
// qualified name; for anonymous Vector children and the file root, a
// name derived from the node's kind) and a small attribute set carrying
// its bounds/scale/offset/precision/section-offset fields. Namespace
// prefixes used in qualified names are declared as xmlns:prefix
// attributes on the root element and validated against the File's
// namespace registry on parse; an unknown prefix is a errs.KindBadXML
// failure.
//
// This package deliberately does not attempt to reproduce the full ASTM
// E57 XML schema (attribute ordering, whitespace, CDATA conventions) —
// only enough structure for a round trip through Marshal/Unmarshal.
package xmltree
