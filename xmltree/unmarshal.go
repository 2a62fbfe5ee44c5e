package xmltree

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
)

// Unmarshal parses data's XML projection into f's tree, attaching
// everything under f.Root() (which must still be the empty Structure
// File.New leaves it as). Namespace prefixes declared on the root element
// are registered on f; any other prefix used in a qualified name that
// isn't registered fails with errs.KindBadXML.
func Unmarshal(f *node.File, data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	start, err := firstStart(dec)
	if err != nil {
		return err
	}
	if start.Name.Local != rootElement {
		return errs.New(errs.KindBadXML, "root element is %q, want %q", start.Name.Local, rootElement)
	}

	for _, a := range start.Attr {
		if prefix, ok := strings.CutPrefix(a.Name.Local, "xmlns:"); ok {
			if err := f.RegisterNamespace(prefix, a.Value); err != nil {
				return err
			}
		}
	}

	return parseStructureChildren(dec, f, f.Root())
}

func firstStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, errs.Wrap(errs.KindBadXML, err, "reading root element")
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func checkPrefix(f *node.File, tag string) error {
	prefix, _, ok := strings.Cut(tag, ":")
	if !ok {
		return nil
	}
	if !f.KnownNamespacePrefix(prefix) {
		return errs.New(errs.KindBadXML, "unknown namespace prefix %q in %q", prefix, tag)
	}

	return nil
}

// parseStructureChildren reads Structure-style children (each with its own
// name as tag) until the enclosing element's end tag, attaching each to
// parent via Set.
func parseStructureChildren(dec *xml.Decoder, f *node.File, parent node.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return errs.Wrap(errs.KindBadXML, err, "reading %q children", parent.Name())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := checkPrefix(f, t.Name.Local); err != nil {
				return err
			}
			child, err := parseElement(dec, f, t)
			if err != nil {
				return err
			}
			if err := parent.Set(t.Name.Local, child, false); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseVectorChildren reads anonymous, order-significant children until
// the enclosing element's end tag, appending each to parent.
func parseVectorChildren(dec *xml.Decoder, f *node.File, parent node.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return errs.Wrap(errs.KindBadXML, err, "reading vector children")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, f, t)
			if err != nil {
				return err
			}
			if err := parent.Append(child); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", errs.Wrap(errs.KindBadXML, err, "reading element text")
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// skipToEnd discards tokens until the enclosing element's end tag, used
// for leaves (Blob) that carry no text content.
func skipToEnd(dec *xml.Decoder) error {
	_, err := readText(dec)

	return err
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}

	return m
}

func parseElement(dec *xml.Decoder, f *node.File, start xml.StartElement) (node.Node, error) {
	attrs := attrMap(start.Attr)
	kindStr, ok := attrs[attrType]
	if !ok {
		return node.Node{}, errs.New(errs.KindBadXML, "<%s> missing %q attribute", start.Name.Local, attrType)
	}
	kind, ok := kindForElement(kindStr)
	if !ok {
		return node.Node{}, errs.New(errs.KindBadXML, "<%s> has unknown type %q", start.Name.Local, kindStr)
	}

	switch kind {
	case format.KindStructure:
		n := f.NewStructure()
		if err := parseStructureChildren(dec, f, n); err != nil {
			return node.Node{}, err
		}

		return n, nil

	case format.KindVector:
		n := f.NewVector(attrs[attrAllowHeterogeneous] == "true")
		if err := parseVectorChildren(dec, f, n); err != nil {
			return node.Node{}, err
		}

		return n, nil

	case format.KindCompressedVector:
		return parseCompressedVector(dec, f, attrs)

	case format.KindInteger:
		min, err := parseIntAttr(attrs, attrMinimum)
		if err != nil {
			return node.Node{}, err
		}
		max, err := parseIntAttr(attrs, attrMaximum)
		if err != nil {
			return node.Node{}, err
		}
		text, err := readText(dec)
		if err != nil {
			return node.Node{}, err
		}
		v, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, perr, "parsing Integer value %q", text)
		}

		return f.NewInteger(v, min, max), nil

	case format.KindScaledInteger:
		min, err := parseIntAttr(attrs, attrMinimum)
		if err != nil {
			return node.Node{}, err
		}
		max, err := parseIntAttr(attrs, attrMaximum)
		if err != nil {
			return node.Node{}, err
		}
		scale, err := parseFloatAttr(attrs, attrScale)
		if err != nil {
			return node.Node{}, err
		}
		offset, err := parseFloatAttr(attrs, attrOffset)
		if err != nil {
			return node.Node{}, err
		}
		text, err := readText(dec)
		if err != nil {
			return node.Node{}, err
		}
		raw, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, perr, "parsing ScaledInteger value %q", text)
		}

		return f.NewScaledInteger(raw, min, max, scale, offset), nil

	case format.KindFloat:
		min, err := parseFloatAttr(attrs, attrMinimum)
		if err != nil {
			return node.Node{}, err
		}
		max, err := parseFloatAttr(attrs, attrMaximum)
		if err != nil {
			return node.Node{}, err
		}
		precision := format.Double
		if attrs[attrPrecision] == "single" {
			precision = format.Single
		}
		text, err := readText(dec)
		if err != nil {
			return node.Node{}, err
		}
		v, perr := strconv.ParseFloat(text, 64)
		if perr != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, perr, "parsing Float value %q", text)
		}

		return f.NewFloat(v, min, max, precision)

	case format.KindString:
		text, err := readText(dec)
		if err != nil {
			return node.Node{}, err
		}

		return f.NewString(text), nil

	case format.KindBlob:
		byteCount, err := parseUintAttr(attrs, attrByteCount)
		if err != nil {
			return node.Node{}, err
		}
		fileOffset, err := parseUintAttr(attrs, attrFileOffset)
		if err != nil {
			return node.Node{}, err
		}
		length, err := parseUintAttr(attrs, attrLength)
		if err != nil {
			return node.Node{}, err
		}
		if err := skipToEnd(dec); err != nil {
			return node.Node{}, err
		}

		n := f.NewBlob(byteCount)
		if err := n.SetBinarySectionLogicalStart(fileOffset); err != nil {
			return node.Node{}, err
		}
		if err := n.SetBlobSectionLength(length); err != nil {
			return node.Node{}, err
		}

		return n, nil

	default:
		return node.Node{}, errs.New(errs.KindBadXML, "<%s> has unhandled type %q", start.Name.Local, kindStr)
	}
}

func parseCompressedVector(dec *xml.Decoder, f *node.File, attrs map[string]string) (node.Node, error) {
	var proto, codecs node.Node
	haveProto, haveCodecs := false, false

	for !haveProto || !haveCodecs {
		tok, err := dec.Token()
		if err != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, err, "reading CompressedVector children")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		child, err := parseElement(dec, f, se)
		if err != nil {
			return node.Node{}, err
		}
		switch se.Name.Local {
		case "prototype":
			proto, haveProto = child, true
		case "codecs":
			codecs, haveCodecs = child, true
		default:
			return node.Node{}, errs.New(errs.KindBadXML, "unexpected CompressedVector child <%s>", se.Name.Local)
		}
	}

	n, err := f.NewCompressedVector(proto, codecs)
	if err != nil {
		return node.Node{}, err
	}
	if rc, ok := attrs[attrRecordCount]; ok {
		v, perr := strconv.ParseUint(rc, 10, 64)
		if perr != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, perr, "parsing recordCount %q", rc)
		}
		if err := n.SetRecordCount(v); err != nil {
			return node.Node{}, err
		}
	}
	if fo, ok := attrs[attrFileOffset]; ok {
		v, perr := strconv.ParseUint(fo, 10, 64)
		if perr != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, perr, "parsing fileOffset %q", fo)
		}
		if err := n.SetBinarySectionLogicalStart(v); err != nil {
			return node.Node{}, err
		}
	}

	return skipToCompressedVectorEnd(dec, n)
}

// skipToCompressedVectorEnd discards any trailing whitespace up to the
// CompressedVector's own end tag.
func skipToCompressedVectorEnd(dec *xml.Decoder, n node.Node) (node.Node, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return node.Node{}, errs.Wrap(errs.KindBadXML, err, "reading CompressedVector close")
		}
		if _, ok := tok.(xml.EndElement); ok {
			return n, nil
		}
	}
}

func parseIntAttr(attrs map[string]string, name string) (int64, error) {
	s, ok := attrs[name]
	if !ok {
		return 0, errs.New(errs.KindBadXML, "missing %q attribute", name)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.KindBadXML, err, "parsing %q attribute %q", name, s)
	}

	return v, nil
}

func parseUintAttr(attrs map[string]string, name string) (uint64, error) {
	s, ok := attrs[name]
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.KindBadXML, err, "parsing %q attribute %q", name, s)
	}

	return v, nil
}

func parseFloatAttr(attrs map[string]string, name string) (float64, error) {
	s, ok := attrs[name]
	if !ok {
		return 0, errs.New(errs.KindBadXML, "missing %q attribute", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Wrap(errs.KindBadXML, err, "parsing %q attribute %q", name, s)
	}

	return v, nil
}
