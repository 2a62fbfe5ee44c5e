package xmltree

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/go-e57/e57fmt/errs"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
)

// Marshal serializes f's tree to its XML projection.
func Marshal(f *node.File) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	attrs := make([]xml.Attr, 0, len(f.Namespaces()))
	for _, ns := range f.Namespaces() {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.Prefix}, Value: ns.URI})
	}

	if err := marshalNode(enc, f.Root(), rootElement, attrs); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, errs.Wrap(errs.KindBadXML, err, "flushing XML encoder")
	}

	return buf.Bytes(), nil
}

func marshalNode(enc *xml.Encoder, n node.Node, tag string, extraAttrs []xml.Attr) error {
	attrs := append([]xml.Attr{{Name: xml.Name{Local: attrType}, Value: n.Kind().String()}}, extraAttrs...)
	attrs = append(attrs, scalarAttrs(n)...)

	start := xml.StartElement{Name: xml.Name{Local: tag}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return errs.Wrap(errs.KindBadXML, err, "encoding <%s>", tag)
	}

	switch n.Kind() {
	case format.KindStructure:
		for _, c := range n.Children() {
			if err := marshalNode(enc, c, c.Name(), nil); err != nil {
				return err
			}
		}
	case format.KindVector:
		for _, c := range n.Children() {
			if err := marshalNode(enc, c, elementForKind(c.Kind()), nil); err != nil {
				return err
			}
		}
	case format.KindCompressedVector:
		if err := marshalNode(enc, n.Prototype(), "prototype", nil); err != nil {
			return err
		}
		if err := marshalNode(enc, n.Codecs(), "codecs", nil); err != nil {
			return err
		}
	case format.KindInteger, format.KindScaledInteger, format.KindFloat, format.KindString:
		if err := enc.EncodeToken(xml.CharData(scalarText(n))); err != nil {
			return errs.Wrap(errs.KindBadXML, err, "encoding <%s> text", tag)
		}
	}

	if err := enc.EncodeToken(start.End()); err != nil {
		return errs.Wrap(errs.KindBadXML, err, "encoding </%s>", tag)
	}

	return nil
}

// scalarText is the element's text content for the leaf kinds that carry
// one: the Integer/ScaledInteger raw stored value, the Float value, or the
// String value verbatim.
func scalarText(n node.Node) string {
	switch n.Kind() {
	case format.KindInteger:
		v, _, _ := n.IntegerValue()

		return strconv.FormatInt(v, 10)
	case format.KindScaledInteger:
		raw, _, _, _, _ := n.ScaledIntegerRaw()

		return strconv.FormatInt(raw, 10)
	case format.KindFloat:
		v, _, _, _ := n.FloatValue()

		return strconv.FormatFloat(v, 'g', -1, 64)
	case format.KindString:
		return n.StringValue()
	default:
		return ""
	}
}

func scalarAttrs(n node.Node) []xml.Attr {
	switch n.Kind() {
	case format.KindInteger:
		_, min, max := n.IntegerValue()

		return []xml.Attr{
			{Name: xml.Name{Local: attrMinimum}, Value: strconv.FormatInt(min, 10)},
			{Name: xml.Name{Local: attrMaximum}, Value: strconv.FormatInt(max, 10)},
		}
	case format.KindScaledInteger:
		_, min, max, scale, offset := n.ScaledIntegerRaw()

		return []xml.Attr{
			{Name: xml.Name{Local: attrMinimum}, Value: strconv.FormatInt(min, 10)},
			{Name: xml.Name{Local: attrMaximum}, Value: strconv.FormatInt(max, 10)},
			{Name: xml.Name{Local: attrScale}, Value: strconv.FormatFloat(scale, 'g', -1, 64)},
			{Name: xml.Name{Local: attrOffset}, Value: strconv.FormatFloat(offset, 'g', -1, 64)},
		}
	case format.KindFloat:
		_, min, max, precision := n.FloatValue()

		return []xml.Attr{
			{Name: xml.Name{Local: attrMinimum}, Value: strconv.FormatFloat(min, 'g', -1, 64)},
			{Name: xml.Name{Local: attrMaximum}, Value: strconv.FormatFloat(max, 'g', -1, 64)},
			{Name: xml.Name{Local: attrPrecision}, Value: precision.String()},
		}
	case format.KindVector:
		return []xml.Attr{
			{Name: xml.Name{Local: attrAllowHeterogeneous}, Value: strconv.FormatBool(n.IsHeterogeneous())},
		}
	case format.KindCompressedVector:
		return []xml.Attr{
			{Name: xml.Name{Local: attrRecordCount}, Value: strconv.FormatUint(n.RecordCount(), 10)},
			{Name: xml.Name{Local: attrFileOffset}, Value: strconv.FormatUint(n.BinarySectionLogicalStart(), 10)},
		}
	case format.KindBlob:
		return []xml.Attr{
			{Name: xml.Name{Local: attrByteCount}, Value: strconv.FormatUint(n.BlobByteCount(), 10)},
			{Name: xml.Name{Local: attrFileOffset}, Value: strconv.FormatUint(n.BinarySectionLogicalStart(), 10)},
			{Name: xml.Name{Local: attrLength}, Value: strconv.FormatUint(n.BlobSectionLength(), 10)},
		}
	default:
		return nil
	}
}
