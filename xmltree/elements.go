package xmltree

import "github.com/go-e57/e57fmt/format"

// rootElement is the file root Structure's fixed tag; unlike other
// Structure children it has no name of its own to serialize under.
const rootElement = "e57Root"

const (
	attrType               = "type"
	attrMinimum            = "minimum"
	attrMaximum            = "maximum"
	attrScale              = "scale"
	attrOffset             = "offset"
	attrPrecision          = "precision"
	attrAllowHeterogeneous = "allowHeterogeneous"
	attrRecordCount        = "recordCount"
	attrFileOffset         = "fileOffset"
	attrLength             = "length"
	attrByteCount          = "byteCount"
)

func elementForKind(k format.NodeKind) string {
	return k.String()
}

func kindForElement(tag string) (format.NodeKind, bool) {
	switch tag {
	case "Structure":
		return format.KindStructure, true
	case "Vector":
		return format.KindVector, true
	case "CompressedVector":
		return format.KindCompressedVector, true
	case "Integer":
		return format.KindInteger, true
	case "ScaledInteger":
		return format.KindScaledInteger, true
	case "Float":
		return format.KindFloat, true
	case "String":
		return format.KindString, true
	case "Blob":
		return format.KindBlob, true
	default:
		return 0, false
	}
}
