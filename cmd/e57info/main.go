// Command e57info opens an E57 file and prints its header and metadata
// tree, a minimal runnable demonstration of the library surface (spec.md
// §6): open, navigate the node tree by walking Children/Prototype/Codecs,
// read scalar leaf values.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-e57/e57fmt"
	"github.com/go-e57/e57fmt/format"
	"github.com/go-e57/e57fmt/node"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.e57>\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		log.Fatal(err)
	}
}

func run(path string) error {
	store, err := os.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := e57fmt.Open(store)
	if err != nil {
		return err
	}

	h := f.PagedFile().Header()
	fmt.Printf("e57fmt file %q\n", path)
	fmt.Printf("  version:           %d.%d\n", h.Major, h.Minor)
	fmt.Printf("  page size:         %d bytes\n", h.PageSize)
	fmt.Printf("  physical length:   %d bytes\n", h.FilePhysicalLength)
	fmt.Printf("  xml section:       offset=%d length=%d\n", h.XMLPhysicalOffset, h.XMLLogicalLength)
	fmt.Println()
	fmt.Println("node tree:")

	printNode(f.Root(), "", "root")

	return nil
}

func printNode(n node.Node, indent, label string) {
	switch n.Kind() {
	case format.KindStructure:
		fmt.Printf("%s%s: Structure\n", indent, label)
		for _, c := range n.Children() {
			printNode(c, indent+"  ", c.Name())
		}

	case format.KindVector:
		kind := "Vector"
		if n.IsHeterogeneous() {
			kind = "Vector (heterogeneous)"
		}
		fmt.Printf("%s%s: %s, %d children\n", indent, label, kind, n.ChildCount())
		for _, c := range n.Children() {
			printNode(c, indent+"  ", c.Name())
		}

	case format.KindCompressedVector:
		fmt.Printf("%s%s: CompressedVector, %d records, section offset=%d\n", indent, label, n.RecordCount(), n.BinarySectionLogicalStart())
		printNode(n.Prototype(), indent+"  ", "prototype")
		printNode(n.Codecs(), indent+"  ", "codecs")

	case format.KindInteger:
		value, min, max := n.IntegerValue()
		fmt.Printf("%s%s: Integer value=%d [%d, %d]\n", indent, label, value, min, max)

	case format.KindScaledInteger:
		raw, min, max, scale, offset := n.ScaledIntegerRaw()
		fmt.Printf("%s%s: ScaledInteger raw=%d [%d, %d] scale=%g offset=%g value=%g\n",
			indent, label, raw, min, max, scale, offset, n.ScaledIntegerValue())

	case format.KindFloat:
		value, min, max, precision := n.FloatValue()
		fmt.Printf("%s%s: Float(%s) value=%g [%g, %g]\n", indent, label, precision, value, min, max)

	case format.KindString:
		fmt.Printf("%s%s: String %q\n", indent, label, n.StringValue())

	case format.KindBlob:
		fmt.Printf("%s%s: Blob %d bytes, section offset=%d length=%d\n",
			indent, label, n.BlobByteCount(), n.BinarySectionLogicalStart(), n.BlobSectionLength())
	}
}
