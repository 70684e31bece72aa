package pdfio

import (
	"bytes"
	"fmt"
	"os"
)

// WriteBlankPage writes a minimal one-page PDF with an empty content stream
// and the given media box size in points. pdfcpu's api surface has no call
// for creating a standalone blank page file, so we emit the four objects by
// hand; the result round-trips through pdfcpu's parser and merge.
func WriteBlankPage(path string, width, height float64) error {
	return os.WriteFile(path, blankPageBytes(width, height), 0o644)
}

func blankPageBytes(width, height float64) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	obj(fmt.Sprintf("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << >> /Contents 4 0 R >>\nendobj\n", width, height))
	obj("4 0 obj\n<< /Length 0 >>\nstream\n\nendstream\nendobj\n")

	xref := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		// xref entries are fixed-width 20 byte records
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
