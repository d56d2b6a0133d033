// Package format identifies a document's type from its leading bytes, so
// that callers handed a spreadsheet or a web page instead of a PDF can say
// so plainly rather than surfacing a parser error.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is a recognised document type.
type Format int

const (
	Unknown Format = iota
	PDF
	DOCX
	ODT
	XLSX
	PPTX
	HTML
)

var names = map[Format]string{
	PDF:  "PDF",
	DOCX: "DOCX",
	ODT:  "ODT",
	XLSX: "XLSX",
	PPTX: "PPTX",
	HTML: "HTML",
}

func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return "Unknown"
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
)

// sniffLen is how much of the file is inspected. PDF writers may put junk
// before the header; readers accept the marker anywhere in the first 1K.
const sniffLen = 1024

// Detect inspects r, which holds size bytes, and reports its format.
func Detect(r io.ReaderAt, size int64) (Format, error) {
	head := make([]byte, sniffLen)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	head = head[:n]

	switch {
	case bytes.Contains(head, pdfMagic):
		return PDF, nil
	case bytes.HasPrefix(head, zipMagic):
		return detectZIP(r, size)
	case isHTML(head):
		return HTML, nil
	}
	return Unknown, nil
}

// DetectFile opens path and reports its format.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return Detect(f, info.Size())
}

// RequirePDF returns an error naming the detected format when path is not
// a PDF.
func RequirePDF(path string) error {
	f, err := DetectFile(path)
	if err != nil {
		return err
	}
	if f != PDF {
		return fmt.Errorf("%s: input is %s, not PDF", path, f)
	}
	return nil
}

func isHTML(head []byte) bool {
	s := strings.ToUpper(strings.TrimLeft(string(head), " \t\r\n"))
	switch {
	case strings.HasPrefix(s, "<!DOCTYPE HTML"), strings.HasPrefix(s, "<HTML"):
		return true
	case strings.HasPrefix(s, "<?XML"):
		return strings.Contains(s, "<HTML")
	}
	return false
}

// detectZIP tells the OOXML and OpenDocument containers apart by their
// part names.
func detectZIP(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		mime, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if strings.Contains(string(mime), "opendocument.text") {
			return ODT, nil
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return Unknown, nil
}
