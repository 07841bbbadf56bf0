package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	ierr "github.com/flexprice/propbill/internal/errors"
)

const (
	mainDocumentPart = "word/document.xml"
	wordNamespace    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Document is an opened WordprocessingML package. The main document part and
// every header/footer part are parsed for editing; all other parts are carried
// through unchanged.
type Document struct {
	entries []*entry
}

type entry struct {
	name  string
	hdr   zip.FileHeader
	raw   []byte
	xml   *etree.Document
	dirty bool
}

// Open parses a .docx package
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invoice template is not a valid document").
			Mark(ierr.ErrTemplate)
	}

	d := &Document{}
	hasMain := false
	for _, f := range zr.File {
		raw, err := readZipFile(f)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Invoice template part %s could not be read", f.Name).
				Mark(ierr.ErrTemplate)
		}

		e := &entry{name: f.Name, hdr: f.FileHeader, raw: raw}
		if isEditablePart(f.Name) {
			doc := etree.NewDocument()
			if err := doc.ReadFromBytes(raw); err != nil {
				return nil, ierr.WithError(err).
					WithHintf("Invoice template part %s is not valid XML", f.Name).
					Mark(ierr.ErrTemplate)
			}
			e.xml = doc
			if f.Name == mainDocumentPart {
				hasMain = true
			}
		}
		d.entries = append(d.entries, e)
	}

	if !hasMain {
		return nil, ierr.NewErrorf("missing %s", mainDocumentPart).
			WithHint("Invoice template has no document body").
			Mark(ierr.ErrTemplate)
	}
	return d, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isEditablePart reports whether a part can hold invoice tokens
func isEditablePart(name string) bool {
	if name == mainDocumentPart {
		return true
	}
	dir, file := path.Split(name)
	if dir != "word/" || !strings.HasSuffix(file, ".xml") {
		return false
	}
	return strings.HasPrefix(file, "header") || strings.HasPrefix(file, "footer")
}

// Body returns the w:body element of the main document part
func (d *Document) Body() *etree.Element {
	for _, e := range d.entries {
		if e.name != mainDocumentPart {
			continue
		}
		root := e.xml.Root()
		if root == nil {
			return nil
		}
		for _, child := range root.ChildElements() {
			if isW(child, "body") {
				return child
			}
		}
	}
	return nil
}

// parts returns the root elements of every editable part, main document first
func (d *Document) parts() []*entry {
	var out []*entry
	for _, e := range d.entries {
		if e.xml != nil && e.name == mainDocumentPart {
			out = append(out, e)
		}
	}
	for _, e := range d.entries {
		if e.xml != nil && e.name != mainDocumentPart {
			out = append(out, e)
		}
	}
	return out
}

// Bytes serializes the package, keeping part order and compression methods
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range d.entries {
		data := e.raw
		if e.xml != nil && e.dirty {
			out, err := e.xml.WriteToBytes()
			if err != nil {
				return nil, ierr.WithError(err).
					WithHint("Failed to write invoice document").
					Mark(ierr.ErrTemplate)
			}
			data = out
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   e.hdr.Method,
			Modified: e.hdr.Modified,
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to write invoice document").
				Mark(ierr.ErrTemplate)
		}
		if _, err := w.Write(data); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to write invoice document").
				Mark(ierr.ErrTemplate)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to write invoice document").
			Mark(ierr.ErrTemplate)
	}
	return buf.Bytes(), nil
}
