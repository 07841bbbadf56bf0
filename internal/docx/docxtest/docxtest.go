// Package docxtest builds minimal WordprocessingML packages and reads them back for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// P renders a paragraph with one run per fragment, so tokens can be split across runs
func P(fragments ...string) string {
	var b strings.Builder
	b.WriteString("<w:p><w:pPr><w:jc w:val=\"left\"/></w:pPr>")
	for _, f := range fragments {
		fmt.Fprintf(&b, `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`, html.EscapeString(f))
	}
	b.WriteString("</w:p>")
	return b.String()
}

// Cell wraps paragraphs in a table cell
func Cell(paragraphs ...string) string {
	return "<w:tc>" + strings.Join(paragraphs, "") + "</w:tc>"
}

// ContentControl wraps block content in a w:sdt content control
func ContentControl(content ...string) string {
	return "<w:sdt><w:sdtPr/><w:sdtContent>" + strings.Join(content, "") + "</w:sdtContent></w:sdt>"
}

// Row builds a row with one single-paragraph cell per text
func Row(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:tr>")
	for _, t := range texts {
		b.WriteString(Cell(P(t)))
	}
	b.WriteString("</w:tr>")
	return b.String()
}

// Table wraps rows in a table
func Table(rows ...string) string {
	return "<w:tbl>" + strings.Join(rows, "") + "</w:tbl>"
}

// Build packages body markup into a .docx. Extra parts (e.g. "word/header1.xml")
// are given as body markup too and wrapped in a w:hdr root.
func Build(body string, extraParts map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", contentTypes)
	write("_rels/.rels", rootRels)
	write("word/document.xml", fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
			`<w:document %s><w:body>%s<w:sectPr/></w:body></w:document>`, wordNS, body))
	for name, markup := range extraParts {
		write(name, fmt.Sprintf(
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
				`<w:hdr %s>%s</w:hdr>`, wordNS, markup))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// InvoiceTemplate is a representative invoice layout covering every token,
// with fee tiers and the additional fee on their own rows.
func InvoiceTemplate() []byte {
	body := strings.Join([]string{
		P("INVOICE"),
		P("Date: ", "{{INVOICE_", "DATE}}"),
		P("{{CUSTOMER_NAME}}"),
		P("{{CUSTOMER_EMAIL}}"),
		P("{{PROPERTY_ADDRESS}}, {{PROPERTY_CITY}}, {{PROPERTY_STATE}} {{PROPERTY_ZIP}}"),
		Table(
			Row("Period", "Description", "Amount"),
			Row("{{PERIOD}} ({{PERIOD_DATES}})", "{{FEE_TYPE}}", "{{AMOUNT}}"),
			Row("", "{{FEE_2_TYPE}}", "{{FEE_2_AMOUNT}}"),
			Row("", "{{FEE_3_TYPE}}", "{{FEE_3_AMOUNT}}"),
			Row("", "{{ADDITIONAL_FEE}}", "{{ADDITIONAL_FEE_AMOUNT}}"),
			Row("", "Total", "{{TOTAL_AMOUNT}}"),
		),
		P("Thank you for your business."),
	}, "")
	return Build(body, map[string]string{
		"word/footer1.xml": P("Questions? Contact us about {{PROPERTY_ADDRESS}}"),
	})
}

// Part returns the raw XML of a package part
func Part(data []byte, name string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		return string(raw), err
	}
	return "", fmt.Errorf("part %s not found", name)
}

// Paragraphs returns the text of every paragraph in a part, in document order
func Paragraphs(data []byte, name string) ([]string, error) {
	raw, err := Part(data, name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, err
	}

	var out []string
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Space == "w" && e.Tag == "p" {
			var b strings.Builder
			for _, t := range e.FindElements(".//t") {
				b.WriteString(t.Text())
			}
			out = append(out, b.String())
			return
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(doc.Root())
	return out, nil
}

// Text returns the paragraphs of the main document joined by newlines
func Text(data []byte) (string, error) {
	ps, err := Paragraphs(data, "word/document.xml")
	if err != nil {
		return "", err
	}
	return strings.Join(ps, "\n"), nil
}

// RowCount counts table rows in the main document
func RowCount(data []byte) (int, error) {
	raw, err := Part(data, "word/document.xml")
	if err != nil {
		return 0, err
	}
	return strings.Count(raw, "<w:tr>") + strings.Count(raw, "<w:tr "), nil
}
