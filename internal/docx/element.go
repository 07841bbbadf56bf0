package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// isW reports whether e is the WordprocessingML element with the given local name
func isW(e *etree.Element, local string) bool {
	if e == nil || e.Tag != local {
		return false
	}
	return e.Space == "w" || e.NamespaceURI() == wordNamespace
}

// collect returns every descendant of root (root included) with the given local name, in document order
func collect(root *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if isW(e, local) {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// paragraphText concatenates the run text of p. Nested paragraphs such as text
// box content are not part of p's text.
func paragraphText(p *etree.Element) string {
	var b strings.Builder
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			switch {
			case isW(c, "p"):
				continue
			case isW(c, "t"):
				b.WriteString(c.Text())
			case isW(c, "tab"):
				if isW(e, "r") {
					b.WriteByte('\t')
				}
			case isW(c, "br"), isW(c, "cr"):
				b.WriteByte('\n')
			default:
				walk(c)
			}
		}
	}
	walk(p)
	return b.String()
}

// cellText joins the text of a cell's paragraphs with newlines. Paragraphs
// wrapped in content controls count; nested tables belong to their own rows.
func cellText(tc *etree.Element) string {
	var parts []string
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			switch {
			case isW(c, "p"):
				parts = append(parts, paragraphText(c))
			case isW(c, "tbl"):
				continue
			default:
				walk(c)
			}
		}
	}
	walk(tc)
	return strings.Join(parts, "\n")
}

// rowCells returns the cells of a table row, including cells inside content controls
func rowCells(tr *etree.Element) []*etree.Element {
	var cells []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			switch {
			case isW(c, "tc"):
				cells = append(cells, c)
			case isW(c, "sdt"), isW(c, "sdtContent"):
				walk(c)
			}
		}
	}
	walk(tr)
	return cells
}

// removeElements detaches each element from its parent
func removeElements(els []*etree.Element) int {
	n := 0
	for _, e := range els {
		if parent := e.Parent(); parent != nil {
			if parent.RemoveChild(e) != nil {
				n++
			}
		}
	}
	return n
}
