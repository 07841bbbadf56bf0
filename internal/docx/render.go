package docx

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/samber/lo"
)

// Style is applied to every run produced by substitution
type Style struct {
	Font   string
	SizePt int
}

// RenderRequest carries token values and the conditional sections to drop
type RenderRequest struct {
	// Values maps a token such as {{AMOUNT}} to its rendered text
	Values map[string]string
	// Omit lists sections whose rows are removed before substitution
	Omit []Section
}

// Stats describes what a render changed, for logging
type Stats struct {
	SectionRowsRemoved  int
	ParagraphsReplaced  int
	EmptyFeeRowsRemoved int
}

// Renderer fills invoice templates
type Renderer struct {
	style Style
}

func NewRenderer(style Style) *Renderer {
	if style.Font == "" {
		style.Font = "Calibri"
	}
	if style.SizePt <= 0 {
		style.SizePt = 14
	}
	return &Renderer{style: style}
}

// Render fills the template and returns the new package bytes.
//
// Rows of omitted sections are removed first, then every paragraph containing a
// known token is rewritten as a single uniformly styled run, then any row left
// reading as an empty "fee () =" line is removed.
func (r *Renderer) Render(ctx context.Context, tpl []byte, req RenderRequest) ([]byte, *Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, ierr.WithError(err).
			WithHint("Rendering was cancelled").
			Mark(ierr.ErrSystem)
	}

	doc, err := Open(tpl)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	for _, part := range doc.parts() {
		root := part.xml.Root()
		if root == nil {
			continue
		}

		removed := removeSectionRows(root, req.Omit)
		replaced := r.substitute(root, req.Values)
		empty := removeEmptyFeeRows(root)

		stats.SectionRowsRemoved += removed
		stats.ParagraphsReplaced += replaced
		stats.EmptyFeeRowsRemoved += empty
		if removed+replaced+empty > 0 {
			part.dirty = true
		}
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, nil, err
	}
	return out, stats, nil
}

// removeSectionRows drops every table row whose own cells mention a gate token of an omitted section
func removeSectionRows(root *etree.Element, omit []Section) int {
	gates := lo.FlatMap(lo.Uniq(omit), func(s Section, _ int) []string {
		return sectionTokens[s]
	})
	if len(gates) == 0 {
		return 0
	}

	var doomed []*etree.Element
	for _, tr := range collect(root, "tr") {
		for _, tc := range rowCells(tr) {
			text := cellText(tc)
			if lo.SomeBy(gates, func(g string) bool { return strings.Contains(text, g) }) {
				doomed = append(doomed, tr)
				break
			}
		}
	}
	return removeElements(doomed)
}

// substitute rewrites each paragraph that contains at least one known token
func (r *Renderer) substitute(root *etree.Element, values map[string]string) int {
	if len(values) == 0 {
		return 0
	}

	// longest tokens first so no token is shadowed by a prefix of another
	keys := lo.Keys(values)
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	replacer := strings.NewReplacer(pairs...)

	n := 0
	for _, p := range collect(root, "p") {
		text := paragraphText(p)
		if !lo.SomeBy(keys, func(k string) bool { return strings.Contains(text, k) }) {
			continue
		}
		r.setParagraphText(p, replacer.Replace(text))
		n++
	}
	return n
}

// setParagraphText replaces all content of p except its properties with one styled run
func (r *Renderer) setParagraphText(p *etree.Element, text string) {
	for _, c := range p.ChildElements() {
		if isW(c, "pPr") {
			continue
		}
		p.RemoveChild(c)
	}

	run := p.CreateElement("w:r")
	rPr := run.CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", r.style.Font)
	fonts.CreateAttr("w:hAnsi", r.style.Font)
	fonts.CreateAttr("w:cs", r.style.Font)
	fonts.CreateAttr("w:eastAsia", r.style.Font)
	halfPoints := strconv.Itoa(r.style.SizePt * 2)
	rPr.CreateElement("w:sz").CreateAttr("w:val", halfPoints)
	rPr.CreateElement("w:szCs").CreateAttr("w:val", halfPoints)

	// tabs and line breaks become their own elements so they survive in Word
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		t := run.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(seg.String())
		seg.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			run.CreateElement("w:tab")
		case '\n':
			flush()
			run.CreateElement("w:br")
		default:
			seg.WriteRune(ch)
		}
	}
	flush()
}

// removeEmptyFeeRows drops rows with a cell reading "fee () =" in any spacing or case.
// It is a fallback for templates whose fee rows are not tagged with section tokens.
func removeEmptyFeeRows(root *etree.Element) int {
	var doomed []*etree.Element
	for _, tr := range collect(root, "tr") {
		for _, tc := range rowCells(tr) {
			if isEmptyFeeLine(cellText(tc)) {
				doomed = append(doomed, tr)
				break
			}
		}
	}
	return removeElements(doomed)
}

func isEmptyFeeLine(s string) bool {
	squashed := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return squashed == "fee="
}
