package report

import (
	"bytes"
	"errors"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, millimetres.
const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	marginRight  = 190.0
	contentTop   = 20.0
	contentStart = 60.0
	contentLimit = 270.0
	footerPageY  = 285.0
	footerDateY  = 290.0

	lineStep       = 5.0
	rowGap         = 8.0
	rowHeight      = 4*lineStep + rowGap
	headerHeight   = 20.0
	totalHeight    = 15.0
	maxLocationLen = 50
)

// canvas is the drawing surface the layout writes to.
type canvas interface {
	AddPage()
	SetFont(style string, size float64)
	Text(x, y float64, s string)
	CenteredText(y float64, s string)
	RightText(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	PageCount() int
	SetPage(n int)
}

// layout tracks the vertical cursor and breaks pages before a block would
// cross the content limit.
type layout struct {
	c    canvas
	y    float64
	page int
}

func newLayout(c canvas) *layout {
	l := &layout{c: c}
	l.newPage()
	return l
}

func (l *layout) newPage() {
	l.c.AddPage()
	l.page++
	l.y = contentTop
}

// reserve makes sure h millimetres fit below the cursor. It reports whether
// a page break happened.
func (l *layout) reserve(h float64) bool {
	if l.y+h <= contentLimit {
		return false
	}
	l.newPage()
	return true
}

func (l *layout) advance(h float64) { l.y += h }

// EncodePDF renders the document as an A4 report.
func EncodePDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Labels.Title, true)
	c := &fpdfCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	renderPDF(doc, c)

	if pdf.Err() {
		return nil, &EncodingError{Kind: KindPDFEngineUnavailable, Format: FormatPDF, Err: pdf.Error()}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &EncodingError{Kind: KindPDFEngineUnavailable, Format: FormatPDF, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodingError{Kind: KindPDFEngineUnavailable, Format: FormatPDF, Err: errors.New("empty output")}
	}
	return buf.Bytes(), nil
}

func renderPDF(doc Document, c canvas) {
	l := newLayout(c)
	labels := doc.Labels

	c.SetFont("B", 20)
	c.CenteredText(20, labels.AppName)
	c.SetFont("", 16)
	c.CenteredText(30, labels.Title)
	c.SetFont("", 12)
	c.CenteredText(40, doc.Period)
	l.y = contentStart

	if doc.Empty() {
		c.SetFont("", 12)
		c.CenteredText(l.y, labels.Empty)
	}

	for _, s := range doc.Sections {
		l.reserve(headerHeight + rowHeight)
		c.SetFont("B", 14)
		c.Text(marginLeft, l.y, labels.EmployeeHeading(s.Employee))
		l.advance(headerHeight / 2)
		c.Line(marginLeft, l.y, marginRight, l.y)
		l.advance(headerHeight / 2)

		for _, r := range s.Rows {
			if l.reserve(rowHeight) {
				c.SetFont("B", 14)
				c.Text(marginLeft, l.y, labels.EmployeeHeading(s.Employee))
				l.advance(headerHeight / 2)
			}
			c.SetFont("", 10)
			lines := []string{
				labels.DateLine(r.Date),
				punchLine(labels.Entry, r.EntryTime, r.EntryLocation),
				punchLine(labels.Exit, r.ExitTime, r.ExitLocation),
				labels.WorkedLine(r.Worked),
				labels.StatusLine(r.Status),
			}
			for i, line := range lines {
				c.Text(marginLeft+5, l.y+float64(i)*lineStep, line)
			}
			l.advance(rowHeight)
		}

		l.reserve(totalHeight)
		c.SetFont("B", 12)
		c.Text(marginLeft, l.y, labels.TotalLine(s.TotalLabel))
		l.advance(totalHeight)
	}

	generated := labels.GeneratedAt(doc.GeneratedAt)
	total := c.PageCount()
	for i := 1; i <= total; i++ {
		c.SetPage(i)
		c.SetFont("", 8)
		c.RightText(marginRight, footerPageY, labels.PageOf(i, total))
		c.Text(marginLeft, footerDateY, generated)
	}
}

func punchLine(label, at, location string) string {
	switch {
	case at == Placeholder:
		return label + ": " + Placeholder
	case location == Placeholder:
		return label + ": " + at
	default:
		return label + ": " + at + " - " + truncateLocation(location)
	}
}

func truncateLocation(s string) string {
	r := []rune(s)
	if len(r) <= maxLocationLen {
		return s
	}
	return string(r[:maxLocationLen-3]) + "..."
}

type fpdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (c *fpdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *fpdfCanvas) Text(x, y float64, s string) { c.pdf.Text(x, y, c.tr(s)) }

func (c *fpdfCanvas) CenteredText(y float64, s string) {
	s = c.tr(s)
	c.pdf.Text((pageWidth-c.pdf.GetStringWidth(s))/2, y, s)
}

func (c *fpdfCanvas) RightText(x, y float64, s string) {
	s = c.tr(s)
	c.pdf.Text(x-c.pdf.GetStringWidth(s), y, s)
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) { c.pdf.Line(x1, y1, x2, y2) }

func (c *fpdfCanvas) PageCount() int { return c.pdf.PageCount() }

func (c *fpdfCanvas) SetPage(n int) { c.pdf.SetPage(n) }
