package pdfwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/svgpath"
)

// ContentBuilder assembles one page's content stream operators, following
// cdvelop-tinypdf's CellFormat.go/docImage.go operator-emission style:
// q/Q save-restore pairs around each positioned element, re/f for rectangle
// fills, BT/Tj for text runs, cm for image placement matrices.
type ContentBuilder struct {
	b            strings.Builder
	pageHeight   float64
	fontRefs     map[string]string // font.Name() -> PDF resource name (e.g. "F1")
	xobjectRefs  map[string]string // image/svg handle -> PDF resource name (e.g. "Im1")
}

func NewContentBuilder(pageHeight float64, fontRefs, xobjectRefs map[string]string) *ContentBuilder {
	return &ContentBuilder{pageHeight: pageHeight, fontRefs: fontRefs, xobjectRefs: xobjectRefs}
}

func (c *ContentBuilder) line(s string) { c.b.WriteString(s); c.b.WriteByte('\n') }

func (c *ContentBuilder) Bytes() []byte { return []byte(c.b.String()) }

// toPDFY converts a layout y (down from page top-left) to PDF user space
// (up from the bottom-left), per PDF's coordinate convention.
func (c *ContentBuilder) toPDFY(y, height float64) float64 {
	return c.pageHeight - y - height
}

// EmitElement recursively appends operators for el and its children.
func (c *ContentBuilder) EmitElement(el *layoutengine.LayoutElement) {
	switch el.Draw.Kind {
	case layoutengine.DrawRect:
		c.emitRect(el)
	case layoutengine.DrawTextLine:
		c.emitTextLine(el)
	case layoutengine.DrawImage:
		c.emitImage(el)
	case layoutengine.DrawImagePlaceholder:
		c.emitImagePlaceholder(el)
	case layoutengine.DrawSvg:
		c.emitSvgPlaceholder(el)
	}
	for _, child := range el.Children {
		c.EmitElement(child)
	}
}

func (c *ContentBuilder) emitRect(el *layoutengine.LayoutElement) {
	y := c.toPDFY(el.Y, el.Height)
	c.line("q")
	if el.Draw.HasFill {
		c.line(colorOp(el.Draw.Fill, false))
		c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f re f", el.X, y, el.Width, el.Height))
	}
	if hasBorderEdges(el.Draw.Border) {
		c.line(colorOp(el.Draw.BorderColor, true))
		w := maxEdge(el.Draw.Border)
		c.line(fmt.Sprintf("%.2f w", w))
		c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f re S", el.X, y, el.Width, el.Height))
	}
	c.line("Q")
}

func hasBorderEdges(e model.Edges) bool {
	return e.Top > 0 || e.Right > 0 || e.Bottom > 0 || e.Left > 0
}

func maxEdge(e model.Edges) float64 {
	m := e.Top
	if e.Right > m {
		m = e.Right
	}
	if e.Bottom > m {
		m = e.Bottom
	}
	if e.Left > m {
		m = e.Left
	}
	return m
}

func colorOp(col model.Color, stroke bool) string {
	op := "rg"
	if stroke {
		op = "RG"
	}
	return fmt.Sprintf("%.3f %.3f %.3f %s", col.R, col.G, col.B, op)
}

func (c *ContentBuilder) emitTextLine(el *layoutengine.LayoutElement) {
	baselineY := c.toPDFY(el.Y+el.Draw.BaselineOffset, 0)
	x := el.X
	c.line("q")
	c.line("BT")
	for _, run := range el.Draw.GlyphRuns {
		resName := c.fontRefs[run.Font.Name()]
		c.line(colorOp(run.Color, false))
		c.line(fmt.Sprintf("/%s %.2f Tf", resName, run.FontSize))
		c.line(fmt.Sprintf("%.2f %.2f Td", x, baselineY))
		show := Literal(run.Text)
		if _, tt := run.Font.Source(); tt != nil {
			// Identity-H fonts (fonts.go) take two-byte glyph IDs, not text bytes.
			var hex strings.Builder
			for _, r := range run.Text {
				fmt.Fprintf(&hex, "%04X", tt.Chars[r])
			}
			show = "<" + hex.String() + ">"
		}
		c.line(show + " Tj")
		// Td positions are cumulative from the previous Td in PDF text
		// space; reset to absolute by re-establishing BT per run avoids
		// drift across runs on the same line.
		c.line("ET")
		c.line("BT")
		if run.Decoration != model.DecorationNone {
			c.emitDecoration(run, x, el.Y, el.Draw.BaselineOffset)
		}
		x += estimateRunWidth(run)
	}
	c.line("ET")
	c.line("Q")
}

func (c *ContentBuilder) emitDecoration(run layoutengine.GlyphRun, x, lineY, baselineOffset float64) {
	width := estimateRunWidth(run)
	thickness := run.FontSize * 0.05
	offset := baselineOffset * 0.1
	if run.Decoration == model.DecorationLineThrough {
		offset = -baselineOffset * 0.3
	}
	y := c.toPDFY(lineY+baselineOffset+offset, 0)
	c.line(colorOp(run.Color, false))
	c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f re f", x, y, width, thickness))
}

// estimateRunWidth re-measures a run's advance from its font metrics; the
// glyph run does not retain per-character positions, only the text, so the
// content builder recomputes the same way the line breaker measured it.
func estimateRunWidth(run layoutengine.GlyphRun) float64 {
	var total float64
	for _, r := range run.Text {
		total += run.Font.Advance(r, run.FontSize)
	}
	return total
}

// emitImagePlaceholder draws the ImageError degradation path of spec.md
// section 8: an empty, stroked rectangle at the image's reserved dimensions
// instead of the decoded bitmap.
func (c *ContentBuilder) emitImagePlaceholder(el *layoutengine.LayoutElement) {
	y := c.toPDFY(el.Y, el.Height)
	c.line("q")
	c.line(colorOp(model.Color{R: 0.6, G: 0.6, B: 0.6}, true))
	c.line("1.00 w")
	c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f re S", el.X, y, el.Width, el.Height))
	c.line("Q")
}

func (c *ContentBuilder) emitImage(el *layoutengine.LayoutElement) {
	resName := c.xobjectRefs[el.Draw.ImageHandle]
	if resName == "" {
		return
	}
	y := c.toPDFY(el.Y, el.Height)
	c.line("q")
	c.line(fmt.Sprintf("%.2f 0 0 %.2f %.2f %.2f cm", el.Width, el.Height, el.X, y))
	c.line("/" + resName + " Do")
	c.line("Q")
}

// emitSvgPlaceholder maps the Svg node's viewBox onto its layout box and
// emits the parsed path subset as PDF path operators (m/l/c/h/S), per
// spec.md section 4.6.
func (c *ContentBuilder) emitSvgPlaceholder(el *layoutengine.LayoutElement) {
	d := svgpath.ExtractPathData(el.Draw.Markup)
	var ops []svgpath.Op
	switch {
	case d != "":
		ops = svgpath.ParsePathData(d)
	default:
		for _, shape := range svgpath.ExtractShapes(el.Draw.Markup) {
			ops = append(ops, svgpath.ShapeToPathOps(shape)...)
		}
		if len(ops) == 0 {
			// Tolerate bare "d" content passed without a wrapping <path> tag.
			ops = svgpath.ParsePathData(el.Draw.Markup)
		}
	}
	if len(ops) == 0 {
		return
	}
	scaleX, scaleY, offX, offY := svgViewBoxTransform(el.Draw.ViewBox, el.Width, el.Height)

	c.line("q")
	for _, op := range ops {
		switch op.Kind {
		case svgpath.OpMoveTo:
			p := op.Points[0]
			x, y := c.svgPoint(el, p, scaleX, scaleY, offX, offY)
			c.line(fmt.Sprintf("%.2f %.2f m", x, y))
		case svgpath.OpLineTo:
			p := op.Points[0]
			x, y := c.svgPoint(el, p, scaleX, scaleY, offX, offY)
			c.line(fmt.Sprintf("%.2f %.2f l", x, y))
		case svgpath.OpCurveTo:
			x1, y1 := c.svgPoint(el, op.Points[0], scaleX, scaleY, offX, offY)
			x2, y2 := c.svgPoint(el, op.Points[1], scaleX, scaleY, offX, offY)
			x3, y3 := c.svgPoint(el, op.Points[2], scaleX, scaleY, offX, offY)
			c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", x1, y1, x2, y2, x3, y3))
		case svgpath.OpQuadTo:
			// PDF has no native quadratic operator; the control point is
			// reused for both cubic control points, a standard degree-
			// elevation approximation.
			x1, y1 := c.svgPoint(el, op.Points[0], scaleX, scaleY, offX, offY)
			x3, y3 := c.svgPoint(el, op.Points[1], scaleX, scaleY, offX, offY)
			c.line(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", x1, y1, x1, y1, x3, y3))
		case svgpath.OpClose:
			c.line("h")
		}
	}
	c.line("S")
	c.line("Q")
}

func (c *ContentBuilder) svgPoint(el *layoutengine.LayoutElement, p svgpath.Point, scaleX, scaleY, offX, offY float64) (float64, float64) {
	x := el.X + (p.X-offX)*scaleX
	y := el.Y + (p.Y-offY)*scaleY
	return x, c.toPDFY(y, 0)
}

// svgViewBoxTransform maps "minX minY width height" onto a width x height
// layout box; a missing/malformed viewBox falls back to an identity scale.
func svgViewBoxTransform(viewBox string, boxWidth, boxHeight float64) (scaleX, scaleY, offX, offY float64) {
	parts := splitViewBox(viewBox)
	if len(parts) != 4 || parts[2] == 0 || parts[3] == 0 {
		return 1, 1, 0, 0
	}
	offX, offY, vbW, vbH := parts[0], parts[1], parts[2], parts[3]
	return boxWidth / vbW, boxHeight / vbH, offX, offY
}

func splitViewBox(s string) []float64 {
	fields := strings.Fields(s)
	out := make([]float64, 0, 4)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}
