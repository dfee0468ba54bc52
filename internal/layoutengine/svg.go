package layoutengine

import (
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/style"
)

// layoutSvg treats an Svg node as an atomic block per spec.md section 4.6:
// it is never split across pages. The markup itself is parsed by
// internal/svgpath and emitted by internal/pdfwriter at serialize time; the
// engine only reserves the box.
func (f *flow) layoutSvg(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, x, availableWidth float64) error {
	width := resolveAxis(resolved.Width, availableWidth, availableWidth)
	height := resolveAxis(resolved.Height, width, width)
	// Only the live flow cursor breaks the page; scratch and dry-run cursors
	// (layoutInto, layoutView's clone) never do.
	if c == f.cursor && height > c.RemainingHeight() {
		fresh := c.NewPage()
		if height <= fresh.ContentHeight {
			if err := f.breakPage(); err != nil {
				return err
			}
			c = f.cursor
		}
	}
	el := &LayoutElement{
		X: x, Y: c.Y, Width: width, Height: height,
		Draw:           DrawCommand{Kind: DrawSvg, Markup: node.Content, ViewBox: node.ViewBox},
		NodeType:       node.Kind,
		Style:          resolved,
		SourceLocation: node.SourceLocation,
	}
	c.Push(el)
	c.Y += height
	return nil
}
