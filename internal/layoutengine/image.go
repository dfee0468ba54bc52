package layoutengine

import (
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/style"
)

// layoutImage implements spec.md section 4.5 Image: if both width and
// height are set, use them; if only one, preserve the source's intrinsic
// aspect ratio; if neither, fall back to intrinsic pixel dimensions at
// 72 DPI (1 px = 1 pt). If the image would overflow remaining space and
// would fit on a fresh page, advance; otherwise clip (a tolerated
// limitation per spec.md section 9 Open Questions).
func (f *flow) layoutImage(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, x, availableWidth float64, allowBreak bool) error {
	handle, intrinsicW, intrinsicH, err := f.eng.Images.Resolve(node.Src)
	draw := DrawCommand{Kind: DrawImage}
	if err != nil {
		// ImageError per spec.md section 8: degrade rather than abort. Reserve
		// the dimensions the image would have occupied (falling back to a
		// fixed placeholder box when neither width nor height was set, since
		// there's no intrinsic size to derive a ratio from) and keep going.
		f.eng.warn(model.KindImage, "image decode failed for "+node.Src+": "+err.Error())
		draw = DrawCommand{Kind: DrawImagePlaceholder}
		intrinsicW, intrinsicH = 100, 100
	}

	width, height := resolveImageBox(resolved, availableWidth, intrinsicW, intrinsicH)

	if allowBreak && height > c.RemainingHeight() {
		fresh := c.NewPage()
		if height <= fresh.ContentHeight {
			if err := f.breakPage(); err != nil {
				return err
			}
			c = f.cursor
		} else {
			f.eng.warn(model.KindImage, "image "+node.Src+" clipped: does not fit even on a fresh page")
			height = c.RemainingHeight()
		}
	}

	draw.ImageHandle = handle
	el := &LayoutElement{
		X: x, Y: c.Y, Width: width, Height: height, Draw: draw,
		NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation,
	}
	if node.Href != "" {
		el.LinkHref = node.Href
	}
	c.Push(el)
	c.Y += height
	return nil
}

func resolveImageBox(resolved style.ResolvedStyle, availableWidth, intrinsicW, intrinsicH float64) (width, height float64) {
	hasWidth := resolved.Width.Kind == model.DimPt || resolved.Width.Kind == model.DimPercent
	hasHeight := resolved.Height.Kind == model.DimPt || resolved.Height.Kind == model.DimPercent

	if intrinsicW <= 0 {
		intrinsicW = 1
	}
	if intrinsicH <= 0 {
		intrinsicH = 1
	}
	ratio := intrinsicH / intrinsicW

	switch {
	case hasWidth && hasHeight:
		width = resolveAxis(resolved.Width, availableWidth, availableWidth)
		height = resolveAxis(resolved.Height, availableWidth, availableWidth)
	case hasWidth:
		width = resolveAxis(resolved.Width, availableWidth, availableWidth)
		height = width * ratio
	case hasHeight:
		height = resolveAxis(resolved.Height, availableWidth, availableWidth)
		width = height / ratio
	default:
		width = intrinsicW
		height = intrinsicH
	}
	return
}
