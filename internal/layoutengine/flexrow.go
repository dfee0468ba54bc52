package layoutengine

import (
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/pagebreak"
	"github.com/danmolitor/forme/internal/style"
	"github.com/danmolitor/forme/internal/text"
)

// layoutFlexRow implements spec.md section 4.5's flex row layout: compute
// per-child basis widths, run flex distribution, wrap onto lines when
// flex_wrap:wrap, and — if the row as a whole doesn't fit the remaining
// page height — fall back to laying out each child individually against
// the actual page-constrained width (no single infinite-canvas pass).
func (f *flow) layoutFlexRow(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, contentX, contentWidth, outerX, outerWidth float64, allowBreak bool) error {
	children, absoluteChildren := splitAbsoluteChildren(node.Children, resolved)
	if len(children) == 0 {
		snapshot := c.Snapshot()
		startY := c.Y
		el := &LayoutElement{X: outerX, Y: startY, Width: outerWidth, NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation}
		if resolved.HasBackground || hasBorder(resolved.BorderWidth) {
			el.Draw = DrawCommand{Kind: DrawRect, Fill: resolved.BackgroundColor, HasFill: resolved.HasBackground, Border: resolved.BorderWidth, BorderColor: resolved.BorderColor}
		}
		if err := f.placeAbsoluteChildren(c, absoluteChildren, resolved, outerX, startY, outerWidth, el.Height); err != nil {
			return err
		}
		el.Children = c.Drain(snapshot)
		c.Push(el)
		return nil
	}

	items := make([]pagebreak.FlexItem, len(children))
	childStyles := make([]style.ResolvedStyle, len(children))
	for i, ch := range children {
		cs := style.Resolve(ch.Style, resolved)
		childStyles[i] = cs
		basis := resolveAxis(cs.FlexBasis, contentWidth, measureIntrinsicWidth(f, ch, cs, contentWidth))
		items[i] = pagebreak.FlexItem{
			Basis:      basis,
			Grow:       cs.FlexGrow,
			Shrink:     cs.FlexShrink,
			MinContent: minContentWidth(f, ch, cs),
			MinSize:    resolveAxisOrZero(cs.MinWidth),
			MaxSize:    resolveAxisOrZero(cs.MaxWidth),
		}
	}

	var lineGroups [][]int
	if resolved.FlexWrap == model.NoWrap {
		lineGroups = [][]int{indices(len(children))}
	} else {
		lineGroups = pagebreak.WrapLines(items, contentWidth, resolved.ColumnGap)
		if resolved.FlexWrap == model.WrapReverse {
			pagebreak.ReverseLines(lineGroups)
		}
	}

	snapshot := c.Snapshot()
	startY := c.Y
	for _, group := range lineGroups {
		lineItems := make([]pagebreak.FlexItem, len(group))
		for i, gi := range group {
			lineItems[i] = items[gi]
		}
		sizes := pagebreak.Distribute(lineItems, contentWidth-resolved.ColumnGap*float64(len(group)-1))

		offsets := make([]float64, len(group))
		offsetX := contentX
		for i := range group {
			offsets[i] = offsetX
			offsetX += sizes[i] + resolved.ColumnGap
		}

		// Dry-run every child in the line on its own non-breaking scratch
		// cursor first, per spec.md section 4.5 point 3: a line with more
		// than one child, or more than one line on the row, can't let one
		// child pick its own page break independent of its neighbors — a
		// break always lands at the same Y for every child in the line.
		remainders := make([][]*LayoutElement, len(group))
		for i, gi := range group {
			ch := children[gi]
			cs := childStyles[gi]
			scratch := NewCursor(sizes[i]+1000, 1_000_000, model.Edges{})
			if err := f.layoutInto(scratch, ch, 0, sizes[i], cs); err != nil {
				return err
			}
			remainders[i] = scratch.Elements
		}

		natural := maxRemainderHeight(remainders)
		lineStartY := c.Y
		var cutY float64
		if !allowBreak || natural <= c.RemainingHeight() {
			cutY = natural
		} else {
			cutY = rowCutY(remainders, c.RemainingHeight())
			if cutY <= 0 {
				cutY = c.RemainingHeight()
			}
		}

		var lineHeight float64
		for i := range group {
			top, rest := splitElementsAtY(remainders[i], cutY)
			for _, el := range top {
				c.Push(shiftElement(el, offsets[i], lineStartY))
			}
			if h := elementsHeight(top); h > lineHeight {
				lineHeight = h
			}
			remainders[i] = shiftElementsUp(rest, cutY)
		}
		c.Y = lineStartY + lineHeight

		for anyRemaining(remainders) {
			if err := f.breakPage(); err != nil {
				return err
			}
			nc := f.cursor
			base := nc.Y
			cy := rowCutY(remainders, nc.RemainingHeight())
			if cy <= 0 {
				cy = maxRemainderHeight(remainders)
				if cy <= 0 {
					break
				}
			}
			var h float64
			for i := range group {
				top, rest := splitElementsAtY(remainders[i], cy)
				for _, el := range top {
					nc.Push(shiftElement(el, offsets[i], base))
				}
				if th := elementsHeight(top); th > h {
					h = th
				}
				remainders[i] = shiftElementsUp(rest, cy)
			}
			nc.Y = base + h
		}

		c.Y += resolved.RowGap
	}

	elements := c.Drain(snapshot)
	height := c.Y - startY
	if resolved.RowGap > 0 && len(elements) > 0 {
		height -= resolved.RowGap
	}
	el := &LayoutElement{X: outerX, Y: startY, Width: outerWidth, Height: height, Children: elements, NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation}
	if resolved.HasBackground || hasBorder(resolved.BorderWidth) {
		el.Draw = DrawCommand{Kind: DrawRect, Fill: resolved.BackgroundColor, HasFill: resolved.HasBackground, Border: resolved.BorderWidth, BorderColor: resolved.BorderColor}
	}
	if node.Bookmark != "" {
		el.Bookmark = node.Bookmark
	}
	if node.Href != "" {
		el.LinkHref = node.Href
	}
	absSnapshot := c.Snapshot()
	if err := f.placeAbsoluteChildren(c, absoluteChildren, resolved, outerX, startY, outerWidth, height); err != nil {
		return err
	}
	el.Children = append(el.Children, c.Drain(absSnapshot)...)
	c.Push(el)
	return nil
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func resolveAxisOrZero(d model.Dimension) float64 {
	if d.Kind == model.DimPt {
		return d.Value
	}
	return 0
}

// measureIntrinsicWidth estimates a flex child's content-driven width when
// it has no explicit flexBasis/width: for Text nodes this is the widest
// line at an unconstrained width; for everything else, fill available.
func measureIntrinsicWidth(f *flow, node *model.Node, resolved style.ResolvedStyle, available float64) float64 {
	if resolved.Width.Kind == model.DimPt || resolved.Width.Kind == model.DimPercent {
		return resolveAxis(resolved.Width, available, available)
	}
	if node.Kind == model.KindText {
		runs := textRuns(node, resolved)
		specs := make([]text.RunSpec, len(runs))
		for i, r := range runs {
			specs[i] = text.RunSpec{Content: r.content, Font: f.eng.resolveFont(r.style), FontSize: r.style.FontSize, LetterSpacing: r.style.LetterSpacing}
		}
		_, minWidth := text.BreakLines(specs, available)
		return minWidth
	}
	return available
}

func minContentWidth(f *flow, node *model.Node, resolved style.ResolvedStyle) float64 {
	if node.Kind != model.KindText {
		return 0
	}
	runs := textRuns(node, resolved)
	specs := make([]text.RunSpec, len(runs))
	for i, r := range runs {
		specs[i] = text.RunSpec{Content: r.content, Font: f.eng.resolveFont(r.style), FontSize: r.style.FontSize, LetterSpacing: r.style.LetterSpacing}
	}
	_, minWidth := text.BreakLines(specs, 1<<20)
	return minWidth
}
