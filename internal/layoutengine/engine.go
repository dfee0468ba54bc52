package layoutengine

import (
	"fmt"
	"strings"

	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/pagebreak"
	"github.com/danmolitor/forme/internal/style"
	"github.com/danmolitor/forme/internal/text"
)

// flow owns pagination for one top-level Page node: the in-progress
// cursor, the finished pages so far, and the Fixed(Header)/Fixed(Footer)
// templates that must be re-rendered onto every page.
type flow struct {
	eng *Engine

	headerNodes []*model.Node
	footerNodes []*model.Node
	pageStyle   style.ResolvedStyle

	cursor *PageCursor
	pages  []*LayoutPage

	headerElements []*LayoutElement
	footerElements []*LayoutElement
}

// Layout walks doc's top-level Page nodes and produces the full flattened
// LayoutDocument.
func (e *Engine) Layout(doc *model.Document) (*LayoutDocument, error) {
	e.warnings = nil
	var pages []*LayoutPage
	root := style.Defaults()

	for _, child := range doc.Children {
		if child.Kind != model.KindPage {
			return nil, fmt.Errorf("layoutengine: top-level node must be Page, got %s", child.Kind)
		}
		cfg := child.Page
		if cfg == nil {
			cfg = &doc.DefaultPage
		}
		pp, err := e.layoutPage(child, *cfg, root)
		if err != nil {
			return nil, err
		}
		pages = append(pages, pp...)
	}
	return &LayoutDocument{Pages: pages, Warnings: e.warnings}, nil
}

func (e *Engine) layoutPage(page *model.Node, cfg model.PageConfig, parentStyle style.ResolvedStyle) ([]*LayoutPage, error) {
	w, h := cfg.Size.Resolve()
	margin := model.Edges{Top: 54, Right: 54, Bottom: 54, Left: 54}
	if cfg.Margin != nil {
		margin = *cfg.Margin
	}
	pageStyle := style.Resolve(page.Style, parentStyle)

	f := &flow{eng: e, cursor: NewCursor(w, h, margin), pageStyle: pageStyle}

	var body []*model.Node
	for _, child := range page.Children {
		if child.Kind == model.KindFixed {
			if child.Position == model.FixedHeader {
				f.headerNodes = append(f.headerNodes, child)
			} else {
				f.footerNodes = append(f.footerNodes, child)
			}
			continue
		}
		body = append(body, child)
	}
	if err := f.renderFixedSlots(); err != nil {
		return nil, err
	}

	for _, child := range body {
		if err := f.layoutNode(child, f.cursor.ContentX, f.cursor.ContentWidth, pageStyle); err != nil {
			return nil, err
		}
	}
	f.finish()
	return f.pages, nil
}

// renderFixedSlots lays out the header/footer templates once against the
// current cursor's geometry, reserving their height, per spec.md section 3:
// Fixed(Header) at content_y_top_of_page, Fixed(Footer) at
// page_height - margin_bottom - element_height.
func (f *flow) renderFixedSlots() error {
	f.headerElements = nil
	f.footerElements = nil
	// NewPage already carried the previous page's slots forward; drop them
	// so each template is reserved once, not once more per page.
	f.cursor.headers = nil
	f.cursor.footers = nil
	for _, hn := range f.headerNodes {
		el, height, err := f.layoutFixedOnce(hn)
		if err != nil {
			return err
		}
		el = shiftElement(el, 0, f.cursor.Margin.Top)
		f.cursor.AddFixed(FixedSlot{Node: hn, Height: height}, model.FixedHeader)
		f.headerElements = append(f.headerElements, el)
	}
	for _, fn := range f.footerNodes {
		el, height, err := f.layoutFixedOnce(fn)
		if err != nil {
			return err
		}
		f.cursor.AddFixed(FixedSlot{Node: fn, Height: height}, model.FixedFooter)
		el = shiftElement(el, 0, f.cursor.PageHeight-f.cursor.Margin.Bottom-height)
		f.footerElements = append(f.footerElements, el)
	}
	return nil
}

func (f *flow) layoutFixedOnce(node *model.Node) (*LayoutElement, float64, error) {
	scratch := NewCursor(f.cursor.PageWidth, f.cursor.PageHeight, f.cursor.Margin)
	resolved := style.Resolve(node.Style, f.pageStyle)
	for _, child := range node.Children {
		if err := f.layoutInto(scratch, child, scratch.ContentX, scratch.ContentWidth, resolved); err != nil {
			return nil, 0, err
		}
	}
	var height float64
	for _, el := range scratch.Elements {
		if b := el.Y + el.Height; b > height {
			height = b
		}
	}
	container := &LayoutElement{X: scratch.ContentX, Width: scratch.ContentWidth, Height: height, Children: scratch.Elements}
	return container, height, nil
}

// breakPage finalizes the current page and starts a fresh one, re-rendering
// the Fixed templates (header/footer content may include {{pageNumber}}).
func (f *flow) breakPage() error {
	f.pages = append(f.pages, f.cursor.Finalize(f.headerElements, f.footerElements))
	f.cursor = f.cursor.NewPage()
	return f.renderFixedSlots()
}

func (f *flow) finish() {
	f.pages = append(f.pages, f.cursor.Finalize(f.headerElements, f.footerElements))
}

// layoutNode is the central depth-first operation of spec.md section 4.5:
// measure node, decide whether it fits cursor.RemainingHeight(), split or
// advance if not, and push LayoutElements onto f.cursor.
func (f *flow) layoutNode(node *model.Node, x, availableWidth float64, parentStyle style.ResolvedStyle) error {
	return f.layoutNodeInto(f.cursor, node, x, availableWidth, parentStyle, true)
}

// layoutInto lays a node into an arbitrary cursor without allowing that
// cursor to trigger flow-level page breaks (used for the one-shot Fixed
// template render, which must not itself paginate).
func (f *flow) layoutInto(c *PageCursor, node *model.Node, x, availableWidth float64, parentStyle style.ResolvedStyle) error {
	return f.layoutNodeInto(c, node, x, availableWidth, parentStyle, false)
}

func (f *flow) layoutNodeInto(c *PageCursor, node *model.Node, x, availableWidth float64, parentStyle style.ResolvedStyle, allowBreak bool) error {
	resolved := style.Resolve(node.Style, parentStyle)

	switch node.Kind {
	case model.KindView:
		return f.layoutView(c, node, resolved, x, availableWidth, allowBreak)
	case model.KindText:
		return f.layoutText(c, node, resolved, x, availableWidth, allowBreak)
	case model.KindImage:
		return f.layoutImage(c, node, resolved, x, availableWidth, allowBreak)
	case model.KindTable:
		return f.layoutTable(c, node, resolved, x, availableWidth, allowBreak)
	case model.KindSvg:
		return f.layoutSvg(c, node, resolved, x, availableWidth)
	case model.KindPageBreak:
		if allowBreak {
			return f.breakPage()
		}
		return nil
	default:
		return fmt.Errorf("layoutengine: unexpected node kind %s in body", node.Kind)
	}
}

// layoutView implements spec.md section 4.5 View: flex row/row-reverse
// delegates to layoutFlexRow; otherwise children stack in column order.
// position:absolute children, in either mode, are pulled out of flow first
// and placed against the container's own box once it is known.
func (f *flow) layoutView(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, x, availableWidth float64, allowBreak bool) error {
	width := resolveAxis(resolved.Width, availableWidth, availableWidth)
	contentX := x + resolved.Padding.Left
	contentWidth := width - resolved.Padding.Left - resolved.Padding.Right

	if resolved.FlexDirection == model.FlexRow || resolved.FlexDirection == model.FlexRowReverse {
		return f.layoutFlexRow(c, node, resolved, contentX, contentWidth, x, width, allowBreak)
	}

	normalChildren, absoluteChildren := splitAbsoluteChildren(node.Children, resolved)

	snapshot := c.Snapshot()
	startY := c.Y
	breakable := resolved.Wrap

	if !breakable && allowBreak {
		// Dry-run measure on a clone; if the whole block doesn't fit here but
		// would fit on a fresh page, move it wholesale (spec.md 4.5 View).
		dry := c.Clone(c.Y)
		if err := f.layoutChildrenColumn(dry, normalChildren, resolved, contentX, contentWidth, false); err != nil {
			return err
		}
		blockHeight := dry.Y - c.Y
		if blockHeight > c.RemainingHeight() {
			fresh := c.NewPage()
			if blockHeight <= fresh.ContentHeight {
				if err := f.breakPage(); err != nil {
					return err
				}
				c = f.cursor
				snapshot = c.Snapshot()
				startY = c.Y
			}
		}
	}

	if err := f.layoutChildrenColumn(c, normalChildren, resolved, contentX, contentWidth, allowBreak); err != nil {
		return err
	}

	children := c.Drain(snapshot)
	height := c.Y - startY
	if resolved.Height.Kind == model.DimPt {
		height = resolved.Height.Value
	}
	el := &LayoutElement{X: x, Y: startY, Width: width, Height: height, Children: children, NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation}
	if resolved.HasBackground || hasBorder(resolved.BorderWidth) {
		el.Draw = DrawCommand{Kind: DrawRect, Fill: resolved.BackgroundColor, HasFill: resolved.HasBackground, Border: resolved.BorderWidth, BorderColor: resolved.BorderColor, CornerRadii: resolved.BorderRadius}
	}
	if node.Bookmark != "" {
		el.Bookmark = node.Bookmark
	}
	if node.Href != "" {
		el.LinkHref = node.Href
	}
	absSnapshot := c.Snapshot()
	if err := f.placeAbsoluteChildren(c, absoluteChildren, resolved, x, startY, width, height); err != nil {
		return err
	}
	el.Children = append(el.Children, c.Drain(absSnapshot)...)
	c.Push(el)
	return nil
}

func (f *flow) layoutChildrenColumn(c *PageCursor, children []*model.Node, resolved style.ResolvedStyle, contentX, contentWidth float64, allowBreak bool) error {
	for _, child := range children {
		if err := f.layoutNodeInto(c, child, contentX, contentWidth, resolved, allowBreak); err != nil {
			return err
		}
		if allowBreak {
			// The child may have broken the page; the next one goes on the new one.
			c = f.cursor
		}
		c.Y += resolved.RowGap
	}
	return nil
}

// splitAbsoluteChildren separates out children whose own resolved style is
// position:absolute (spec.md section 4.5 Absolute positioning): they are
// removed from normal flow and do not consume space among their siblings.
// Every View is already a valid containing block, since Defaults() resolves
// Position to PositionRelative for any node that doesn't set it explicitly.
func splitAbsoluteChildren(children []*model.Node, parentStyle style.ResolvedStyle) (normal, absolute []*model.Node) {
	for _, ch := range children {
		cs := style.Resolve(ch.Style, parentStyle)
		if cs.Position == model.PositionAbsolute {
			absolute = append(absolute, ch)
			continue
		}
		normal = append(normal, ch)
	}
	return normal, absolute
}

// placeAbsoluteChildren lays out each removed-from-flow child against the
// containing box's padding edges: top/right/bottom/left anchor from
// whichever edges the child actually set, per spec.md section 4.5. An
// absolutely positioned element does not itself paginate, so its own
// subtree is laid out once on a non-breaking scratch cursor, matching the
// layoutFixedOnce pattern used for Fixed(Header)/Fixed(Footer) templates.
func (f *flow) placeAbsoluteChildren(c *PageCursor, absolute []*model.Node, containerStyle style.ResolvedStyle, boxX, boxY, boxWidth, boxHeight float64) error {
	for _, ch := range absolute {
		cs := style.Resolve(ch.Style, containerStyle)
		innerWidth := boxWidth - containerStyle.Padding.Left - containerStyle.Padding.Right

		scratch := NewCursor(innerWidth+1000, 1_000_000, model.Edges{})
		if err := f.layoutInto(scratch, ch, 0, innerWidth, containerStyle); err != nil {
			return err
		}

		var childW, childH float64
		for _, sel := range scratch.Elements {
			if r := sel.X + sel.Width; r > childW {
				childW = r
			}
			if b := sel.Y + sel.Height; b > childH {
				childH = b
			}
		}
		if cs.Width.Kind == model.DimPt {
			childW = cs.Width.Value
		}
		if cs.Height.Kind == model.DimPt {
			childH = cs.Height.Value
		}

		childX := boxX + containerStyle.Padding.Left
		switch {
		case cs.Left != nil:
			childX = boxX + containerStyle.Padding.Left + *cs.Left
		case cs.Right != nil:
			childX = boxX + boxWidth - containerStyle.Padding.Right - *cs.Right - childW
		}
		childY := boxY + containerStyle.Padding.Top
		switch {
		case cs.Top != nil:
			childY = boxY + containerStyle.Padding.Top + *cs.Top
		case cs.Bottom != nil:
			childY = boxY + boxHeight - containerStyle.Padding.Bottom - *cs.Bottom - childH
		}

		shifted := make([]*LayoutElement, len(scratch.Elements))
		for i, sel := range scratch.Elements {
			shifted[i] = shiftElement(sel, childX, childY)
		}
		el := &LayoutElement{X: childX, Y: childY, Width: childW, Height: childH, Children: shifted, NodeType: ch.Kind, Style: cs, SourceLocation: ch.SourceLocation}
		if ch.Bookmark != "" {
			el.Bookmark = ch.Bookmark
		}
		if ch.Href != "" {
			el.LinkHref = ch.Href
		}
		c.Push(el)
	}
	return nil
}

func hasBorder(e model.Edges) bool {
	return e.Top > 0 || e.Right > 0 || e.Bottom > 0 || e.Left > 0
}

// resolveAxis resolves a Dimension against its parent size: Pt is literal,
// Percent scales parentSize, Auto falls back to fallback (availableWidth
// for width, per spec.md section 4.2).
func resolveAxis(d model.Dimension, parentSize, fallback float64) float64 {
	switch d.Kind {
	case model.DimPt:
		return d.Value
	case model.DimPercent:
		return parentSize * d.Value / 100
	default:
		return fallback
	}
}

// layoutText implements spec.md section 4.3/4.5 Text: breaks lines against
// availableWidth, consults the break decider per line-group, flushing a
// Text container LayoutElement and starting a new page when the decider
// calls for a split.
func (f *flow) layoutText(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, x, availableWidth float64, allowBreak bool) error {
	runs := textRuns(node, resolved)
	specs := make([]text.RunSpec, len(runs))
	for i, r := range runs {
		specs[i] = text.RunSpec{Content: r.content, Font: f.eng.resolveFont(r.style), FontSize: r.style.FontSize, LetterSpacing: r.style.LetterSpacing}
	}
	lines, _ := text.BreakLines(specs, availableWidth)
	if len(lines) == 0 {
		return nil
	}

	lineHeight, baseline := text.LineMetrics(resolved.FontSize, resolved.LineHeight)
	heights := make([]float64, len(lines))
	for i := range heights {
		heights[i] = lineHeight
	}

	idx := 0
	for idx < len(lines) {
		remaining := c.RemainingHeight()
		rest := heights[idx:]
		decision := pagebreak.Decide(rest, remaining, c.ContentHeight, resolved.MinOrphanLines, resolved.MinWidowLines)
		if !allowBreak {
			decision = pagebreak.Result{Decision: pagebreak.Place}
		}

		switch decision.Decision {
		case pagebreak.Place:
			f.flushTextLines(c, lines[idx:], runs, x, availableWidth, resolved, lineHeight, baseline, node)
			idx = len(lines)
		case pagebreak.Split:
			cut := idx + decision.SplitAt
			f.flushTextLines(c, lines[idx:cut], runs, x, availableWidth, resolved, lineHeight, baseline, node)
			if err := f.breakPage(); err != nil {
				return err
			}
			c = f.cursor
			idx = cut
		case pagebreak.MoveToNextPage:
			if err := f.breakPage(); err != nil {
				return err
			}
			c = f.cursor
		}
	}
	return nil
}

type styledRun struct {
	content string
	style   style.ResolvedStyle
	href    string
}

func textRuns(node *model.Node, parent style.ResolvedStyle) []styledRun {
	if len(node.Runs) == 0 {
		content := applyTextTransform(node.Content, parent.TextTransform)
		return []styledRun{{content: content, style: parent}}
	}
	runs := make([]styledRun, len(node.Runs))
	for i, r := range node.Runs {
		s := style.Resolve(r.Style, parent)
		runs[i] = styledRun{content: applyTextTransform(r.Content, s.TextTransform), style: s, href: r.Href}
	}
	return runs
}

func applyTextTransform(s string, t model.TextTransform) string {
	switch t {
	case model.TransformUppercase:
		return toUpper(s)
	case model.TransformLowercase:
		return toLower(s)
	case model.TransformCapitalize:
		return toCapitalize(s)
	default:
		return s
	}
}

func (f *flow) flushTextLines(c *PageCursor, lines []text.Line, runs []styledRun, x, width float64, resolved style.ResolvedStyle, lineHeight, baseline float64, node *model.Node) {
	snapshot := c.Snapshot()
	startY := c.Y
	for _, line := range lines {
		glyphRuns := make([]GlyphRun, 0, len(line.Fragments))
		for _, frag := range line.Fragments {
			r := runs[frag.RunIndex]
			glyphRuns = append(glyphRuns, GlyphRun{
				Font:       f.eng.resolveFont(r.style),
				FontSize:   r.style.FontSize,
				Color:      r.style.Color,
				Decoration: r.style.TextDecoration,
				Text:       frag.Text,
				Href:       r.href,
			})
		}
		lineX := x
		switch resolved.TextAlign {
		case model.TextCenter:
			lineX = x + (width-line.Advance)/2
		case model.TextRight:
			lineX = x + (width - line.Advance)
		}
		el := &LayoutElement{
			X: lineX, Y: c.Y, Width: line.Advance, Height: lineHeight,
			Draw: DrawCommand{Kind: DrawTextLine, GlyphRuns: glyphRuns, BaselineOffset: baseline},
		}
		c.Push(el)
		c.Y += lineHeight
	}
	elements := c.Drain(snapshot)
	var contentText strings.Builder
	for _, r := range runs {
		contentText.WriteString(r.content)
	}
	container := &LayoutElement{
		X: x, Y: startY, Width: width, Height: c.Y - startY, Children: elements,
		NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation, TextContent: contentText.String(),
	}
	if node.Bookmark != "" {
		container.Bookmark = node.Bookmark
	}
	c.Push(container)
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func toCapitalize(s string) string {
	b := []byte(s)
	atStart := true
	for i, c := range b {
		if c == ' ' {
			atStart = true
			continue
		}
		if atStart && c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
		atStart = false
	}
	return string(b)
}
