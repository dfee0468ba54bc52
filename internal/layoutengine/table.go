package layoutengine

import (
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/style"
)

// resolveColumnWidths implements spec.md section 4.5 Table: Fraction
// columns distribute a fraction of total width, Fixed columns take their
// literal points, Auto columns split whatever remains evenly. Widths are
// computed once and reused across every page the table spans.
func resolveColumnWidths(columns []model.ColumnWidth, totalWidth float64) []float64 {
	widths := make([]float64, len(columns))
	var fixedSum, fractionSum float64
	var autoCount int
	for _, c := range columns {
		switch c.Kind {
		case model.ColFixed:
			fixedSum += c.Value
		case model.ColFraction:
			fractionSum += c.Value
		case model.ColAuto:
			autoCount++
		}
	}
	var fractionWidth float64
	for i, c := range columns {
		switch c.Kind {
		case model.ColFixed:
			widths[i] = c.Value
		case model.ColFraction:
			widths[i] = totalWidth * c.Value
			fractionWidth += widths[i]
		}
	}
	if remaining := totalWidth - fixedSum - fractionWidth; autoCount > 0 && remaining > 0 {
		for i, c := range columns {
			if c.Kind == model.ColAuto {
				widths[i] = remaining / float64(autoCount)
			}
		}
	}
	return widths
}

// clampAutoMinimums enforces the supplemented feature of SPEC_FULL.md: an
// Auto column never shrinks below its measured min_content_width; the
// shortfall is taken from other Auto columns first, matching the
// flex-shrink minimum clamp of spec.md section 4.4 applied to table width.
func clampAutoMinimums(columns []model.ColumnWidth, widths, minContents []float64) {
	var deficit float64
	var donors []int
	for i, c := range columns {
		if c.Kind != model.ColAuto {
			continue
		}
		if widths[i] < minContents[i] {
			deficit += minContents[i] - widths[i]
			widths[i] = minContents[i]
		} else if widths[i] > minContents[i] {
			donors = append(donors, i)
		}
	}
	if deficit <= 0 || len(donors) == 0 {
		return
	}
	var donorSlack float64
	for _, i := range donors {
		donorSlack += widths[i] - minContents[i]
	}
	if donorSlack <= 0 {
		return
	}
	for _, i := range donors {
		slack := widths[i] - minContents[i]
		take := deficit * (slack / donorSlack)
		widths[i] -= take
	}
}

// columnMinContentWidths measures each column's widest cell content across
// every row (header and body alike), reusing the same Text-node intrinsic
// measurement flexrow.go's flex-shrink clamp uses, per spec.md section 4.4
// applied to table columns (clampAutoMinimums' doc comment).
func columnMinContentWidths(f *flow, columns []model.ColumnWidth, rows []*model.Node, parentStyle style.ResolvedStyle) []float64 {
	mins := make([]float64, len(columns))
	for _, row := range rows {
		rowStyle := style.Resolve(row.Style, parentStyle)
		for i, cell := range row.Children {
			if i >= len(mins) {
				break
			}
			cellStyle := style.Resolve(cell.Style, rowStyle)
			var cellMax float64
			for _, child := range cell.Children {
				if w := minContentWidth(f, child, cellStyle); w > cellMax {
					cellMax = w
				}
			}
			if cellMax > mins[i] {
				mins[i] = cellMax
			}
		}
	}
	return mins
}

// layoutTable implements spec.md section 4.5 Table, including header
// repetition across page breaks and per-cell overflow splitting when a
// row outlives the page it started on.
func (f *flow) layoutTable(c *PageCursor, node *model.Node, resolved style.ResolvedStyle, x, availableWidth float64, allowBreak bool) error {
	widths := resolveColumnWidths(node.Columns, availableWidth)

	var headerRows, bodyRows []*model.Node
	for _, row := range node.Children {
		if row.IsHeader {
			headerRows = append(headerRows, row)
		} else {
			bodyRows = append(bodyRows, row)
		}
	}

	minContents := columnMinContentWidths(f, node.Columns, node.Children, resolved)
	clampAutoMinimums(node.Columns, widths, minContents)

	snapshot := c.Snapshot()
	startY := c.Y

	emitHeaders := func() error {
		for _, row := range headerRows {
			if err := f.layoutTableRow(f.cursor, row, resolved, x, widths, allowBreak, nil); err != nil {
				return err
			}
		}
		return nil
	}
	if err := emitHeaders(); err != nil {
		return err
	}

	for _, row := range bodyRows {
		rowHeight := measureRowHeight(f, row, resolved, widths)
		if allowBreak && rowHeight > f.cursor.RemainingHeight() {
			fresh := f.cursor.NewPage()
			if rowHeight <= fresh.ContentHeight {
				if err := f.breakPage(); err != nil {
					return err
				}
				if err := emitHeaders(); err != nil {
					return err
				}
			}
		}
		if err := f.layoutTableRow(f.cursor, row, resolved, x, widths, allowBreak, emitHeaders); err != nil {
			return err
		}
	}

	// Only the table container spanning the FIRST page is collected here;
	// rows emitted after a page break already live on their own finalized
	// pages via breakPage, matching spec.md's "N copies of every header
	// row" invariant rather than one container spanning all pages. c keeps
	// referring to that first page's cursor object throughout, even once
	// f.cursor has moved on, because Finalize copies rather than aliases
	// Elements — pushing onto c here never lands on an already-finalized
	// page.
	children := c.Drain(snapshot)
	height := c.Y - startY
	el := &LayoutElement{X: x, Y: startY, Width: availableWidth, Height: height, Children: children, NodeType: node.Kind, Style: resolved, SourceLocation: node.SourceLocation}
	c.Push(el)
	return nil
}

func measureRowHeight(f *flow, row *model.Node, parentStyle style.ResolvedStyle, widths []float64) float64 {
	rowStyle := style.Resolve(row.Style, parentStyle)
	var maxH float64
	for i, cell := range row.Children {
		w := widths[0]
		if i < len(widths) {
			w = widths[i]
		}
		scratch := NewCursor(w+1000, 1_000_000, model.Edges{})
		cellStyle := style.Resolve(cell.Style, rowStyle)
		normalChildren, _ := splitAbsoluteChildren(cell.Children, cellStyle)
		for _, ch := range normalChildren {
			_ = f.layoutInto(scratch, ch, 0, w, cellStyle)
		}
		if scratch.Y > maxH {
			maxH = scratch.Y
		}
	}
	return maxH
}

// layoutTableRow emits the row's container, one container per cell, each
// cell's children laid out via a non-breaking dry run first, per spec.md
// section 4.5 point 2: when the tallest cell overflows what remains of the
// page, every cell is cut at the same shared Y (rowCutY), the row's first
// fragment is pushed onto c and wrapped in cell/row containers same as the
// non-overflowing case, and any leftover per cell continues onto freshly
// appended "cell_pages" — real pages flushed via f.breakPage, with
// emitHeaders (if non-nil) re-run on each one so a table's header keeps
// repeating even when a single row outlives the page it started on.
func (f *flow) layoutTableRow(c *PageCursor, row *model.Node, parentStyle style.ResolvedStyle, x float64, widths []float64, allowBreak bool, emitHeaders func() error) error {
	rowStyle := style.Resolve(row.Style, parentStyle)
	snapshot := c.Snapshot()
	startY := c.Y

	cellX := x
	offsets := make([]float64, len(row.Children))
	cellWidths := make([]float64, len(row.Children))
	cellStyles := make([]style.ResolvedStyle, len(row.Children))
	absoluteByCell := make([][]*model.Node, len(row.Children))
	remainders := make([][]*LayoutElement, len(row.Children))
	for i, cell := range row.Children {
		w := widths[0]
		if i < len(widths) {
			w = widths[i]
		}
		cellStyle := style.Resolve(cell.Style, rowStyle)
		cellStyles[i] = cellStyle
		cellWidths[i] = w
		offsets[i] = cellX
		cellX += w

		normalChildren, absChildren := splitAbsoluteChildren(cell.Children, cellStyle)
		absoluteByCell[i] = absChildren

		scratch := NewCursor(w+1000, 1_000_000, model.Edges{})
		for _, ch := range normalChildren {
			if err := f.layoutInto(scratch, ch, 0, w, cellStyle); err != nil {
				return err
			}
		}
		remainders[i] = scratch.Elements
	}

	natural := maxRemainderHeight(remainders)
	var cutY float64
	if !allowBreak || natural <= c.RemainingHeight() {
		cutY = natural
	} else {
		cutY = rowCutY(remainders, c.RemainingHeight())
		if cutY <= 0 {
			cutY = c.RemainingHeight()
		}
	}

	var firstFragmentHeight float64
	cellElements := make([][]*LayoutElement, len(row.Children))
	for i := range remainders {
		top, rest := splitElementsAtY(remainders[i], cutY)
		shifted := make([]*LayoutElement, len(top))
		for j, el := range top {
			shifted[j] = shiftElement(el, offsets[i], 0)
		}
		cellElements[i] = shifted
		if h := elementsHeight(top); h > firstFragmentHeight {
			firstFragmentHeight = h
		}
		remainders[i] = shiftElementsUp(rest, cutY)
	}

	for i, cell := range row.Children {
		cellEl := &LayoutElement{X: offsets[i], Y: startY, Width: cellWidths[i], Height: firstFragmentHeight, Children: cellElements[i], NodeType: cell.Kind, Style: cellStyles[i], SourceLocation: cell.SourceLocation}
		c.Push(cellEl)
	}
	c.Y = startY + firstFragmentHeight

	rowChildren := c.Drain(snapshot)
	rowEl := &LayoutElement{X: x, Y: startY, Width: cellX - x, Height: firstFragmentHeight, Children: rowChildren, NodeType: row.Kind, Style: rowStyle, SourceLocation: row.SourceLocation}
	c.Push(rowEl)

	for i := range row.Children {
		if err := f.placeAbsoluteChildren(c, absoluteByCell[i], cellStyles[i], offsets[i], startY, cellWidths[i], firstFragmentHeight); err != nil {
			return err
		}
	}

	for anyRemaining(remainders) {
		if err := f.breakPage(); err != nil {
			return err
		}
		if emitHeaders != nil {
			if err := emitHeaders(); err != nil {
				return err
			}
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
		for i := range remainders {
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
	return nil
}
