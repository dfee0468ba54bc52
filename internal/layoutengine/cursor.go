package layoutengine

import "github.com/danmolitor/forme/internal/model"

// FixedSlot is a retained Fixed(Header)/Fixed(Footer) node that must repeat
// on every page from here forward, per spec.md section 3 PageCursor.
type FixedSlot struct {
	Node   *model.Node
	Height float64
}

// PageCursor is the mutable write head threaded through layoutNode
// recursion for one page, generalizing the teacher's resolverCursor (which
// only tracks x,y) with content-box accounting and fixed-element
// reservation, per spec.md section 3.
type PageCursor struct {
	PageWidth, PageHeight float64
	Margin                model.Edges

	// ContentX/ContentY/ContentWidth/ContentHeight account for margins
	// minus whatever vertical space this page's Fixed(Header) reserves.
	ContentX, ContentY       float64
	ContentWidth             float64
	ContentHeight            float64

	Y float64 // current offset from ContentY, downward positive

	Elements []*LayoutElement

	headers []FixedSlot
	footers []FixedSlot
}

// NewCursor builds the first cursor for a Page node.
func NewCursor(pageWidth, pageHeight float64, margin model.Edges) *PageCursor {
	c := &PageCursor{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Margin:     margin,
	}
	c.recomputeContentBox()
	return c
}

func (c *PageCursor) recomputeContentBox() {
	var headerH, footerH float64
	for _, h := range c.headers {
		headerH += h.Height
	}
	for _, f := range c.footers {
		footerH += f.Height
	}
	c.ContentX = c.Margin.Left
	c.ContentY = c.Margin.Top + headerH
	c.ContentWidth = c.PageWidth - c.Margin.Left - c.Margin.Right
	c.ContentHeight = c.PageHeight - c.Margin.Top - c.Margin.Bottom - headerH - footerH
}

// RemainingHeight is the vertical budget left before the footer reservation.
func (c *PageCursor) RemainingHeight() float64 {
	return c.ContentHeight - c.Y
}

// AddFixed retains a header or footer for this and all subsequent pages.
func (c *PageCursor) AddFixed(slot FixedSlot, position model.FixedPosition) {
	if position == model.FixedHeader {
		c.headers = append(c.headers, slot)
	} else {
		c.footers = append(c.footers, slot)
	}
	c.recomputeContentBox()
}

// Snapshot returns the current element count, for the snapshot-and-collect
// pattern (spec.md section 4.5): save before recursing into children, drain
// after, to rebuild a depth-first hierarchy.
func (c *PageCursor) Snapshot() int { return len(c.Elements) }

// Drain removes and returns the elements appended since snapshot.
func (c *PageCursor) Drain(snapshot int) []*LayoutElement {
	drained := append([]*LayoutElement(nil), c.Elements[snapshot:]...)
	c.Elements = c.Elements[:snapshot]
	return drained
}

// Push appends el to the cursor's top-level element list (used when the
// caller does not need snapshot-and-collect nesting).
func (c *PageCursor) Push(el *LayoutElement) {
	c.Elements = append(c.Elements, el)
}

// Clone produces an independent cursor copy for non-breaking dry-run
// measurement (e.g. layoutView's unbreakable-block pre-check): same
// geometry and fixed slots, but its own element list and Y offset so the
// dry run never mutates the real page's cursor.
func (c *PageCursor) Clone(y float64) *PageCursor {
	clone := &PageCursor{
		PageWidth:  c.PageWidth,
		PageHeight: c.PageHeight,
		Margin:     c.Margin,
		headers:    append([]FixedSlot(nil), c.headers...),
		footers:    append([]FixedSlot(nil), c.footers...),
	}
	clone.recomputeContentBox()
	clone.Y = y
	return clone
}

// Finalize converts the cursor into a LayoutPage, including header/footer
// elements placed per spec.md section 3's invariant: Fixed(Header) at
// content_y_top_of_page, Fixed(Footer) at page_height - margin_bottom -
// element_height. headerElements/footerElements are supplied by the engine,
// already laid out once per page (placeholders substituted later by the
// serializer once total page count is known). Body elements carry Y as an
// offset from ContentY while the page fills; they are shifted down by
// ContentY here so every element on the returned page is measured from the
// page's top edge.
func (c *PageCursor) Finalize(headerElements, footerElements []*LayoutElement) *LayoutPage {
	elements := make([]*LayoutElement, 0, len(headerElements)+len(c.Elements)+len(footerElements))
	elements = append(elements, headerElements...)
	for _, el := range c.Elements {
		elements = append(elements, shiftElement(el, 0, c.ContentY))
	}
	elements = append(elements, footerElements...)
	return &LayoutPage{
		Width:         c.PageWidth,
		Height:        c.PageHeight,
		ContentX:      c.ContentX,
		ContentY:      c.ContentY,
		ContentWidth:  c.ContentWidth,
		ContentHeight: c.ContentHeight,
		Elements:      elements,
	}
}

// NewPage produces a fresh cursor for the next page, carrying the Fixed
// list forward, per spec.md section 3 PageCursor.new_page().
func (c *PageCursor) NewPage() *PageCursor {
	next := &PageCursor{
		PageWidth:  c.PageWidth,
		PageHeight: c.PageHeight,
		Margin:     c.Margin,
		headers:    append([]FixedSlot(nil), c.headers...),
		footers:    append([]FixedSlot(nil), c.footers...),
	}
	next.recomputeContentBox()
	return next
}
