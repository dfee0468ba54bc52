package layoutengine

import (
	"fmt"
	"testing"

	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/text"
)

type fakeFonts struct{}

func (fakeFonts) Resolve(family string, weight int, italic bool) (text.Font, error) {
	f14, _ := text.ResolveStandard14(family, weight, italic)
	return text.NewStandard14Font(f14), nil
}

type fakeImages struct{}

func (fakeImages) Resolve(src string) (string, float64, float64, error) {
	return "handle:" + src, 100, 50, nil
}

func newTestEngine() *Engine {
	return &Engine{Fonts: fakeFonts{}, Images: fakeImages{}}
}

func textNode(content string) *model.Node {
	return &model.Node{Kind: model.KindText, Content: content}
}

func TestLayoutSinglePageShortText(t *testing.T) {
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Page: &model.PageConfig{Size: model.PageSize{Name: "A4"}}, Children: []*model.Node{
				textNode("hello world"),
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(ld.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(ld.Pages))
	}
	if len(ld.Pages[0].Elements) == 0 {
		t.Fatalf("expected at least one element")
	}
}

func TestLayoutExplicitPageBreak(t *testing.T) {
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				textNode("first page"),
				{Kind: model.KindPageBreak},
				textNode("second page"),
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(ld.Pages) != 2 {
		t.Fatalf("expected 2 pages from explicit break, got %d", len(ld.Pages))
	}
}

func TestLayoutContainmentInvariant(t *testing.T) {
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				textNode("contained text"),
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	page := ld.Pages[0]
	for _, el := range page.Elements {
		if el.Y+el.Height > page.Height+0.01 {
			t.Fatalf("element extends beyond page height: y=%v h=%v pageHeight=%v", el.Y, el.Height, page.Height)
		}
	}
}

func TestLayoutAbsoluteChildDoesNotConsumeFlowSpace(t *testing.T) {
	top := model.PositionAbsolute
	offset := 5.0
	width := model.Pt(20)
	height := model.Pt(10)
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				{Kind: model.KindView, Children: []*model.Node{
					{
						Kind: model.KindView,
						Style: &model.Style{
							Position: &top,
							Top:      &offset,
							Left:     &offset,
							Width:    &width,
							Height:   &height,
						},
					},
					textNode("after the absolute sibling"),
				}},
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	page := ld.Pages[0]
	if len(page.Elements) != 1 {
		t.Fatalf("expected one top-level View, got %d", len(page.Elements))
	}
	container := page.Elements[0]
	if len(container.Children) != 2 {
		t.Fatalf("expected the absolute view and the text to both be emitted, got %d children", len(container.Children))
	}

	var sawAbsolute, sawText bool
	for _, child := range container.Children {
		if child.Width == 20 && child.Height == 10 {
			sawAbsolute = true
			if child.X != container.X+offset || child.Y != container.Y+offset {
				t.Fatalf("expected absolute child anchored at top/left offset, got x=%v y=%v", child.X, child.Y)
			}
		}
		if child.NodeType == model.KindText {
			sawText = true
			if child.Y != container.Y {
				t.Fatalf("expected the text sibling to start at the container's top, unaffected by the absolute child, got y=%v", child.Y)
			}
		}
	}
	if !sawAbsolute || !sawText {
		t.Fatalf("expected both the absolute child and its normal-flow sibling in the output")
	}
}

func TestLayoutImageDecodeFailureEmitsPlaceholder(t *testing.T) {
	eng := &Engine{Fonts: fakeFonts{}, Images: failingImages{}}
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				{Kind: model.KindImage, Src: "broken.png"},
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := eng.Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(ld.Pages[0].Elements) != 1 {
		t.Fatalf("expected the image element to still be emitted on decode failure, got %d elements", len(ld.Pages[0].Elements))
	}
	el := ld.Pages[0].Elements[0]
	if el.Draw.Kind != DrawImagePlaceholder {
		t.Fatalf("expected a DrawImagePlaceholder command, got %v", el.Draw.Kind)
	}
	if el.Width <= 0 || el.Height <= 0 {
		t.Fatalf("expected the placeholder to reserve a non-zero box, got %vx%v", el.Width, el.Height)
	}
	if len(ld.Warnings) != 1 {
		t.Fatalf("expected one recorded warning, got %d", len(ld.Warnings))
	}
}

func TestLayoutFlexRowSplitsBothChildrenAcrossPageBreak(t *testing.T) {
	var lines []*model.Node
	for i := 0; i < 40; i++ {
		lines = append(lines, textNode("line of body copy that wraps onto a second line in a half-width column"))
	}
	row := model.FlexRow
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				{Kind: model.KindView, Style: &model.Style{FlexDirection: &row}, Children: []*model.Node{
					{Kind: model.KindView, Children: append([]*model.Node{}, lines...)},
					{Kind: model.KindView, Children: append([]*model.Node{}, lines...)},
				}},
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(ld.Pages) < 2 {
		t.Fatalf("expected the 40-line two-column row to spill onto a second page, got %d pages", len(ld.Pages))
	}
	for _, page := range ld.Pages {
		for _, el := range page.Elements {
			assertWithinPage(t, el, page.Height)
		}
	}
}

func assertWithinPage(t *testing.T, el *LayoutElement, pageHeight float64) {
	t.Helper()
	if el.Y+el.Height > pageHeight+0.01 {
		t.Fatalf("element extends beyond page height: y=%v h=%v pageHeight=%v", el.Y, el.Height, pageHeight)
	}
	for _, child := range el.Children {
		assertWithinPage(t, child, pageHeight)
	}
}

type failingImages struct{}

func (failingImages) Resolve(src string) (string, float64, float64, error) {
	return "", 0, 0, fmt.Errorf("unrecognized image format")
}

func TestLayoutFixedFooterReservesSpace(t *testing.T) {
	doc := &model.Document{
		Children: []*model.Node{
			{Kind: model.KindPage, Children: []*model.Node{
				{Kind: model.KindFixed, Position: model.FixedFooter, Children: []*model.Node{textNode("Page {{pageNumber}} of {{totalPages}}")}},
				textNode("body content"),
			}},
		},
		DefaultPage: model.DefaultPageConfig(),
	}
	ld, err := newTestEngine().Layout(doc)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(ld.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(ld.Pages))
	}
	page := ld.Pages[0]
	// The 54pt default top and bottom margins alone leave Height-108; the
	// footer's own height comes out of that as well.
	if page.ContentHeight >= page.Height-108 {
		t.Fatalf("expected footer reservation to shrink content height")
	}
}
