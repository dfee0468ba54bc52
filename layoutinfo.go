package forme

import (
	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/model"
)

// LayoutInfo is the parallel JSON structure spec.md section 6 describes:
// ground truth for hit-testing and inspection tooling, independent of the
// PDF bytes.
type LayoutInfo struct {
	Pages []PageInfo `json:"pages"`
}

type PageInfo struct {
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	ContentX      float64       `json:"contentX"`
	ContentY      float64       `json:"contentY"`
	ContentWidth  float64       `json:"contentWidth"`
	ContentHeight float64       `json:"contentHeight"`
	Elements      []ElementInfo `json:"elements"`
}

// ElementKind is ElementInfo's draw-kind discriminant.
type ElementKind string

const (
	ElementNone  ElementKind = "None"
	ElementRect  ElementKind = "Rect"
	ElementText  ElementKind = "Text"
	ElementImage ElementKind = "Image"
	ElementSvg   ElementKind = "Svg"
)

type ElementInfo struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Kind     ElementKind `json:"kind"`
	NodeType model.Kind  `json:"nodeType"`
	Style    interface{} `json:"style"`

	Children       []ElementInfo         `json:"children,omitempty"`
	SourceLocation *model.SourceLocation `json:"sourceLocation,omitempty"`
	TextContent    string                `json:"textContent,omitempty"`
}

// buildLayoutInfo converts the engine's internal LayoutDocument into the
// public LayoutInfo shape, dropping font/image handles that have no
// meaning outside a render call.
func buildLayoutInfo(doc *layoutengine.LayoutDocument) LayoutInfo {
	info := LayoutInfo{Pages: make([]PageInfo, 0, len(doc.Pages))}
	for _, page := range doc.Pages {
		pi := PageInfo{
			Width: page.Width, Height: page.Height,
			ContentX: page.ContentX, ContentY: page.ContentY,
			ContentWidth: page.ContentWidth, ContentHeight: page.ContentHeight,
			Elements: make([]ElementInfo, 0, len(page.Elements)),
		}
		for _, el := range page.Elements {
			pi.Elements = append(pi.Elements, elementInfoFrom(el))
		}
		info.Pages = append(info.Pages, pi)
	}
	return info
}

func elementInfoFrom(el *layoutengine.LayoutElement) ElementInfo {
	ei := ElementInfo{
		X: el.X, Y: el.Y, Width: el.Width, Height: el.Height,
		Kind:           drawKindToElementKind(el.Draw.Kind),
		NodeType:       el.NodeType,
		Style:          el.Style,
		SourceLocation: el.SourceLocation,
		TextContent:    el.TextContent,
	}
	for _, child := range el.Children {
		ei.Children = append(ei.Children, elementInfoFrom(child))
	}
	return ei
}

func drawKindToElementKind(k layoutengine.DrawKind) ElementKind {
	switch k {
	case layoutengine.DrawRect:
		return ElementRect
	case layoutengine.DrawTextLine:
		return ElementText
	case layoutengine.DrawImage:
		return ElementImage
	case layoutengine.DrawSvg:
		return ElementSvg
	default:
		return ElementNone
	}
}
