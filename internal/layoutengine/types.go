// Package layoutengine walks a document tree with a page-aware cursor and
// produces the flattened LayoutDocument a PDF serializer can emit directly:
// LayoutPages of LayoutElements, each carrying a DrawCommand. The central
// operation, layoutNode, mirrors the teacher's recursiveSetPositions cursor
// threading but — unlike the teacher, which only allows breaks between
// top-level nodes — allows a break at any depth, per spec.md section 4.5.
package layoutengine

import (
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/style"
	"github.com/danmolitor/forme/internal/text"
)

// DrawKind discriminates DrawCommand's variants.
type DrawKind int

const (
	DrawNone DrawKind = iota
	DrawRect
	DrawTextLine
	DrawImage
	DrawSvg
	DrawImagePlaceholder
)

// GlyphRun is one contiguously-styled run of positioned glyphs within a
// TextLine draw command.
type GlyphRun struct {
	Font       text.Font
	FontSize   float64
	Color      model.Color
	Decoration model.TextDecoration
	Text       string
	Href       string
}

// DrawCommand is the paint instruction for one LayoutElement.
type DrawCommand struct {
	Kind DrawKind

	// Rect
	Fill        model.Color
	HasFill     bool
	Border      model.Edges
	BorderColor model.Color
	CornerRadii model.Corners

	// TextLine
	GlyphRuns      []GlyphRun
	BaselineOffset float64

	// Image
	ImageHandle string

	// Svg
	Markup  string
	ViewBox string
}

// LayoutElement is one entry in a page's flattened content tree.
type LayoutElement struct {
	X, Y, Width, Height float64
	Draw                DrawCommand
	Children            []*LayoutElement
	LinkHref            string
	Bookmark            string

	// NodeType/Style/SourceLocation/TextContent feed forme.LayoutInfo
	// (spec.md section 6 ElementInfo), carried alongside the draw tree
	// rather than recomputed from it.
	NodeType       model.Kind
	Style          style.ResolvedStyle
	SourceLocation *model.SourceLocation
	TextContent    string
}

// LayoutPage is one page of positioned content.
type LayoutPage struct {
	Width, Height float64
	ContentX, ContentY, ContentWidth, ContentHeight float64
	Elements      []*LayoutElement
}

// LayoutDocument is the engine's complete output.
type LayoutDocument struct {
	Pages    []*LayoutPage
	Warnings []Warning
}

// Warning is a non-fatal degraded-path record (spec.md section 7
// LayoutWarning/ImageError class), collected rather than returned as a
// hard failure.
type Warning struct {
	NodeKind model.Kind
	Message  string
}

// FontResolver is the subset of internal/fontreg.Registry the engine needs:
// resolve a (family, weight, italic) to a measurable, embeddable Font.
type FontResolver interface {
	Resolve(family string, weight int, italic bool) (text.Font, error)
}

// ImageResolver decodes image bytes (already extracted from a data URI or
// loaded by an external collaborator) into a handle plus intrinsic pixel
// dimensions, per spec.md section 4.5 Image.
type ImageResolver interface {
	Resolve(src string) (handle string, intrinsicWidth, intrinsicHeight float64, err error)
}

// Engine holds the resolvers threaded through one Render call.
type Engine struct {
	Fonts  FontResolver
	Images ImageResolver

	warnings []Warning
}

func (e *Engine) warn(kind model.Kind, msg string) {
	e.warnings = append(e.warnings, Warning{NodeKind: kind, Message: msg})
}

// resolveFont is a small convenience wrapper that falls back to Helvetica
// on resolution failure, recording a LayoutWarning rather than aborting.
func (e *Engine) resolveFont(s style.ResolvedStyle) text.Font {
	f, err := e.Fonts.Resolve(s.FontFamily, s.FontWeight, s.Italic)
	if err != nil {
		e.warn(model.KindText, "font resolution failed for "+s.FontFamily+": "+err.Error())
		f, _ = e.Fonts.Resolve("Helvetica", 400, false)
	}
	return f
}
