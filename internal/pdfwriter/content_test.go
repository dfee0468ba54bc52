package pdfwriter

import (
	"strings"
	"testing"

	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/text"
)

func TestEmitRectFillAndBorder(t *testing.T) {
	cb := NewContentBuilder(792, nil, nil)
	el := &layoutengine.LayoutElement{
		X: 10, Y: 20, Width: 100, Height: 50,
		Draw: layoutengine.DrawCommand{
			Kind:        layoutengine.DrawRect,
			Fill:        model.Color{R: 1, G: 0, B: 0, A: 1},
			HasFill:     true,
			Border:      model.Edges{Top: 2, Right: 2, Bottom: 2, Left: 2},
			BorderColor: model.Color{R: 0, G: 0, B: 0, A: 1},
		},
	}
	cb.EmitElement(el)
	out := cb.Bytes()

	if !strings.Contains(string(out), "re f") {
		t.Fatalf("expected a fill operator, got: %s", out)
	}
	if !strings.Contains(string(out), "re S") {
		t.Fatalf("expected a stroke operator, got: %s", out)
	}
	if !strings.Contains(string(out), "1.000 0.000 0.000 rg") {
		t.Fatalf("expected fill color operator, got: %s", out)
	}
}

func TestEmitTextLineReferencesFontResource(t *testing.T) {
	f14, _ := text.ResolveStandard14("Helvetica", 400, false)
	font := text.NewStandard14Font(f14)
	fontRefs := map[string]string{font.Name(): "F1"}

	cb := NewContentBuilder(792, fontRefs, nil)
	el := &layoutengine.LayoutElement{
		X: 0, Y: 0, Width: 100, Height: 12,
		Draw: layoutengine.DrawCommand{
			Kind:           layoutengine.DrawTextLine,
			BaselineOffset: 10,
			GlyphRuns: []layoutengine.GlyphRun{
				{Font: font, FontSize: 12, Text: "hello"},
			},
		},
	}
	cb.EmitElement(el)
	out := string(cb.Bytes())

	if !strings.Contains(out, "/F1 12.00 Tf") {
		t.Fatalf("expected font resource reference, got: %s", out)
	}
	if !strings.Contains(out, "(hello) Tj") {
		t.Fatalf("expected text-show operator, got: %s", out)
	}
}

func TestEmitImageSkipsUnresolvedHandle(t *testing.T) {
	cb := NewContentBuilder(792, nil, map[string]string{})
	el := &layoutengine.LayoutElement{
		Draw: layoutengine.DrawCommand{Kind: layoutengine.DrawImage, ImageHandle: "missing"},
	}
	cb.EmitElement(el)
	if len(cb.Bytes()) != 0 {
		t.Fatalf("expected no output for an unresolved image handle, got: %s", cb.Bytes())
	}
}

func TestEmitImagePlaceholderDrawsStrokedRectOnly(t *testing.T) {
	cb := NewContentBuilder(792, nil, nil)
	el := &layoutengine.LayoutElement{
		X: 5, Y: 5, Width: 100, Height: 100,
		Draw: layoutengine.DrawCommand{Kind: layoutengine.DrawImagePlaceholder},
	}
	cb.EmitElement(el)
	out := string(cb.Bytes())

	if !strings.Contains(out, "re S") {
		t.Fatalf("expected a stroked rectangle, got: %s", out)
	}
	if strings.Contains(out, "re f") {
		t.Fatalf("expected no fill operator for a placeholder, got: %s", out)
	}
}

func TestSvgViewBoxTransformFallsBackToIdentity(t *testing.T) {
	sx, sy, ox, oy := svgViewBoxTransform("", 100, 50)
	if sx != 1 || sy != 1 || ox != 0 || oy != 0 {
		t.Fatalf("expected identity fallback, got %v %v %v %v", sx, sy, ox, oy)
	}

	sx, sy, ox, oy = svgViewBoxTransform("0 0 200 100", 100, 50)
	if sx != 0.5 || sy != 0.5 || ox != 0 || oy != 0 {
		t.Fatalf("unexpected scale for viewBox, got %v %v %v %v", sx, sy, ox, oy)
	}
}
