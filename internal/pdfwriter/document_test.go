package pdfwriter

import (
	"strings"
	"testing"

	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/model"
)

func TestAssembleEmitsURILinkAnnotation(t *testing.T) {
	doc := &layoutengine.LayoutDocument{
		Pages: []*layoutengine.LayoutPage{
			{
				Width: 612, Height: 792,
				Elements: []*layoutengine.LayoutElement{
					{X: 10, Y: 20, Width: 100, Height: 30, LinkHref: "https://example.com"},
				},
			},
		},
	}

	out, err := Assemble(doc, AssembleOptions{})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "/Subtype /Link") {
		t.Fatalf("expected a Link annotation, got: %s", s)
	}
	if !strings.Contains(s, "/S /URI") {
		t.Fatalf("expected a URI action, got: %s", s)
	}
	if !strings.Contains(s, "/URI (https://example.com)") {
		t.Fatalf("expected the href to appear as a URI, got: %s", s)
	}
	if !strings.Contains(s, "/Annots [") {
		t.Fatalf("expected the page dict to reference /Annots, got: %s", s)
	}
}

func TestAssembleEmitsInternalDestLinkAnnotation(t *testing.T) {
	doc := &layoutengine.LayoutDocument{
		Pages: []*layoutengine.LayoutPage{
			{Width: 612, Height: 792, Elements: []*layoutengine.LayoutElement{
				{X: 0, Y: 0, Width: 50, Height: 12, LinkHref: "#section-1"},
			}},
			{Width: 612, Height: 792, Elements: []*layoutengine.LayoutElement{
				{X: 0, Y: 0, Width: 50, Height: 12, Bookmark: "section-1"},
			}},
		},
	}

	out, err := Assemble(doc, AssembleOptions{
		Bookmarks: []Bookmark{{Title: "section-1", Page: 1, Y: 40}},
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "/Dest [") {
		t.Fatalf("expected a /Dest reference for the internal link, got: %s", s)
	}
	if strings.Contains(s, "/S /URI") {
		t.Fatalf("internal link should not carry a URI action, got: %s", s)
	}
}

func TestCollectLinksFindsInlineRunHref(t *testing.T) {
	el := &layoutengine.LayoutElement{
		X: 0, Y: 0, Width: 50, Height: 12,
		Draw: layoutengine.DrawCommand{
			Kind: layoutengine.DrawTextLine,
			GlyphRuns: []layoutengine.GlyphRun{
				{Text: "plain "},
				{Text: "linked", Href: "https://example.com/doc"},
			},
		},
	}
	var links []pageLink
	collectLinks(el, &links)

	if len(links) != 1 {
		t.Fatalf("expected exactly one inline link, got %d", len(links))
	}
	if links[0].href != "https://example.com/doc" {
		t.Fatalf("unexpected href: %q", links[0].href)
	}
}

func TestEmitImageXObjectWritesSMaskForAlpha(t *testing.T) {
	w := New()
	obj := w.emitImageXObject(ImageXObject{
		Width: 2, Height: 2,
		RGB:   make([]byte, 2*2*3),
		Alpha: make([]byte, 2*2),
	})
	if obj == 0 {
		t.Fatalf("expected a valid object number")
	}

	out := w.Finish(obj, 0, []byte{})
	s := string(out)
	if !strings.Contains(s, "/SMask") {
		t.Fatalf("expected an /SMask entry for an image with alpha, got: %s", s)
	}
	if !strings.Contains(s, "/ColorSpace /DeviceGray") {
		t.Fatalf("expected the soft mask to be emitted as DeviceGray, got: %s", s)
	}
}

func TestEmitImageXObjectOmitsSMaskWhenOpaque(t *testing.T) {
	w := New()
	obj := w.emitImageXObject(ImageXObject{
		Width: 2, Height: 2,
		RGB: make([]byte, 2*2*3),
	})

	out := w.Finish(obj, 0, []byte{})
	if strings.Contains(string(out), "/SMask") {
		t.Fatalf("expected no /SMask entry for a fully opaque image, got: %s", out)
	}
}

func TestEmitInfoOmitsEmptyFields(t *testing.T) {
	w := New()
	obj := emitInfo(w, model.Metadata{Title: "Doc"})
	if obj == 0 {
		t.Fatalf("expected a valid object number")
	}
}
