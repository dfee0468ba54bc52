package pdfwriter

import (
	"strings"
	"testing"

	"github.com/danmolitor/forme/internal/text"
)

func TestEmitStandard14FontWritesType1Dict(t *testing.T) {
	w := New()
	obj := w.EmitStandard14Font(text.Standard14("Helvetica-Bold"))
	if obj != 1 {
		t.Fatalf("expected object number 1, got %d", obj)
	}
	body := w.buf.String()
	for _, want := range []string{"/Type /Font", "/Subtype /Type1", "/BaseFont /Helvetica-Bold", "/Encoding /WinAnsiEncoding"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in font dict, got: %s", want, body)
		}
	}
}

func TestSanitizePostScriptNameStripsSpaces(t *testing.T) {
	if got := sanitizePostScriptName("My Font Name"); got != "MyFontName" {
		t.Fatalf("got %q", got)
	}
	if got := sanitizePostScriptName(""); got != "CustomFont" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestResourcesSubDictDedupesAndFormats(t *testing.T) {
	nameToResource := map[string]string{"Helvetica": "F1", "Helvetica-Bold": "F1"}
	resourceToObj := map[string]int{"F1": 3}

	got := resourcesSubDict("Font", nameToResource, resourceToObj)
	if !strings.Contains(got, "/Font <<") {
		t.Fatalf("missing dict opener: %s", got)
	}
	if !strings.Contains(got, "/F1 3 0 R") {
		t.Fatalf("missing resource reference: %s", got)
	}
	if strings.Count(got, "/F1 3 0 R") != 1 {
		t.Fatalf("expected exactly one F1 entry, got: %s", got)
	}
}
