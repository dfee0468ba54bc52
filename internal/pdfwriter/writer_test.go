package pdfwriter

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWritesHeader(t *testing.T) {
	w := New()
	if !bytes.HasPrefix(w.buf.Bytes(), []byte("%PDF-1.7\n")) {
		t.Fatalf("missing PDF header, got: %q", w.buf.Bytes()[:20])
	}
}

func TestObjectOffsetsRecorded(t *testing.T) {
	w := New()
	headerLen := w.buf.Len()

	n := w.NewObject()
	w.line("<< /Type /Catalog >>")
	w.EndObject()

	if n != 1 {
		t.Fatalf("expected first object number 1, got %d", n)
	}
	if w.offsets[n] != headerLen {
		t.Fatalf("expected offset %d, got %d", headerLen, w.offsets[n])
	}
}

func TestReserveThenPatchObjectKeepsSameNumber(t *testing.T) {
	w := New()
	reserved := w.Reserve()

	other := w.NewObject()
	w.line("<< >>")
	w.EndObject()

	w.PatchObject(reserved)
	w.line("<< /Patched true >>")
	w.EndObject()

	if reserved == other {
		t.Fatalf("reserved and emitted object numbers collided: %d", reserved)
	}
	if w.offsets[reserved] == 0 {
		t.Fatalf("PatchObject did not record an offset for reserved object %d", reserved)
	}
}

func TestFinishProducesParsableTrailer(t *testing.T) {
	w := New()
	root := w.NewObject()
	w.line("<< /Type /Catalog >>")
	w.EndObject()

	out := w.Finish(root, 0, []byte{})
	s := string(out)

	if !strings.Contains(s, "%%EOF") {
		t.Fatalf("missing %%EOF trailer")
	}
	if !strings.Contains(s, "trailer") {
		t.Fatalf("missing trailer keyword")
	}
	if !strings.Contains(s, "startxref") {
		t.Fatalf("missing startxref keyword")
	}
	if !strings.Contains(s, "/Root 1 0 R") {
		t.Fatalf("trailer does not reference root object, got: %s", s)
	}
}

func TestEscapeHandlesSpecialChars(t *testing.T) {
	got := Escape(`a (b) \c`)
	want := `a \(b\) \\c`
	if got != want {
		t.Fatalf("Escape(%q) = %q, want %q", `a (b) \c`, got, want)
	}
}

func TestLiteralWrapsInParens(t *testing.T) {
	got := Literal("hello")
	if got != "(hello)" {
		t.Fatalf("Literal(%q) = %q", "hello", got)
	}
}
