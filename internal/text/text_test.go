package text

import "testing"

func TestResolveStandard14Defaults(t *testing.T) {
	f, ok := ResolveStandard14("", 400, false)
	if !ok || f != Helvetica {
		t.Fatalf("expected Helvetica default, got %q ok=%v", f, ok)
	}
	f, ok = ResolveStandard14("Times", 700, true)
	if !ok || f != TimesBoldItalic {
		t.Fatalf("expected Times-BoldItalic, got %q", f)
	}
}

func TestGlyphWidthFixedPitch(t *testing.T) {
	if w := Courier.GlyphWidth('i'); w != 600 {
		t.Fatalf("expected monospace width 600, got %d", w)
	}
}

func TestBreakLinesGreedyWrap(t *testing.T) {
	font := NewStandard14Font(Helvetica)
	runs := []RunSpec{{Content: "the quick brown fox jumps", Font: font, FontSize: 12}}
	lines, minWidth := BreakLines(runs, 60)
	if len(lines) < 2 {
		t.Fatalf("expected text to wrap onto multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l.Advance > 60+0.001 {
			t.Fatalf("line advance %v exceeds max width 60", l.Advance)
		}
	}
	if minWidth <= 0 {
		t.Fatalf("expected positive min content width")
	}
}

func TestBreakLinesSingleOverlongWord(t *testing.T) {
	font := NewStandard14Font(Helvetica)
	runs := []RunSpec{{Content: "supercalifragilisticexpialidocious short", Font: font, FontSize: 12}}
	lines, _ := BreakLines(runs, 10)
	if len(lines) != 2 {
		t.Fatalf("expected overlong word alone on its own line, got %d lines", len(lines))
	}
}

func TestPlaceholderSubstitution(t *testing.T) {
	content := "Page {{pageNumber}} of {{totalPages}}"
	if !HasPlaceholder(content) {
		t.Fatalf("expected placeholder detection")
	}
	got := SubstitutePlaceholders(content, 3, 10)
	want := "Page 3 of 10"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
