package fontreg

import "testing"

func TestResolveFallsBackToStandard14(t *testing.T) {
	r := New()
	font, err := r.Resolve("Helvetica", 400, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if font.Name() == "" {
		t.Fatal("expected a non-empty font name")
	}
	if font.Embedded() {
		t.Fatal("expected standard-14 fallback to be non-embedded")
	}
}

func TestResolveUnknownFamilyFallsBackToHelvetica(t *testing.T) {
	r := New()
	font, err := r.Resolve("SomeMadeUpFont", 700, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if font.Embedded() {
		t.Fatal("expected fallback to be non-embedded")
	}
}
