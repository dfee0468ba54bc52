package svgpath

import "testing"

func TestParsePathDataMoveLine(t *testing.T) {
	ops := ParsePathData("M10 20 L30 40 Z")
	if len(ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(ops))
	}
	if ops[0].Kind != OpMoveTo || ops[0].Points[0] != (Point{10, 20}) {
		t.Fatalf("unexpected first op: %+v", ops[0])
	}
	if ops[1].Kind != OpLineTo || ops[1].Points[0] != (Point{30, 40}) {
		t.Fatalf("unexpected second op: %+v", ops[1])
	}
	if ops[2].Kind != OpClose {
		t.Fatalf("expected close op, got %+v", ops[2])
	}
}

func TestParsePathDataRelative(t *testing.T) {
	ops := ParsePathData("m10 10 l5 5")
	if ops[1].Points[0] != (Point{15, 15}) {
		t.Fatalf("expected relative lineto resolved to (15,15), got %+v", ops[1].Points[0])
	}
}

func TestExtractPathData(t *testing.T) {
	markup := `<path d="M0 0 L10 10" fill="none"/>`
	if got := ExtractPathData(markup); got != "M0 0 L10 10" {
		t.Fatalf("unexpected extracted path data: %q", got)
	}
}

func TestExtractShapesRect(t *testing.T) {
	shapes := ExtractShapes(`<rect x="1" y="2" width="10" height="20"/>`)
	if len(shapes) != 1 || shapes[0].Kind != "rect" {
		t.Fatalf("expected one rect shape, got %+v", shapes)
	}
	ops := ShapeToPathOps(shapes[0])
	if len(ops) != 5 {
		t.Fatalf("expected rect to expand to 5 ops, got %d", len(ops))
	}
}
