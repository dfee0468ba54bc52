package style

import (
	"testing"

	"github.com/danmolitor/forme/internal/model"
)

func TestResolveDefaults(t *testing.T) {
	r := Resolve(nil, Defaults())
	if r.FontFamily != "Helvetica" || r.FontSize != 12 || r.FontWeight != 400 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
	if r.MinWidowLines != 2 || r.MinOrphanLines != 2 {
		t.Fatalf("expected widow/orphan minima 2, got %d/%d", r.MinWidowLines, r.MinOrphanLines)
	}
}

func TestResolveInheritance(t *testing.T) {
	family := "Times-Roman"
	size := 18.0
	parentStyle := &model.Style{FontFamily: &family, FontSize: &size}
	parent := Resolve(parentStyle, Defaults())

	child := Resolve(nil, parent)
	if child.FontFamily != "Times-Roman" || child.FontSize != 18 {
		t.Fatalf("expected child to inherit font family/size, got %+v", child)
	}

	childSize := 24.0
	childStyle := &model.Style{FontSize: &childSize}
	child2 := Resolve(childStyle, parent)
	if child2.FontFamily != "Times-Roman" {
		t.Fatalf("expected inherited font family to survive overlay, got %q", child2.FontFamily)
	}
	if child2.FontSize != 24 {
		t.Fatalf("expected overlay to win for explicitly set field, got %v", child2.FontSize)
	}
}

func TestResolveNonInheritedDoesNotLeak(t *testing.T) {
	bg := model.Color{R: 1}
	parentStyle := &model.Style{BackgroundColor: &bg}
	parent := Resolve(parentStyle, Defaults())
	if !parent.HasBackground {
		t.Fatalf("expected parent to carry background")
	}

	child := Resolve(nil, parent)
	if child.HasBackground {
		t.Fatalf("background is non-inherited; child should not carry it")
	}
}

func TestResolveGapShorthand(t *testing.T) {
	gap := 10.0
	s := &model.Style{Gap: &gap}
	r := Resolve(s, Defaults())
	if r.RowGap != 10 || r.ColumnGap != 10 {
		t.Fatalf("expected gap shorthand to set both row/column gap, got %+v", r)
	}
	colGap := 4.0
	s2 := &model.Style{Gap: &gap, ColumnGap: &colGap}
	r2 := Resolve(s2, Defaults())
	if r2.RowGap != 10 || r2.ColumnGap != 4 {
		t.Fatalf("expected explicit columnGap to override shorthand, got %+v", r2)
	}
}
