package pagebreak

import "testing"

func TestDecidePlaceWhenFits(t *testing.T) {
	r := Decide([]float64{10, 10, 10}, 40, 100, 2, 2)
	if r.Decision != Place {
		t.Fatalf("expected Place, got %v", r.Decision)
	}
}

func TestDecideMoveToNextPageWhenNothingFits(t *testing.T) {
	r := Decide([]float64{50, 50}, 10, 200, 2, 2)
	if r.Decision != MoveToNextPage {
		t.Fatalf("expected MoveToNextPage, got %v", r.Decision)
	}
}

func TestDecideSplitRespectsOrphanAndWidow(t *testing.T) {
	heights := make([]float64, 10)
	for i := range heights {
		heights[i] = 10
	}
	r := Decide(heights, 55, 1000, 2, 2)
	if r.Decision != Split {
		t.Fatalf("expected Split, got %v", r.Decision)
	}
	if r.SplitAt < 2 || 10-r.SplitAt < 2 {
		t.Fatalf("split point %d violates widow/orphan minima", r.SplitAt)
	}
}

func TestDecideAtomicWhenTooFewItems(t *testing.T) {
	r := Decide([]float64{10, 10}, 5, 100, 2, 2)
	if r.Decision != MoveToNextPage {
		t.Fatalf("expected atomic MoveToNextPage for too-few items, got %v", r.Decision)
	}
}

func TestDistributeGrow(t *testing.T) {
	items := []FlexItem{{Basis: 50, Grow: 1}, {Basis: 50, Grow: 1}}
	sizes := Distribute(items, 200)
	if sizes[0] != 100 || sizes[1] != 100 {
		t.Fatalf("expected even grow distribution, got %v", sizes)
	}
}

func TestDistributeShrinkRespectsMinContent(t *testing.T) {
	items := []FlexItem{
		{Basis: 100, Shrink: 1, MinContent: 90},
		{Basis: 100, Shrink: 1, MinContent: 0},
	}
	sizes := Distribute(items, 100)
	if sizes[0] < 90 {
		t.Fatalf("item should not shrink below min content, got %v", sizes[0])
	}
}

func TestWrapLinesPacksGreedily(t *testing.T) {
	items := []FlexItem{{Basis: 40}, {Basis: 40}, {Basis: 40}}
	lines := WrapLines(items, 100, 10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 wrap lines, got %d: %v", len(lines), lines)
	}
}
