package layoutengine

import (
	"testing"

	"github.com/danmolitor/forme/internal/model"
)

func TestResolveColumnWidthsFixedFractionAuto(t *testing.T) {
	columns := []model.ColumnWidth{
		{Kind: model.ColFixed, Value: 50},
		{Kind: model.ColFraction, Value: 0.5},
		{Kind: model.ColFraction, Value: 0.25},
		{Kind: model.ColAuto},
	}
	widths := resolveColumnWidths(columns, 400)
	if widths[0] != 50 {
		t.Fatalf("expected fixed column to stay 50, got %v", widths[0])
	}
	// fractions of the 400pt total: 0.5 -> 200, 0.25 -> 100
	if widths[1] != 200 || widths[2] != 100 {
		t.Fatalf("expected fraction split 200/100, got %v/%v", widths[1], widths[2])
	}
	// Auto takes what is left: 400 - 50 - 300 = 50
	if widths[3] != 50 {
		t.Fatalf("expected auto column to get the remaining 50, got %v", widths[3])
	}
}

func TestResolveColumnWidthsAutoSplitsEvenly(t *testing.T) {
	columns := []model.ColumnWidth{
		{Kind: model.ColAuto}, {Kind: model.ColAuto},
	}
	widths := resolveColumnWidths(columns, 100)
	if widths[0] != 50 || widths[1] != 50 {
		t.Fatalf("expected even auto split, got %v/%v", widths[0], widths[1])
	}
}

func TestClampAutoMinimumsTakesFromDonors(t *testing.T) {
	columns := []model.ColumnWidth{{Kind: model.ColAuto}, {Kind: model.ColAuto}}
	widths := []float64{10, 90}
	minContents := []float64{40, 0}

	clampAutoMinimums(columns, widths, minContents)

	if widths[0] != 40 {
		t.Fatalf("expected starved column clamped up to its minimum, got %v", widths[0])
	}
	if widths[1] != 60 {
		t.Fatalf("expected donor column to give up the 30pt shortfall, got %v", widths[1])
	}
}

func TestClampAutoMinimumsNoopWhenNoDeficit(t *testing.T) {
	columns := []model.ColumnWidth{{Kind: model.ColAuto}}
	widths := []float64{100}
	minContents := []float64{50}

	clampAutoMinimums(columns, widths, minContents)

	if widths[0] != 100 {
		t.Fatalf("expected untouched width, got %v", widths[0])
	}
}
