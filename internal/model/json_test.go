package model

import (
	"encoding/json"
	"testing"
)

func TestDimensionRoundTrip(t *testing.T) {
	cases := []Dimension{Pt(12.5), Percent(50), Auto()}
	for _, d := range cases {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal %v: %v", d, err)
		}
		var got Dimension
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != d {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
		}
	}
}

func TestDimensionUnmarshalRejectsUnknownString(t *testing.T) {
	var d Dimension
	if err := json.Unmarshal([]byte(`"Bogus"`), &d); err == nil {
		t.Fatal("expected an error for an unrecognized Dimension string")
	}
}

func TestDimensionUnmarshalRejectsEmptyObject(t *testing.T) {
	var d Dimension
	if err := json.Unmarshal([]byte(`{}`), &d); err == nil {
		t.Fatal("expected an error for an object missing Pt/Percent")
	}
}

func TestColumnWidthRoundTrip(t *testing.T) {
	cases := []ColumnWidth{
		{Kind: ColFraction, Value: 2},
		{Kind: ColFixed, Value: 100},
		{Kind: ColAuto},
	}
	for _, c := range cases {
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("marshal %v: %v", c, err)
		}
		var got ColumnWidth
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != c {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
		}
	}
}
