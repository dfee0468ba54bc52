package model

import (
	"encoding/json"
	"fmt"
)

// Dimension's wire form is a tagged union: {"Pt": n} | {"Percent": n} |
// "Auto", per spec.md section 6. Decoded via a raw map, in the style of
// the pack's other hand-rolled tagged-union decoders (e.g.
// chatgptauth.OAuthClientConfig.UnmarshalJSON).
func (d Dimension) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DimPt:
		return json.Marshal(map[string]float64{"Pt": d.Value})
	case DimPercent:
		return json.Marshal(map[string]float64{"Percent": d.Value})
	default:
		return json.Marshal("Auto")
	}
}

func (d *Dimension) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Auto" {
			return fmt.Errorf("model: unrecognized Dimension string %q", s)
		}
		*d = Auto()
		return nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decoding Dimension: %w", err)
	}
	if v, ok := raw["Pt"]; ok {
		*d = Pt(v)
		return nil
	}
	if v, ok := raw["Percent"]; ok {
		*d = Percent(v)
		return nil
	}
	return fmt.Errorf("model: Dimension object missing Pt/Percent key: %v", raw)
}

// ColumnWidth's wire form mirrors Dimension: {"Fraction": f} | {"Fixed": n}
// | "Auto".
func (c ColumnWidth) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ColFraction:
		return json.Marshal(map[string]float64{"Fraction": c.Value})
	case ColFixed:
		return json.Marshal(map[string]float64{"Fixed": c.Value})
	default:
		return json.Marshal("Auto")
	}
}

func (c *ColumnWidth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Auto" {
			return fmt.Errorf("model: unrecognized ColumnWidth string %q", s)
		}
		*c = ColumnWidth{Kind: ColAuto}
		return nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decoding ColumnWidth: %w", err)
	}
	if v, ok := raw["Fraction"]; ok {
		*c = ColumnWidth{Kind: ColFraction, Value: v}
		return nil
	}
	if v, ok := raw["Fixed"]; ok {
		*c = ColumnWidth{Kind: ColFixed, Value: v}
		return nil
	}
	return fmt.Errorf("model: ColumnWidth object missing Fraction/Fixed key: %v", raw)
}
