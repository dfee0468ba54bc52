package text

// Font is the measurement surface the layout engine and PDF serializer both
// use, whether the underlying source is a standard-14 base font or a parsed
// TrueType file. Widths are always returned in points, already scaled by
// the caller's font size.
type Font interface {
	// Advance returns the horizontal advance of r, in points, at fontSize.
	Advance(r rune, fontSize float64) float64
	// Ascent/Descent return the font's vertical metrics, in points, at
	// fontSize (descent is negative, matching PDF glyph space convention).
	Ascent(fontSize float64) float64
	Descent(fontSize float64) float64
	// Name is the resolved PostScript/base-14 name used in the PDF font
	// dictionary.
	Name() string
	// Embedded reports whether this font's file is embedded in the PDF
	// (true for TrueType sources, false for standard-14).
	Embedded() bool
	// Source returns the underlying Standard14 base font and/or parsed
	// TrueType, whichever is non-zero, so internal/pdfwriter can build the
	// right font dictionary without a type switch on an unexported type.
	Source() (base Standard14, tt *TrueType)
}

// standard14Font adapts a Standard14 to the Font interface.
type standard14Font struct {
	base Standard14
}

func NewStandard14Font(base Standard14) Font { return standard14Font{base: base} }

func (f standard14Font) Advance(r rune, fontSize float64) float64 {
	return float64(f.base.GlyphWidth(r)) / 1000 * fontSize
}
func (f standard14Font) Ascent(fontSize float64) float64 {
	return float64(f.base.Ascent()) / 1000 * fontSize
}
func (f standard14Font) Descent(fontSize float64) float64 {
	return float64(f.base.Descent()) / 1000 * fontSize
}
func (f standard14Font) Name() string   { return string(f.base) }
func (f standard14Font) Embedded() bool { return false }
func (f standard14Font) Source() (Standard14, *TrueType) { return f.base, nil }

// trueTypeFont adapts a parsed TrueType to the Font interface.
type trueTypeFont struct {
	tt *TrueType
}

func NewTrueTypeFont(tt *TrueType) Font { return trueTypeFont{tt: tt} }

func (f trueTypeFont) scale() float64 {
	if f.tt.UnitsPerEm == 0 {
		return 1.0 / 1000
	}
	return 1.0 / float64(f.tt.UnitsPerEm)
}

func (f trueTypeFont) Advance(r rune, fontSize float64) float64 {
	gid, ok := f.tt.Chars[r]
	if !ok || int(gid) >= len(f.tt.Widths) {
		if len(f.tt.Widths) > 0 {
			gid = 0
		} else {
			return 0
		}
	}
	return float64(f.tt.Widths[gid]) * f.scale() * fontSize
}

func (f trueTypeFont) Ascent(fontSize float64) float64 {
	return float64(f.tt.Ascender) * f.scale() * fontSize
}

func (f trueTypeFont) Descent(fontSize float64) float64 {
	return float64(f.tt.Descender) * f.scale() * fontSize
}

func (f trueTypeFont) Name() string   { return f.tt.PostScriptName }
func (f trueTypeFont) Embedded() bool { return true }
func (f trueTypeFont) Source() (Standard14, *TrueType) { return "", f.tt }

// LineMetrics computes the actual line height and baseline offset for a
// resolved line-height multiplier at fontSize, per spec.md section 4.3: the
// baseline sits at 0.8 of the line box height from its top, a constant
// approximation rather than scaling the font's true ascent.
func LineMetrics(fontSize, lineHeightMultiplier float64) (lineHeight, baselineOffset float64) {
	lineHeight = fontSize * lineHeightMultiplier
	baselineOffset = lineHeight * 0.8
	return
}
