package pdfwriter

import (
	"fmt"
	"strings"

	"github.com/danmolitor/forme/internal/text"
)

// FontResource is one font registered into the PDF, with its resolved
// resource name (e.g. "F1") for content-stream /Tf operators.
type FontResource struct {
	ResourceName string
	ObjectNumber int
}

// EmitStandard14Font writes a simple Type1 font dictionary referencing one
// of the 14 base fonts by name only — no embedding, per spec.md section
// 4.3/4.6.
func (w *Writer) EmitStandard14Font(base text.Standard14) int {
	obj := w.NewObject()
	w.line("<<")
	w.line("/Type /Font")
	w.line("/Subtype /Type1")
	w.Writef("/BaseFont /%s", base)
	w.line("/Encoding /WinAnsiEncoding")
	w.line(">>")
	w.EndObject()
	return obj
}

// EmitTrueTypeFont writes a Type0/CIDFontType2 composite font: the
// top-level Type0 font, its CIDFontType2 descendant, a FontDescriptor, an
// embedded FontFile2 stream, and a ToUnicode CMap — the object graph
// cdvelop-tinypdf's fontsPut builds, reimplemented here against this
// engine's own object-numbering model (DESIGN.md). Glyph IDs are kept as
// Identity (CIDToGIDMap /Identity); this engine embeds the complete font
// program rather than performing byte-level glyf/loca subsetting, a
// documented simplification relative to full TrueType subsetting.
func (w *Writer) EmitTrueTypeFont(tt *text.TrueType) int {
	fontFileObj := w.NewObject()
	compressed := Deflate(tt.Data)
	w.line("<<")
	w.line("/Filter /FlateDecode")
	w.Writef("/Length1 %d", len(tt.Data))
	w.Stream(compressed)
	w.EndObject()

	toUnicodeObj := w.emitToUnicodeCMap(tt)

	descriptorObj := w.NewObject()
	flags := 4 // symbolic, per cdvelop-tinypdf's fontManager descriptor defaults
	if tt.IsFixedPitch {
		flags |= 1
	}
	if tt.Italic {
		flags |= 64
	}
	w.line("<<")
	w.line("/Type /FontDescriptor")
	w.Writef("/FontName /%s", sanitizePostScriptName(tt.PostScriptName))
	w.Writef("/Flags %d", flags)
	w.Writef("/Ascent %d", tt.Ascender)
	w.Writef("/Descent %d", tt.Descender)
	w.line("/CapHeight 0")
	w.line("/ItalicAngle 0")
	w.line("/StemV 80")
	w.Writef("/FontFile2 %d 0 R", fontFileObj)
	w.line(">>")
	w.EndObject()

	cidFontObj := w.NewObject()
	w.line("<<")
	w.line("/Type /Font")
	w.line("/Subtype /CIDFontType2")
	w.Writef("/BaseFont /%s", sanitizePostScriptName(tt.PostScriptName))
	w.line(`/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >>`)
	w.Writef("/FontDescriptor %d 0 R", descriptorObj)
	w.line("/CIDToGIDMap /Identity")
	w.Writef("/W %s", widthsArray(tt))
	w.line(">>")
	w.EndObject()

	type0Obj := w.NewObject()
	w.line("<<")
	w.line("/Type /Font")
	w.line("/Subtype /Type0")
	w.Writef("/BaseFont /%s", sanitizePostScriptName(tt.PostScriptName))
	w.line("/Encoding /Identity-H")
	w.Writef("/DescendantFonts [%d 0 R]", cidFontObj)
	w.Writef("/ToUnicode %d 0 R", toUnicodeObj)
	w.line(">>")
	w.EndObject()

	return type0Obj
}

// widthsArray emits the /W array for a CIDFontType2 descendant: scaled
// to the standard 1000-unit glyph space PDF expects, per glyph index.
func widthsArray(tt *text.TrueType) string {
	var b strings.Builder
	b.WriteString("[")
	scale := 1.0
	if tt.UnitsPerEm > 0 {
		scale = 1000.0 / float64(tt.UnitsPerEm)
	}
	for gid, w := range tt.Widths {
		fmt.Fprintf(&b, "%d [%d] ", gid, int(float64(w)*scale))
	}
	b.WriteString("]")
	return b.String()
}

// emitToUnicodeCMap writes a minimal ToUnicode CMap mapping each glyph ID
// back to its Unicode code point, so copy/paste and text extraction work
// from the rendered PDF.
func (w *Writer) emitToUnicodeCMap(tt *text.TrueType) int {
	var b strings.Builder
	b.WriteString("/CIDInit /ProcSet findresource begin\n")
	b.WriteString("12 dict begin\nbegincmap\n")
	b.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	b.WriteString("/CMapName /Adobe-Identity-UCS def\n/CMapType 2 def\n")
	b.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	fmt.Fprintf(&b, "%d beginbfchar\n", len(tt.Chars))
	for r, gid := range tt.Chars {
		fmt.Fprintf(&b, "<%04X> <%04X>\n", gid, r)
	}
	b.WriteString("endbfchar\nendcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n")

	obj := w.NewObject()
	w.line("<<")
	w.Stream([]byte(b.String()))
	w.EndObject()
	return obj
}

func sanitizePostScriptName(name string) string {
	if name == "" {
		return "CustomFont"
	}
	return strings.ReplaceAll(name, " ", "")
}
