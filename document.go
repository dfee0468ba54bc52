// Package forme lays out a page-native document tree and serializes it to
// PDF 1.7, following the pipeline docspec's DocumentBuilder/Document/
// LayoutNode/PdfRenderer chain establishes: parse → resolve style →
// measure text → decide page breaks → lay out → serialize.
package forme

import (
	"github.com/danmolitor/forme/internal/model"
)

// Public aliases over the internal document model, so callers can
// construct documents programmatically without depending on internal/model
// directly, in the same spirit as docspec's top-level re-exports.
type (
	Document  = model.Document
	Node      = model.Node
	TextRun   = model.TextRun
	Style     = model.Style
	PageConfig = model.PageConfig
	PageSize  = model.PageSize
	FontSpec  = model.FontSpec
	Metadata  = model.Metadata
	Edges     = model.Edges
	Corners   = model.Corners
	Color     = model.Color
	Dimension = model.Dimension
	ColumnWidth = model.ColumnWidth
	Kind      = model.Kind
)

// Node kind constants, re-exported for callers building documents in code.
const (
	KindPage      = model.KindPage
	KindView      = model.KindView
	KindText      = model.KindText
	KindImage     = model.KindImage
	KindTable     = model.KindTable
	KindTableRow  = model.KindTableRow
	KindTableCell = model.KindTableCell
	KindFixed     = model.KindFixed
	KindPageBreak = model.KindPageBreak
	KindSvg       = model.KindSvg
)

func Pt(v float64) Dimension      { return model.Pt(v) }
func Percent(v float64) Dimension { return model.Percent(v) }
func Auto() Dimension             { return model.Auto() }
