// Package model defines the document tree that is the input to the layout
// engine: nodes, raw (unresolved) style fields, page configuration, and the
// small value types (Edges, Corners, Color, Dimension, ColumnWidth) that
// those styles are built from.
//
// Every field on Style is a pointer (or nil-able slice/map) so that the
// resolver in internal/style can tell "not set, inherit/default" apart from
// "explicitly set to the zero value" — the distinction spec.md section 4.2
// depends on.
package model

// Kind discriminates the variants a Node can be.
type Kind string

const (
	KindPage      Kind = "Page"
	KindView      Kind = "View"
	KindText      Kind = "Text"
	KindImage     Kind = "Image"
	KindTable     Kind = "Table"
	KindTableRow  Kind = "TableRow"
	KindTableCell Kind = "TableCell"
	KindFixed     Kind = "Fixed"
	KindPageBreak Kind = "PageBreak"
	KindSvg       Kind = "Svg"
)

// FixedPosition is the position of a Fixed node: repeated header or footer.
type FixedPosition string

const (
	FixedHeader FixedPosition = "Header"
	FixedFooter FixedPosition = "Footer"
)

// SourceLocation is a file/line/column tuple kept only for inspection
// tooling; the engine never branches on it.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// TextRun is one inline-styled fragment of a Text node's content.
type TextRun struct {
	Content string `json:"content"`
	Style   *Style `json:"style,omitempty"`
	Href    string `json:"href,omitempty"`
}

// Node is one element of the document tree.
type Node struct {
	Kind     Kind    `json:"type"`
	Style    *Style  `json:"style,omitempty"`
	Children []*Node `json:"children,omitempty"`

	Bookmark       string          `json:"bookmark,omitempty"`
	Href           string          `json:"href,omitempty"`
	Alt            string          `json:"alt,omitempty"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty"`

	// Page
	Page *PageConfig `json:"page,omitempty"`

	// Text
	Content string     `json:"content,omitempty"`
	Runs    []*TextRun `json:"runs,omitempty"`

	// Image
	Src    string     `json:"src,omitempty"`
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`

	// Table
	Columns []ColumnWidth `json:"columns,omitempty"`

	// TableRow
	IsHeader bool `json:"isHeader,omitempty"`

	// TableCell
	ColSpan int `json:"colSpan,omitempty"`
	RowSpan int `json:"rowSpan,omitempty"`

	// Fixed
	Position FixedPosition `json:"position,omitempty"`

	// Svg
	ViewBox string `json:"viewBox,omitempty"`
}

// PageSize is a named page size, or Custom with explicit point dimensions.
type PageSize struct {
	Name   string  `json:"name,omitempty"` // A3, A4, A5, Letter, Legal, Tabloid, Custom
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Dimensions for named page sizes, in points.
var NamedPageSizes = map[string][2]float64{
	"A3":      {841.89, 1190.55},
	"A4":      {595.28, 841.89},
	"A5":      {419.53, 595.28},
	"Letter":  {612, 792},
	"Legal":   {612, 1008},
	"Tabloid": {792, 1224},
}

// Resolve returns the width/height in points for this page size.
func (s PageSize) Resolve() (w, h float64) {
	if s.Name == "Custom" || s.Name == "" && (s.Width != 0 || s.Height != 0) {
		return s.Width, s.Height
	}
	if d, ok := NamedPageSizes[s.Name]; ok {
		return d[0], d[1]
	}
	return NamedPageSizes["A4"][0], NamedPageSizes["A4"][1]
}

// PageConfig configures a Page node (or the document default).
type PageConfig struct {
	Size   PageSize `json:"size"`
	Margin *Edges   `json:"margin,omitempty"`
	Wrap   *bool    `json:"wrap,omitempty"`
}

// DefaultPageConfig returns the spec's documented default: A4, 54pt margins,
// wrap true.
func DefaultPageConfig() PageConfig {
	wrap := true
	return PageConfig{
		Size:   PageSize{Name: "A4"},
		Margin: &Edges{Top: 54, Right: 54, Bottom: 54, Left: 54},
		Wrap:   &wrap,
	}
}

// Edges is a four-sided measurement (padding, margin, borderWidth, ...).
type Edges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Corners is a four-corner measurement (borderRadius).
type Corners struct {
	TopLeft     float64 `json:"topLeft"`
	TopRight    float64 `json:"topRight"`
	BottomRight float64 `json:"bottomRight"`
	BottomLeft  float64 `json:"bottomLeft"`
}

// Color is an r,g,b,a color with each channel in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Black is the engine default text/border color.
var Black = Color{0, 0, 0, 1}

// White is a common fill default.
var White = Color{1, 1, 1, 1}

// DimKind discriminates Dimension's variants.
type DimKind int

const (
	DimAuto DimKind = iota
	DimPt
	DimPercent
)

// Dimension is Pt(f) | Percent(p) | Auto.
type Dimension struct {
	Kind  DimKind
	Value float64
}

func Pt(v float64) Dimension      { return Dimension{DimPt, v} }
func Percent(v float64) Dimension { return Dimension{DimPercent, v} }
func Auto() Dimension             { return Dimension{Kind: DimAuto} }

// ColWidthKind discriminates ColumnWidth's variants.
type ColWidthKind int

const (
	ColAuto ColWidthKind = iota
	ColFraction
	ColFixed
)

// ColumnWidth is Fraction(f) | Fixed(points) | Auto, for Table.columns.
type ColumnWidth struct {
	Kind  ColWidthKind
	Value float64
}

// FontSpec describes one font file to register before render.
type FontSpec struct {
	Family string `json:"family"`
	Src    string `json:"src"`
	Weight int    `json:"weight"`
	Italic bool   `json:"italic"`
}

// Metadata is optional document metadata passed through to the PDF /Info
// dictionary and Catalog /Lang.
type Metadata struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`
	Creator string `json:"creator,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

// Document is the root input: a forest of top-level nodes (ordinarily Page
// nodes), plus document-wide settings.
type Document struct {
	Children    []*Node    `json:"children"`
	Metadata    Metadata   `json:"metadata,omitempty"`
	DefaultPage PageConfig `json:"defaultPage"`
	Fonts       []FontSpec `json:"fonts,omitempty"`
}
